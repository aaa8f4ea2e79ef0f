package sim

import (
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/sprite/arena"
)

type Option func(*World)

// WithArenaOptions passes options through to the arena the world owns.
func WithArenaOptions(opts ...arena.Option) Option {
	return func(w *World) {
		w.arenaOpts = append(w.arenaOpts, opts...)
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// WithSnapshotStore saves a snapshot to store every `every` ticks. every <= 0 only enables explicit saves.
func WithSnapshotStore(store SnapshotStore, every uint64) Option {
	return func(w *World) {
		w.store = store
		w.snapshotEvery = every
	}
}

// WithHistorySize sets the peep history cache size in bytes.
func WithHistorySize(size int) Option {
	return func(w *World) {
		w.historySize = size
	}
}
