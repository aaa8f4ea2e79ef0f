// Package sim drives the arena one tick at a time: it runs the per-kind update systems between the tweener's
// pre- and post-tick captures and gives renderers and debug tools locked access to the result.
package sim

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pkg.world.dev/world-engine/sprite/arena"
	"pkg.world.dev/world-engine/sprite/checksum"
	"pkg.world.dev/world-engine/sprite/entity"
	spritelog "pkg.world.dev/world-engine/sprite/log"
	"pkg.world.dev/world-engine/sprite/snapshot"
	"pkg.world.dev/world-engine/sprite/statsd"
	"pkg.world.dev/world-engine/sprite/tween"
	"pkg.world.dev/world-engine/sprite/types"
)

var ErrNoSnapshotStore = eris.New("no snapshot store configured")

// SnapshotStore persists arena snapshots.
type SnapshotStore interface {
	Save(ctx context.Context, snap *snapshot.Snapshot) error
	Load(ctx context.Context) (*snapshot.Snapshot, error)
}

// World owns the arena and everything attached to it. Tick and Frame take the write lock; View and the query
// helpers take the read lock.
type World struct {
	mu sync.RWMutex

	arena   *arena.Arena
	tweener *tween.Tweener
	history *History
	systems systemManager

	tick atomic.Uint64

	store         SnapshotStore
	snapshotEvery uint64

	arenaOpts   []arena.Option
	historySize int
	logger      zerolog.Logger
	tracer      trace.Tracer
}

func New(opts ...Option) (*World, error) {
	w := &World{
		historySize: DefaultHistorySize,
		logger:      log.Logger,
		tracer:      otel.Tracer("sprite"),
	}
	for _, opt := range opts {
		opt(w)
	}

	a, err := arena.New(append([]arena.Option{arena.WithLogger(w.logger)}, w.arenaOpts...)...)
	if err != nil {
		return nil, err
	}
	w.arena = a
	w.tweener = tween.New(a)
	w.history = NewHistory(w.historySize)

	release := func(slot *entity.Slot) {
		w.history.Release(slot.ID)
	}
	for _, kind := range []types.Kind{types.KindGuest, types.KindStaff} {
		if err := a.AddDetachHook(kind, release); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// RegisterSystem adds a per-entity update for kind. Systems must be registered before the first tick.
func (w *World) RegisterSystem(kind types.Kind, fn System) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.CurrentTick() > 0 {
		return eris.New("systems cannot be registered after the world has ticked")
	}
	return w.systems.register(kind, fn)
}

func (w *World) SystemNames() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.systems.systemNames()
}

// CurrentTick returns the number of completed ticks.
func (w *World) CurrentTick() uint64 {
	return w.tick.Load()
}

func (w *World) History() *History {
	return w.history
}

// Tick runs one simulation step: tweener pre-tick capture, every system, tweener post-tick capture. The tick counter
// only advances if every system succeeded.
func (w *World) Tick(ctx context.Context) error {
	startTime := time.Now()
	w.mu.Lock()
	defer w.mu.Unlock()

	tick := w.CurrentTick()
	ctx, span := w.tracer.Start(ctx, "world.tick", trace.WithAttributes(attribute.Int64("tick", int64(tick))))
	defer span.End()

	defer w.handleTickPanic()

	tickLogger := spritelog.CreateTickLogger(&w.logger, tick)
	tickLogger.Debug().Msg("tick started")

	w.tweener.PreTick()
	err := w.systems.run(&Context{
		Arena:   w.arena,
		History: w.history,
		Tick:    tick,
		Logger:  tickLogger,
	})
	w.tweener.PostTick()
	if err != nil {
		span.SetStatus(codes.Error, eris.ToString(err, true))
		span.RecordError(err)
		return err
	}

	w.tick.Add(1)
	if w.store != nil && w.snapshotEvery > 0 && w.CurrentTick()%w.snapshotEvery == 0 {
		if err := w.saveSnapshotLocked(ctx); err != nil {
			tickLogger.Warn().Err(err).Msg("failed to save periodic snapshot")
		}
	}

	w.emitStats()
	statsd.EmitTickStat(startTime, "full_tick")
	return nil
}

// Frame interpolates rendered positions alpha of the way between the last two ticks.
func (w *World) Frame(alpha float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tweener.Tween(alpha)
}

// Restore snaps rendered positions to the last tick, bypassing interpolation.
func (w *World) Restore() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tweener.Restore()
}

// View gives fn read access to the arena. fn must not mutate it.
func (w *World) View(fn func(a *arena.Arena) error) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return fn(w.arena)
}

// Update gives fn write access to the arena between ticks, for spawning entities from outside a system.
func (w *World) Update(fn func(a *arena.Arena) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(w.arena)
}

// Checksum hashes the current arena.
func (w *World) Checksum() common.Hash {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return checksum.Compute(w.arena)
}

// Run ticks the world every time tickCh fires until ctx is done or a tick fails.
func (w *World) Run(ctx context.Context, tickCh <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Uint64("tick", w.CurrentTick()).Msg("world stopped")
			return nil
		case <-tickCh:
			if err := w.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// SaveSnapshot writes the current arena to the configured store.
func (w *World) SaveSnapshot(ctx context.Context) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.saveSnapshotLocked(ctx)
}

// LoadSnapshot replaces the arena with the latest stored snapshot and resumes from its tick.
func (w *World) LoadSnapshot(ctx context.Context) error {
	if w.store == nil {
		return ErrNoSnapshotStore
	}
	snap, err := w.store.Load(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := snapshot.Apply(w.arena, snap); err != nil {
		return err
	}
	w.tick.Store(snap.Tick)
	w.logger.Info().Uint64("tick", snap.Tick).Int("entities", len(snap.Entities)).Msg("snapshot loaded")
	spritelog.Arena(&w.logger, w.arena, zerolog.DebugLevel)
	return nil
}

func (w *World) saveSnapshotLocked(ctx context.Context) error {
	if w.store == nil {
		return ErrNoSnapshotStore
	}
	snap, err := snapshot.Capture(w.arena, w.CurrentTick())
	if err != nil {
		return err
	}
	return w.store.Save(ctx, snap)
}

func (w *World) emitStats() {
	for _, kind := range types.LiveKinds() {
		statsd.EmitEntityCount(kind, w.arena.Count(kind))
	}
	statsd.EmitFreeSlots(w.arena.FreeCount())
}

func (w *World) handleTickPanic() {
	if r := recover(); r != nil {
		w.logger.Error().Msgf(
			"Tick: %d, Current running system: %s",
			w.CurrentTick(),
			w.systems.currentSystem,
		)
		spritelog.Arena(&w.logger, w.arena, zerolog.ErrorLevel)
		panic(r)
	}
}
