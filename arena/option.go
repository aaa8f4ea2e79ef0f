package arena

import (
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/types"
)

const (
	DefaultCapacity  = 10000
	DefaultMiscLimit = 3000
)

// DetachFunc releases resources held outside the arena on behalf of an entity that is about to be freed.
type DetachFunc func(slot *entity.Slot)

type Option func(*Arena)

// WithCapacity sets the total number of slots.
func WithCapacity(n int) Option {
	return func(a *Arena) {
		a.capacity = n
	}
}

// WithMiscLimit caps how many misc/effect entities may be alive at once. Without it the cap is DefaultMiscLimit,
// or the capacity if that is smaller.
func WithMiscLimit(n int) Option {
	return func(a *Arena) {
		a.miscLimit = n
		a.miscLimitSet = true
	}
}

// WithGrid sets the spatial grid dimensions in tiles and the tile size in world units.
func WithGrid(size int, tileSize int32) Option {
	return func(a *Arena) {
		a.gridSize = size
		a.tileSize = tileSize
	}
}

// WithStrictHandles makes invalid handles panic instead of returning an error.
func WithStrictHandles(strict bool) Option {
	return func(a *Arena) {
		a.strict = strict
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Arena) {
		a.logger = logger
	}
}

// WithDetachHook registers fn to run before any entity of the given kind is freed or reset.
func WithDetachHook(kind types.Kind, fn DetachFunc) Option {
	return func(a *Arena) {
		a.pendingDetach = append(a.pendingDetach, detachHook{kind: kind, fn: fn})
	}
}

type detachHook struct {
	kind types.Kind
	fn   DetachFunc
}
