package arena

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/handlelist"
	spritelog "pkg.world.dev/world-engine/sprite/log"
	"pkg.world.dev/world-engine/sprite/spatial"
	"pkg.world.dev/world-engine/sprite/types"
)

var _ spritelog.Loggable = &Arena{}

type Arena struct {
	capacity     int
	miscLimit    int
	miscLimitSet bool
	strict       bool
	gridSize     int
	tileSize     int32

	slots []entity.Slot
	// free is kept descending so the tail is always the lowest free handle.
	free  []types.Handle
	lists [types.KindCount]handlelist.List
	grid  *spatial.Grid

	miscCount       int
	spatialRebuilds int

	detachHooks   [types.KindCount][]DetachFunc
	pendingDetach []detachHook
	freeHooks     []func(types.Handle)
	resetHooks    []func()

	logger zerolog.Logger
}

// New builds an arena with every slot free.
func New(opts ...Option) (*Arena, error) {
	a := &Arena{
		capacity:  DefaultCapacity,
		miscLimit: DefaultMiscLimit,
		gridSize:  spatial.DefaultGridSize,
		tileSize:  spatial.DefaultTileSize,
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	if !a.miscLimitSet {
		a.miscLimit = min(DefaultMiscLimit, a.capacity)
	}

	if a.capacity <= 0 || a.capacity > types.MaxCapacity {
		return nil, eris.Errorf("capacity must be in [1, %d], got %d", types.MaxCapacity, a.capacity)
	}
	if a.miscLimit < 0 || a.miscLimit > a.capacity {
		return nil, eris.Errorf("misc limit must be in [0, %d], got %d", a.capacity, a.miscLimit)
	}
	if a.gridSize <= 0 || a.tileSize <= 0 {
		return nil, eris.Errorf("grid size and tile size must be positive, got %d and %d", a.gridSize, a.tileSize)
	}
	for _, hook := range a.pendingDetach {
		if err := a.AddDetachHook(hook.kind, hook.fn); err != nil {
			return nil, err
		}
	}
	a.pendingDetach = nil

	a.slots = make([]entity.Slot, a.capacity)
	a.free = make([]types.Handle, 0, a.capacity)
	a.grid = spatial.NewGrid(a.gridSize, a.tileSize)
	a.Reset()
	return a, nil
}

// Reset detaches every live entity, zeroes all storage and rebuilds the free list as the full descending range.
// Reset hooks run afterwards.
func (a *Arena) Reset() {
	for _, kind := range types.LiveKinds() {
		for _, h := range a.lists[kind] {
			a.detach(&a.slots[h])
		}
		a.lists[kind].Clear()
	}
	for i := range a.slots {
		a.slots[i].Clear()
	}
	a.free = a.free[:0]
	for i := a.capacity - 1; i >= 0; i-- {
		a.free = append(a.free, types.Handle(i))
	}
	a.grid.Clear()
	a.miscCount = 0

	for _, fn := range a.resetHooks {
		fn()
	}
}

// AddDetachHook registers fn to run before any entity of the given kind is freed or reset.
func (a *Arena) AddDetachHook(kind types.Kind, fn DetachFunc) error {
	if !kind.Live() {
		return eris.Wrapf(ErrUnknownKind, "detach hook for %s", kind)
	}
	a.detachHooks[kind] = append(a.detachHooks[kind], fn)
	return nil
}

// OnFree registers fn to run synchronously whenever a single entity is freed, after its detach hooks.
func (a *Arena) OnFree(fn func(types.Handle)) {
	a.freeHooks = append(a.freeHooks, fn)
}

// OnReset registers fn to run at the end of every Reset.
func (a *Arena) OnReset(fn func()) {
	a.resetHooks = append(a.resetHooks, fn)
}

func (a *Arena) Capacity() int {
	return a.capacity
}

func (a *Arena) MiscLimit() int {
	return a.miscLimit
}

// Count returns the number of live entities of the given kind.
func (a *Arena) Count(kind types.Kind) int {
	if !kind.Live() {
		return 0
	}
	return len(a.lists[kind])
}

func (a *Arena) FreeCount() int {
	return len(a.free)
}

func (a *Arena) MiscCount() int {
	return a.miscCount
}

func (a *Arena) LiveCount() int {
	return a.capacity - len(a.free)
}

// SpatialRebuilds returns how many times the spatial grid had to be rebuilt to recover from an inconsistency.
func (a *Arena) SpatialRebuilds() int {
	return a.spatialRebuilds
}

// FreeHandles returns a copy of the free list in its descending order.
func (a *Arena) FreeHandles() []types.Handle {
	out := make([]types.Handle, len(a.free))
	copy(out, a.free)
	return out
}

// Handles returns a copy of the ascending list of live handles of the given kind.
func (a *Arena) Handles(kind types.Kind) handlelist.List {
	if !kind.Live() {
		return handlelist.List{}
	}
	return a.lists[kind].Clone()
}

// Grid exposes the spatial index for read-only queries.
func (a *Arena) Grid() *spatial.Grid {
	return a.grid
}

func (a *Arena) detach(slot *entity.Slot) {
	for _, fn := range a.detachHooks[slot.Kind] {
		fn(slot)
	}
}

// fatal reports an ordering violation. The arena cannot continue without risking a silent desync.
func (a *Arena) fatal(err error) {
	a.logger.Error().Err(err).Msgf("fatal error: %v", eris.ToString(err, true))
	panic(err)
}

// invalid handles a bad handle according to the strictness mode.
func (a *Arena) invalid(err error) error {
	if a.strict {
		a.logger.Error().Err(err).Msg("invalid entity handle")
		panic(err)
	}
	return err
}
