package arena

import (
	"slices"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	spritelog "pkg.world.dev/world-engine/sprite/log"
	"pkg.world.dev/world-engine/sprite/statsd"
	"pkg.world.dev/world-engine/sprite/types"
)

// Allocate hands out the lowest free handle for a new entity of the given kind. The new entity sits at the null
// position until it is moved.
func (a *Arena) Allocate(kind types.Kind) (types.Handle, error) {
	if err := a.checkRoom(kind); err != nil {
		return types.NullHandle, err
	}
	last := len(a.free) - 1
	h := a.free[last]
	a.free = a.free[:last]
	a.activate(h, kind)
	return h, nil
}

// AllocateAt allocates exactly the given handle. It is used to replay a creation that must land on the same
// handle on every peer.
func (a *Arena) AllocateAt(h types.Handle, kind types.Kind) (types.Handle, error) {
	if int(h) >= a.capacity {
		return types.NullHandle, a.invalid(eris.Wrapf(ErrInvalidHandle, "handle %d, capacity %d", h, a.capacity))
	}
	if !a.slots[h].IsFree() {
		return types.NullHandle, eris.Wrapf(ErrHandleInUse, "handle %d holds a %s", h, a.slots[h].Kind)
	}
	if err := a.checkRoom(kind); err != nil {
		return types.NullHandle, err
	}
	i, found := slices.BinarySearchFunc(a.free, h, descending)
	if !found {
		a.fatal(eris.Wrapf(ErrCorrupt, "free slot %d missing from free list", h))
	}
	a.free = slices.Delete(a.free, i, i+1)
	a.activate(h, kind)
	return h, nil
}

// Free releases a live entity: detach hooks and free hooks run, the handle leaves its kind list and spatial cell,
// the slot is zeroed and the handle goes back on the free list.
func (a *Arena) Free(h types.Handle) error {
	slot, err := a.liveSlot(h)
	if err != nil {
		return err
	}
	kind := slot.Kind

	a.detach(slot)
	for _, fn := range a.freeHooks {
		fn(h)
	}
	spritelog.Entity(&a.logger, zerolog.DebugLevel, slot, "entity freed")

	if err := a.lists[kind].Remove(h); err != nil {
		a.fatal(eris.Wrapf(ErrCorrupt, "%s list: %v", kind, err))
	}
	spatialErr := a.grid.Remove(h, slot.Pos)
	if kind.IsMisc() {
		a.miscCount--
	}
	slot.Clear()

	i, found := slices.BinarySearchFunc(a.free, h, descending)
	if found {
		a.fatal(eris.Wrapf(ErrCorrupt, "handle %d already on free list", h))
	}
	a.free = slices.Insert(a.free, i, h)

	if spatialErr != nil {
		a.healSpatial(spatialErr)
	}
	return nil
}

func (a *Arena) checkRoom(kind types.Kind) error {
	if !kind.Live() {
		return eris.Wrapf(ErrUnknownKind, "cannot allocate %s", kind)
	}
	if len(a.free) == 0 {
		statsd.IncrAllocationFailure(kind, "arena_full")
		return eris.Wrapf(ErrArenaFull, "capacity %d", a.capacity)
	}
	if kind.IsMisc() && a.miscCount >= a.miscLimit {
		statsd.IncrAllocationFailure(kind, "misc_limit")
		return eris.Wrapf(ErrMiscLimitReached, "%d misc entities alive", a.miscCount)
	}
	return nil
}

func (a *Arena) activate(h types.Handle, kind types.Kind) {
	slot := &a.slots[h]
	slot.Init(h, kind)
	if err := a.lists[kind].Insert(h); err != nil {
		a.fatal(eris.Wrapf(ErrCorrupt, "%s list: %v", kind, err))
	}
	if kind.IsMisc() {
		a.miscCount++
	}
	if err := a.grid.Insert(h, slot.Pos); err != nil {
		a.healSpatial(err)
	}
	spritelog.Entity(&a.logger, zerolog.DebugLevel, slot, "entity created")
}

// descending orders the free list so that larger handles come first.
func descending(elem, target types.Handle) int {
	switch {
	case elem > target:
		return -1
	case elem < target:
		return 1
	default:
		return 0
	}
}
