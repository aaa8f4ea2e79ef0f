package arena

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/sprite/types"
)

// Validate checks every structural invariant of the arena and returns the first violation found, wrapped in
// ErrCorrupt. It is O(capacity) and intended for tests and debug endpoints.
func (a *Arena) Validate() error {
	seen := make([]bool, a.capacity)

	for i := 1; i < len(a.free); i++ {
		if a.free[i-1] <= a.free[i] {
			return eris.Wrapf(ErrCorrupt, "free list not descending at index %d", i)
		}
	}
	for _, h := range a.free {
		if int(h) >= a.capacity {
			return eris.Wrapf(ErrCorrupt, "free list holds out-of-range handle %d", h)
		}
		if !a.slots[h].IsFree() {
			return eris.Wrapf(ErrCorrupt, "free list holds live handle %d", h)
		}
		seen[h] = true
	}

	misc := 0
	for _, kind := range types.LiveKinds() {
		l := a.lists[kind]
		if !l.Sorted() {
			return eris.Wrapf(ErrCorrupt, "%s list not ascending", kind)
		}
		for _, h := range l {
			if int(h) >= a.capacity {
				return eris.Wrapf(ErrCorrupt, "%s list holds out-of-range handle %d", kind, h)
			}
			if seen[h] {
				return eris.Wrapf(ErrCorrupt, "handle %d appears on more than one list", h)
			}
			seen[h] = true
			slot := &a.slots[h]
			if slot.Kind != kind {
				return eris.Wrapf(ErrCorrupt, "handle %d on %s list holds %s", h, kind, slot.Kind)
			}
			if slot.ID != h {
				return eris.Wrapf(ErrCorrupt, "slot %d records id %d", h, slot.ID)
			}
			if !a.grid.Contents(slot.Pos).Contains(h) {
				return eris.Wrapf(ErrCorrupt, "handle %d missing from cell %d", h, a.grid.CellOf(slot.Pos))
			}
		}
		if kind.IsMisc() {
			misc += len(l)
		}
	}

	for h, ok := range seen {
		if !ok {
			return eris.Wrapf(ErrCorrupt, "handle %d is on no list", h)
		}
	}
	if misc != a.miscCount {
		return eris.Wrapf(ErrCorrupt, "misc count %d, %d misc entities listed", a.miscCount, misc)
	}
	if a.miscCount > a.miscLimit {
		return eris.Wrapf(ErrCorrupt, "misc count %d exceeds limit %d", a.miscCount, a.miscLimit)
	}
	if n := a.grid.Len(); n != a.LiveCount() {
		return eris.Wrapf(ErrCorrupt, "spatial grid holds %d handles, %d live", n, a.LiveCount())
	}
	return nil
}
