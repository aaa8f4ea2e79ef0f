package arena

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/types"
)

// Resolve returns the live slot for h. It reports false for NullHandle, out-of-range handles and free slots.
func (a *Arena) Resolve(h types.Handle) (*entity.Slot, bool) {
	if int(h) >= a.capacity {
		return nil, false
	}
	slot := &a.slots[h]
	if slot.IsFree() {
		return nil, false
	}
	return slot, true
}

// slot is the internal resolver; an out-of-range handle here is always a bug.
func (a *Arena) slot(h types.Handle) *entity.Slot {
	if int(h) >= a.capacity {
		panic(eris.Wrapf(ErrInvalidHandle, "handle %d, capacity %d", h, a.capacity))
	}
	return &a.slots[h]
}

// liveSlot resolves h for a mutating operation, applying the strictness mode to bad handles.
func (a *Arena) liveSlot(h types.Handle) (*entity.Slot, error) {
	if int(h) >= a.capacity {
		return nil, a.invalid(eris.Wrapf(ErrInvalidHandle, "handle %s, capacity %d", h, a.capacity))
	}
	slot := &a.slots[h]
	if slot.IsFree() {
		return nil, a.invalid(eris.Wrapf(ErrEntityNotLive, "handle %d", h))
	}
	return slot, nil
}

// Is reports whether h currently refers to a live T.
func Is[T entity.Body](a *Arena, h types.Handle) bool {
	slot, ok := a.Resolve(h)
	return ok && entity.Is[T](slot)
}

// As resolves h and narrows it to T. A kind mismatch reports false, as does a dead handle.
func As[T entity.Body](a *Arena, h types.Handle) (*T, bool) {
	slot, ok := a.Resolve(h)
	if !ok {
		return nil, false
	}
	return entity.As[T](slot)
}

// IsMisc reports whether h refers to a live misc/effect entity.
func IsMisc(a *Arena, h types.Handle) bool {
	slot, ok := a.Resolve(h)
	return ok && entity.IsMisc(slot)
}

// Create allocates a new T and returns its payload and slot.
func Create[T entity.Body](a *Arena) (*T, *entity.Slot, error) {
	h, err := a.Allocate(entity.KindOf[T]())
	if err != nil {
		return nil, nil, err
	}
	return narrow[T](a, h)
}

// CreateAt allocates a T at exactly handle h.
func CreateAt[T entity.Body](a *Arena, h types.Handle) (*T, *entity.Slot, error) {
	h, err := a.AllocateAt(h, entity.KindOf[T]())
	if err != nil {
		return nil, nil, err
	}
	return narrow[T](a, h)
}

func narrow[T entity.Body](a *Arena, h types.Handle) (*T, *entity.Slot, error) {
	slot := a.slot(h)
	body, ok := entity.As[T](slot)
	if !ok {
		a.fatal(eris.Wrapf(ErrCorrupt, "slot %d allocated as %s but holds %s", h, entity.KindOf[T](), slot.Kind))
	}
	return body, slot, nil
}
