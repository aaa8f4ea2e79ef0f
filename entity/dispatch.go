package entity

import "pkg.world.dev/world-engine/sprite/types"

// KindOf returns the tag that T is stored under.
func KindOf[T Body]() types.Kind {
	var zero T
	return zero.Kind()
}

// Is reports whether the slot currently holds a T.
func Is[T Body](s *Slot) bool {
	return s != nil && s.Kind == KindOf[T]()
}

// As narrows the slot to its concrete payload. It reports false when the slot holds a different kind.
func As[T Body](s *Slot) (*T, bool) {
	if !Is[T](s) {
		return nil, false
	}
	body, ok := any(s.Body()).(*T)
	return body, ok
}

// IsMisc reports whether the slot holds an entity from the capped misc/effect category.
func IsMisc(s *Slot) bool {
	return s != nil && s.Kind.IsMisc()
}

// IsPeep reports whether the slot holds a guest or a staff member.
func IsPeep(s *Slot) bool {
	return s != nil && s.Kind.IsPeep()
}

// PeepOf returns the shared peep fields of a guest or staff slot.
func PeepOf(s *Slot) (*Peep, bool) {
	switch {
	case Is[Guest](s):
		return &s.guest.Peep, true
	case Is[Staff](s):
		return &s.staff.Peep, true
	default:
		return nil, false
	}
}
