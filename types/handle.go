package types

import "strconv"

// Handle identifies an arena slot. It is stable for the lifetime of the entity occupying the slot and is reused
// once the slot has been freed. A Handle is never dereferenced directly; it is always resolved through the arena.
type Handle uint16

// NullHandle never refers to a slot.
const NullHandle Handle = 0xFFFF

// MaxCapacity is the largest arena capacity that still leaves NullHandle unused.
const MaxCapacity = int(NullHandle)

func (h Handle) IsNull() bool {
	return h == NullHandle
}

func (h Handle) String() string {
	if h.IsNull() {
		return "null"
	}
	return strconv.Itoa(int(h))
}
