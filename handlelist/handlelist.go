// Package handlelist implements the ascending ordered handle sequences the arena uses for its per-kind lists
// and spatial cells. Keeping them sorted by handle, rather than in insertion order, is what makes enumeration
// identical on every peer that replays the same creates and frees.
package handlelist

import (
	"slices"

	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/sprite/types"
)

var (
	ErrDuplicateHandle = eris.New("handle already in list")
	ErrHandleNotFound  = eris.New("handle not in list")
)

// List is a strictly ascending sequence of handles.
type List []types.Handle

// Insert places h at the position that keeps l ascending.
func (l *List) Insert(h types.Handle) error {
	i, found := slices.BinarySearch(*l, h)
	if found {
		return eris.Wrapf(ErrDuplicateHandle, "handle %d", h)
	}
	*l = slices.Insert(*l, i, h)
	return nil
}

// Remove deletes h from l.
func (l *List) Remove(h types.Handle) error {
	i, found := slices.BinarySearch(*l, h)
	if !found {
		return eris.Wrapf(ErrHandleNotFound, "handle %d", h)
	}
	*l = slices.Delete(*l, i, i+1)
	return nil
}

func (l List) Contains(h types.Handle) bool {
	_, found := slices.BinarySearch(l, h)
	return found
}

// After returns the index of the first handle strictly greater than h.
func (l List) After(h types.Handle) int {
	i, found := slices.BinarySearch(l, h)
	if found {
		i++
	}
	return i
}

// Sorted reports whether l is strictly ascending.
func (l List) Sorted() bool {
	for i := 1; i < len(l); i++ {
		if l[i-1] >= l[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not alias l.
func (l List) Clone() List {
	if l == nil {
		return List{}
	}
	return slices.Clone(l)
}

func (l *List) Clear() {
	*l = (*l)[:0]
}
