package arena

import (
	"testing"

	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/assert"

	"pkg.world.dev/world-engine/sprite/types"
)

// recoverCorrupt runs fn and returns the value it panicked with.
func recoverCorrupt(t *testing.T, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
	}()
	fn()
	return nil
}

func TestFreePanicsWhenKindListLosesHandle(t *testing.T) {
	a, err := New(WithCapacity(4))
	assert.NilError(t, err)
	h, err := a.Allocate(types.KindGuest)
	assert.NilError(t, err)

	a.lists[types.KindGuest].Clear()

	r := recoverCorrupt(t, func() { _ = a.Free(h) })
	assert.Assert(t, r != nil, "Free should halt on a missing list entry")
	panicErr, ok := r.(error)
	assert.Assert(t, ok, "panic value should be an error, got %T", r)
	assert.Check(t, eris.Is(panicErr, ErrCorrupt))
}

func TestAllocatePanicsOnDuplicateListEntry(t *testing.T) {
	a, err := New(WithCapacity(4))
	assert.NilError(t, err)

	// The lowest free handle is already on the guest list.
	assert.NilError(t, a.lists[types.KindGuest].Insert(0))

	r := recoverCorrupt(t, func() { _, _ = a.Allocate(types.KindGuest) })
	assert.Assert(t, r != nil, "Allocate should halt on a duplicate list entry")
	panicErr, ok := r.(error)
	assert.Assert(t, ok, "panic value should be an error, got %T", r)
	assert.Check(t, eris.Is(panicErr, ErrCorrupt))
}
