package handlelist_test

import (
	"testing"

	"pkg.world.dev/world-engine/assert"

	"pkg.world.dev/world-engine/sprite/handlelist"
	"pkg.world.dev/world-engine/sprite/types"
)

func TestInsertKeepsAscendingOrder(t *testing.T) {
	var l handlelist.List
	for _, h := range []types.Handle{5, 1, 9, 3, 7, 0} {
		assert.NilError(t, l.Insert(h))
		assert.Check(t, l.Sorted())
	}
	assert.DeepEqual(t, handlelist.List{0, 1, 3, 5, 7, 9}, l)
}

func TestInsertRejectsDuplicates(t *testing.T) {
	l := handlelist.List{2, 4}
	err := l.Insert(4)
	assert.ErrorIs(t, err, handlelist.ErrDuplicateHandle)
	assert.DeepEqual(t, handlelist.List{2, 4}, l)
}

func TestRemove(t *testing.T) {
	l := handlelist.List{1, 2, 3}
	assert.NilError(t, l.Remove(2))
	assert.DeepEqual(t, handlelist.List{1, 3}, l)

	err := l.Remove(2)
	assert.ErrorIs(t, err, handlelist.ErrHandleNotFound)
	assert.DeepEqual(t, handlelist.List{1, 3}, l)
}

func TestAfter(t *testing.T) {
	l := handlelist.List{2, 4, 6}
	assert.Equal(t, 0, l.After(0))
	assert.Equal(t, 1, l.After(2))
	assert.Equal(t, 1, l.After(3))
	assert.Equal(t, 3, l.After(6))
	assert.Equal(t, 3, l.After(100))
}

func TestCloneDoesNotAlias(t *testing.T) {
	l := handlelist.List{1, 2}
	c := l.Clone()
	c[0] = 9
	assert.Equal(t, types.Handle(1), l[0])

	var empty handlelist.List
	assert.Check(t, empty.Clone() != nil)

	l.Clear()
	assert.Equal(t, 0, len(l))
	assert.Check(t, handlelist.List{3, 3}.Sorted() == false)
}
