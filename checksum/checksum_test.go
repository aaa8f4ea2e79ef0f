package checksum_test

import (
	"math/rand"
	"testing"

	"pkg.world.dev/world-engine/assert"

	"pkg.world.dev/world-engine/sprite/arena"
	"pkg.world.dev/world-engine/sprite/checksum"
	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/snapshot"
	"pkg.world.dev/world-engine/sprite/types"
)

func simulate(t *testing.T, seed int64) *arena.Arena {
	t.Helper()
	a, err := arena.New(arena.WithCapacity(64), arena.WithMiscLimit(16))
	assert.NilError(t, err)
	r := rand.New(rand.NewSource(seed))
	kinds := types.LiveKinds()
	for range 500 {
		h := types.Handle(r.Intn(a.Capacity()))
		if _, ok := a.Resolve(h); ok {
			if r.Intn(3) == 0 {
				assert.NilError(t, a.Free(h))
			} else {
				assert.NilError(t, a.MoveTo(h, types.Position{X: int32(r.Intn(4096)), Y: int32(r.Intn(4096))}))
			}
			continue
		}
		if _, err := a.Allocate(kinds[r.Intn(len(kinds))]); err != nil {
			assert.Check(t, arena.IsCapacityError(err))
		}
	}
	return a
}

func TestComputeIsDeterministic(t *testing.T) {
	a := simulate(t, 1)
	b := simulate(t, 1)
	assert.Equal(t, checksum.Compute(a), checksum.Compute(b))
	assert.DeepEqual(t, checksum.PerKind(a), checksum.PerKind(b))

	c := simulate(t, 2)
	assert.NotEqual(t, checksum.Compute(a), checksum.Compute(c))
}

func TestComputeIgnoresRenderPosition(t *testing.T) {
	a := simulate(t, 3)
	before := checksum.Compute(a)
	a.EachLive(func(_ types.Handle, slot *entity.Slot) bool {
		slot.RenderPos = types.Position{X: 1, Y: 2, Z: 3}
		return true
	})
	assert.Equal(t, before, checksum.Compute(a))
}

func TestComputeDetectsPayloadChange(t *testing.T) {
	a, err := arena.New(arena.WithCapacity(4))
	assert.NilError(t, err)
	guest, _, err := arena.Create[entity.Guest](a)
	assert.NilError(t, err)

	before := checksum.Compute(a)
	perKind := checksum.PerKind(a)
	assert.Len(t, perKind, 1)

	guest.Happiness++
	assert.NotEqual(t, before, checksum.Compute(a))
	assert.NotEqual(t, perKind[types.KindGuest], checksum.PerKind(a)[types.KindGuest])
}

func TestEmptyArenaHash(t *testing.T) {
	a, err := arena.New(arena.WithCapacity(4))
	assert.NilError(t, err)
	// Keccak-256 of the empty input.
	assert.Equal(t,
		"0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		checksum.Compute(a).Hex())
}

func TestDiff(t *testing.T) {
	a := simulate(t, 4)
	left, err := snapshot.Capture(a, 1)
	assert.NilError(t, err)

	patch, err := checksum.Diff(left, left)
	assert.NilError(t, err)
	assert.Len(t, patch, 0)

	h := left.Entities[0].Header.ID
	slot, _ := a.Resolve(h)
	slot.Direction = slot.Direction + 1
	right, err := snapshot.Capture(a, 1)
	assert.NilError(t, err)

	patch, err = checksum.Diff(left, right)
	assert.NilError(t, err)
	assert.Len(t, patch, 1)
	assert.Contains(t, patch.String(), "/entities/0/header/direction")
}
