package snapshot_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"pkg.world.dev/world-engine/assert"

	"pkg.world.dev/world-engine/sprite/arena"
	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/snapshot"
	"pkg.world.dev/world-engine/sprite/types"
)

func populatedArena(t *testing.T) *arena.Arena {
	t.Helper()
	a, err := arena.New(arena.WithCapacity(16), arena.WithMiscLimit(4), arena.WithGrid(8, 32))
	assert.NilError(t, err)

	guest, slot, err := arena.CreateAt[entity.Guest](a, 7)
	assert.NilError(t, err)
	guest.Name = "Sam"
	guest.CashInPocket = 1500
	guest.Destination = types.Position{X: 96, Y: 96}
	slot.Direction = 3
	assert.NilError(t, a.MoveTo(slot.ID, types.Position{X: 40, Y: 72, Z: 16}))

	litter, slot, err := arena.Create[entity.Litter](a)
	assert.NilError(t, err)
	litter.Type = entity.LitterEmptyCan
	litter.CreationTick = 99
	assert.NilError(t, a.MoveTo(slot.ID, types.Position{X: 41, Y: 73}))

	fountain, _, err := arena.CreateAt[entity.JumpingFountain](a, 12)
	assert.NilError(t, err)
	fountain.Iteration = 4

	// Leave a hole in the handle range.
	_, err = a.AllocateAt(2, types.KindDuck)
	assert.NilError(t, err)
	assert.NilError(t, a.Free(2))
	return a
}

func TestCaptureOrder(t *testing.T) {
	a := populatedArena(t)
	snap, err := snapshot.Capture(a, 10)
	assert.NilError(t, err)
	assert.Equal(t, uint64(10), snap.Tick)
	assert.Equal(t, 16, snap.Capacity)
	assert.Len(t, snap.Entities, 3)

	var ids []types.Handle
	for _, rec := range snap.Entities {
		ids = append(ids, rec.Header.ID)
	}
	assert.DeepEqual(t, []types.Handle{7, 0, 12}, ids)
}

func TestApplyReproducesArena(t *testing.T) {
	src := populatedArena(t)
	snap, err := snapshot.Capture(src, 10)
	assert.NilError(t, err)

	dst, err := arena.New(arena.WithCapacity(16), arena.WithMiscLimit(4), arena.WithGrid(8, 32))
	assert.NilError(t, err)
	_, err = dst.Allocate(types.KindStaff)
	assert.NilError(t, err)

	assert.NilError(t, snapshot.Apply(dst, snap))
	assert.NilError(t, dst.Validate())
	again, err := snapshot.Capture(dst, 10)
	assert.NilError(t, err)
	if diff := cmp.Diff(snap, again); diff != "" {
		t.Fatalf("recaptured snapshot differs (-want +got):\n%s", diff)
	}
	assert.DeepEqual(t, src.FreeHandles(), dst.FreeHandles())
	for _, kind := range types.LiveKinds() {
		assert.DeepEqual(t, src.Handles(kind), dst.Handles(kind))
	}

	guest, ok := arena.As[entity.Guest](dst, 7)
	assert.True(t, ok)
	assert.Equal(t, "Sam", guest.Name)
	assert.Equal(t, int32(1500), guest.CashInPocket)
	slot, _ := dst.Resolve(7)
	assert.Equal(t, uint8(3), slot.Direction)
	assert.Equal(t, types.Position{X: 40, Y: 72, Z: 16}, slot.Pos)
	assert.DeepEqual(t, src.CellContents(slot.Pos), dst.CellContents(slot.Pos))

	fountain, ok := arena.As[entity.JumpingFountain](dst, 12)
	assert.True(t, ok)
	assert.Equal(t, uint16(4), fountain.Iteration)
	fslot, _ := dst.Resolve(12)
	assert.Check(t, fslot.Pos.IsNull())

	// The next allocation lands where it would have on the source.
	hs, err := src.Allocate(types.KindGuest)
	assert.NilError(t, err)
	hd, err := dst.Allocate(types.KindGuest)
	assert.NilError(t, err)
	assert.Equal(t, hs, hd)
}

func TestApplyRejectsLargerSnapshot(t *testing.T) {
	snap, err := snapshot.Capture(populatedArena(t), 1)
	assert.NilError(t, err)

	small, err := arena.New(arena.WithCapacity(8))
	assert.NilError(t, err)
	assert.ErrorIs(t, snapshot.Apply(small, snap), snapshot.ErrIncompatible)
}

func TestApplyResetsOnBadRecord(t *testing.T) {
	snap, err := snapshot.Capture(populatedArena(t), 1)
	assert.NilError(t, err)
	snap.Entities = append(snap.Entities, snap.Entities[0])

	a, err := arena.New(arena.WithCapacity(16))
	assert.NilError(t, err)
	assert.ErrorIs(t, snapshot.Apply(a, snap), arena.ErrHandleInUse)
	assert.Equal(t, 16, a.FreeCount())
}

func newStore(t *testing.T, ns types.Namespace) (*snapshot.RedisStore, *redis.Client) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr:     s.Addr(),
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	store, err := snapshot.NewRedisStore(client, ns)
	assert.NilError(t, err)
	return store, client
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, "park-1")

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, snapshot.ErrNoSnapshot)

	a := populatedArena(t)
	first, err := snapshot.Capture(a, 5)
	assert.NilError(t, err)
	assert.NilError(t, store.Save(ctx, first))

	assert.NilError(t, a.Free(7))
	second, err := snapshot.Capture(a, 9)
	assert.NilError(t, err)
	assert.NilError(t, store.Save(ctx, second))

	latest, err := store.Load(ctx)
	assert.NilError(t, err)
	assert.Equal(t, uint64(9), latest.Tick)
	assert.Len(t, latest.Entities, 2)

	old, err := store.LoadTick(ctx, 5)
	assert.NilError(t, err)
	assert.Len(t, old.Entities, 3)
	assert.DeepEqual(t, first.Entities[0].Header, old.Entities[0].Header)
	assert.JSONEq(t, string(first.Entities[0].Body), string(old.Entities[0].Body))

	_, err = store.LoadTick(ctx, 6)
	assert.ErrorIs(t, err, snapshot.ErrNoSnapshot)

	ticks, err := store.Ticks(ctx)
	assert.NilError(t, err)
	assert.DeepEqual(t, []uint64{5, 9}, ticks)
}

func TestRedisStorePrune(t *testing.T) {
	ctx := context.Background()
	store, client := newStore(t, "park")
	a := populatedArena(t)
	for _, tick := range []uint64{1, 2, 3, 4} {
		snap, err := snapshot.Capture(a, tick)
		assert.NilError(t, err)
		assert.NilError(t, store.Save(ctx, snap))
	}

	assert.NilError(t, store.Prune(ctx, 2))
	ticks, err := store.Ticks(ctx)
	assert.NilError(t, err)
	assert.DeepEqual(t, []uint64{3, 4}, ticks)

	n, err := client.Exists(ctx, "SPRITE:park:SNAPSHOT:TICK-1").Result()
	assert.NilError(t, err)
	assert.Equal(t, int64(0), n)

	assert.NilError(t, store.Prune(ctx, 0))
	ticks, err = store.Ticks(ctx)
	assert.NilError(t, err)
	assert.DeepEqual(t, []uint64{4}, ticks)
	_, err = store.Load(ctx)
	assert.NilError(t, err)
}

func TestRedisStoreNamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})

	a, err := snapshot.NewRedisStore(client, "north")
	assert.NilError(t, err)
	b, err := snapshot.NewRedisStore(client, "south")
	assert.NilError(t, err)

	snap, err := snapshot.Capture(populatedArena(t), 3)
	assert.NilError(t, err)
	assert.NilError(t, a.Save(ctx, snap))

	_, err = b.Load(ctx)
	assert.ErrorIs(t, err, snapshot.ErrNoSnapshot)

	_, err = snapshot.NewRedisStore(client, "bad namespace!")
	assert.IsError(t, err)
}
