package entity_test

import (
	"testing"

	"pkg.world.dev/world-engine/assert"

	"pkg.world.dev/world-engine/sprite/codec"
	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/types"
)

func TestAsNarrowsOnlyMatchingKind(t *testing.T) {
	var slot entity.Slot
	slot.Init(7, types.KindGuest)

	guest, ok := entity.As[entity.Guest](&slot)
	assert.Check(t, ok)
	guest.Name = "Guest 7"
	guest.Happiness = 200

	again, ok := entity.As[entity.Guest](&slot)
	assert.Check(t, ok)
	assert.Equal(t, "Guest 7", again.Name)
	assert.Equal(t, uint8(200), again.Happiness)

	_, ok = entity.As[entity.Vehicle](&slot)
	assert.Check(t, !ok)
	assert.Check(t, entity.Is[entity.Guest](&slot))
	assert.Check(t, !entity.Is[entity.Staff](&slot))
	assert.Check(t, entity.IsPeep(&slot))
	assert.Check(t, !entity.IsMisc(&slot))
}

func TestFreeSlotNarrowsToNothing(t *testing.T) {
	var slot entity.Slot
	slot.Clear()

	assert.Check(t, slot.IsFree())
	assert.Check(t, slot.Body() == nil)
	for _, ok := range []bool{
		entity.Is[entity.Guest](&slot),
		entity.Is[entity.Litter](&slot),
		entity.Is[entity.JumpingFountain](&slot),
	} {
		assert.Check(t, !ok)
	}
	assert.Check(t, !entity.Is[entity.Guest](nil))
}

func TestEveryKindHasAPayload(t *testing.T) {
	for _, k := range types.LiveKinds() {
		var slot entity.Slot
		slot.Init(1, k)
		body := slot.Body()
		assert.Check(t, body != nil, k.String())
		assert.Equal(t, k, body.Kind())
		assert.Equal(t, k.IsMisc(), entity.IsMisc(&slot))
	}
}

func TestPeepOfSharesFields(t *testing.T) {
	var slot entity.Slot
	slot.Init(3, types.KindStaff)
	peep, ok := entity.PeepOf(&slot)
	assert.Check(t, ok)
	peep.Name = "Handyman 1"

	staff, _ := entity.As[entity.Staff](&slot)
	assert.Equal(t, "Handyman 1", staff.Name)

	slot.Init(4, types.KindLitter)
	_, ok = entity.PeepOf(&slot)
	assert.Check(t, !ok)
}

func TestInitResetsPreviousPayload(t *testing.T) {
	var slot entity.Slot
	slot.Init(1, types.KindMoneyEffect)
	money, _ := entity.As[entity.MoneyEffect](&slot)
	money.Value = 500

	slot.Clear()
	slot.Init(1, types.KindMoneyEffect)
	money, _ = entity.As[entity.MoneyEffect](&slot)
	assert.Equal(t, int32(0), money.Value)
	assert.Check(t, slot.Pos.IsNull())
	assert.Check(t, slot.RenderPos.IsNull())
}

func TestSerialiseIsFieldOrderStable(t *testing.T) {
	var slot entity.Slot
	slot.Init(2, types.KindLitter)
	slot.Pos = types.Position{X: 64, Y: 96, Z: 16}
	litter, _ := entity.As[entity.Litter](&slot)
	litter.Type = entity.LitterEmptyCan
	litter.CreationTick = 0x0A0B0C0D

	s := codec.NewStream(32)
	slot.Serialise(s)

	want := []byte{
		0x02, 0x00, // id
		uint8(types.KindLitter),
		64, 0, 0, 0, 96, 0, 0, 0, 16, 0, 0, 0, // pos
		0, 0, 0, 0, // direction + sprite bounds
		uint8(entity.LitterEmptyCan),
		0x0D, 0x0C, 0x0B, 0x0A,
	}
	assert.DeepEqual(t, want, s.Bytes())

	// RenderPos is not part of the stream.
	slot.RenderPos = types.Position{X: 1}
	s2 := codec.NewStream(32)
	slot.Serialise(s2)
	assert.DeepEqual(t, s.Bytes(), s2.Bytes())

	var free entity.Slot
	s3 := codec.NewStream(0)
	free.Serialise(s3)
	assert.Equal(t, 0, s3.Len())
}
