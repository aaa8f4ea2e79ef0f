package sys

import (
	"fmt"

	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/sim"
	"pkg.world.dev/world-engine/sprite/types"
)

const (
	saltDestX uint64 = iota + 1
	saltDestY
	saltLitter
	saltLitterType
	saltPurchase
	saltNausea
)

const (
	peepStep     = 4
	purchaseCost = 20
	nauseaVomit  = 200
)

// GuestWander walks a guest toward its destination, picks a new one on arrival, and now and then drops litter,
// buys something or throws up.
func GuestWander(wCtx *sim.Context, h types.Handle, slot *entity.Slot) error {
	guest, _ := entity.As[entity.Guest](slot)
	if err := wander(wCtx, h, slot, &guest.Peep); err != nil {
		return err
	}

	if chance(wCtx.Tick, h, saltNausea, 8) && guest.Nausea < 255 {
		guest.Nausea++
	}
	if guest.Nausea > nauseaVomit {
		litter, ok, err := spawnAt[entity.Litter](wCtx, slot.Pos)
		if err != nil {
			return err
		}
		if ok {
			litter.Type = entity.LitterVomit
			litter.CreationTick = uint32(wCtx.Tick)
			guest.Nausea = 0
			guest.Happiness /= 2
			note(wCtx, h, "felt sick")
		}
	}

	if chance(wCtx.Tick, h, saltLitter, 64) {
		litter, ok, err := spawnAt[entity.Litter](wCtx, slot.Pos)
		if err != nil {
			return err
		}
		if ok {
			litter.Type = entity.LitterType(noise(wCtx.Tick, h, saltLitterType) % uint64(entity.LitterEmptyCup+1))
			litter.CreationTick = uint32(wCtx.Tick)
		}
	}

	if guest.CashInPocket >= purchaseCost && chance(wCtx.Tick, h, saltPurchase, 128) {
		money, ok, err := spawnAt[entity.MoneyEffect](wCtx, slot.Pos)
		if err != nil {
			return err
		}
		if ok {
			money.Value = purchaseCost
		}
		guest.CashInPocket -= purchaseCost
		guest.CashSpent += purchaseCost
		if guest.Happiness < 250 {
			guest.Happiness += 5
		}
		note(wCtx, h, fmt.Sprintf("spent %d at %s", purchaseCost, slot.Pos))
	}
	return nil
}

// StaffSweep walks a handyman around and sweeps every piece of litter on the tile they stand on.
func StaffSweep(wCtx *sim.Context, h types.Handle, slot *entity.Slot) error {
	staff, _ := entity.As[entity.Staff](slot)
	if err := wander(wCtx, h, slot, &staff.Peep); err != nil {
		return err
	}
	if staff.Type != entity.StaffHandyman {
		return nil
	}

	swept := 0
	it := wCtx.Arena.IterateByCellKind(slot.Pos, types.KindLitter)
	for it.Next() {
		if err := wCtx.Arena.Free(it.Handle()); err != nil {
			return err
		}
		swept++
	}
	if swept > 0 {
		staff.LitterSwept += uint16(swept)
		note(wCtx, h, fmt.Sprintf("swept %d litter at %s", swept, slot.Pos))
	}
	return nil
}

func wander(wCtx *sim.Context, h types.Handle, slot *entity.Slot, peep *entity.Peep) error {
	if slot.Pos.IsNull() {
		return nil
	}
	if slot.Pos.X == peep.Destination.X && slot.Pos.Y == peep.Destination.Y {
		peep.Destination = types.Position{
			X: int32(noise(wCtx.Tick, h, saltDestX) % ParkSize),
			Y: int32(noise(wCtx.Tick, h, saltDestY) % ParkSize),
		}
		if peep.Energy > 0 {
			peep.Energy--
		}
		return nil
	}
	next := slot.Pos
	next.X = stepToward(next.X, peep.Destination.X, peepStep)
	next.Y = stepToward(next.Y, peep.Destination.Y, peepStep)
	peep.WalkingFrame = (peep.WalkingFrame + 1) % 4
	return wCtx.Arena.MoveTo(h, next)
}

// note records entry in h's history. A failed write is logged and never fails the tick.
func note(wCtx *sim.Context, h types.Handle, entry string) {
	if err := wCtx.History.Append(h, entry); err != nil {
		wCtx.Logger.Warn().Err(err).Int("entity_id", int(h)).Msg("failed to record history")
	}
}
