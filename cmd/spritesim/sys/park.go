package sys

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/sprite/arena"
	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/types"
)

const (
	// ParkSize is the side of the square walkable area in world units.
	ParkSize = 64 * 32
	// ParkEntrance is where new peeps appear.
	parkEntranceX = ParkSize / 2
	parkEntranceY = 0
)

var guestNames = []string{"Ada", "Bo", "Cam", "Dee", "Eli", "Fox", "Gil", "Hal"}

type Population struct {
	Guests   int
	Staff    int
	Vehicles int
}

// SpawnPark populates an empty park. Peeps start at the entrance, vehicles on a single train along the west edge.
func SpawnPark(a *arena.Arena, pop Population) error {
	entrance := types.Position{X: parkEntranceX, Y: parkEntranceY}
	for i := range pop.Guests {
		guest, slot, err := arena.Create[entity.Guest](a)
		if err != nil {
			return eris.Wrapf(err, "spawning guest %d", i)
		}
		guest.Name = guestNames[i%len(guestNames)]
		guest.Energy = 96
		guest.Happiness = 128
		guest.CashInPocket = 500
		guest.Destination = entrance
		if err := a.MoveTo(slot.ID, entrance); err != nil {
			return err
		}
	}
	for i := range pop.Staff {
		staff, slot, err := arena.Create[entity.Staff](a)
		if err != nil {
			return eris.Wrapf(err, "spawning staff %d", i)
		}
		staff.Name = "Handyman " + guestNames[i%len(guestNames)]
		staff.Type = entity.StaffHandyman
		staff.Energy = 96
		staff.Destination = entrance
		if err := a.MoveTo(slot.ID, entrance); err != nil {
			return err
		}
	}

	prev := types.NullHandle
	for i := range pop.Vehicles {
		car, slot, err := arena.Create[entity.Vehicle](a)
		if err != nil {
			return eris.Wrapf(err, "spawning vehicle %d", i)
		}
		car.Velocity = 4
		car.Mass = 100
		car.TrainHead = slot.ID
		car.NextInTrain = types.NullHandle
		if last, ok := arena.As[entity.Vehicle](a, prev); ok {
			last.NextInTrain = slot.ID
			car.TrainHead = last.TrainHead
		}
		prev = slot.ID
		if err := a.MoveTo(slot.ID, types.Position{X: 16, Y: int32(i) * 32}); err != nil {
			return err
		}
	}
	return nil
}
