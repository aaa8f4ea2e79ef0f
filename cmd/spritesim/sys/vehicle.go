package sys

import (
	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/sim"
	"pkg.world.dev/world-engine/sprite/types"
)

const (
	saltSteam uint64 = 200 + iota
	saltCrash
)

const crashParticles = 4

// VehicleAdvance moves a car along the track on the park's west edge. Cars occasionally puff steam, and very
// occasionally crash, scattering effects and stopping the car.
func VehicleAdvance(wCtx *sim.Context, h types.Handle, slot *entity.Slot) error {
	car, _ := entity.As[entity.Vehicle](slot)
	if car.Velocity == 0 {
		car.Velocity = 4
		return nil
	}
	car.TrackProgress += uint16(car.Velocity)

	pos := slot.Pos
	pos.Y = (pos.Y + car.Velocity) % ParkSize
	if err := wCtx.Arena.MoveTo(h, pos); err != nil {
		return err
	}

	if chance(wCtx.Tick, h, saltSteam, 32) {
		if _, _, err := spawnAt[entity.SteamParticle](wCtx, pos); err != nil {
			return err
		}
	}
	if chance(wCtx.Tick, h, saltCrash, 2048) {
		return crash(wCtx, h, car, pos)
	}
	return nil
}

func crash(wCtx *sim.Context, h types.Handle, car *entity.Vehicle, pos types.Position) error {
	car.Velocity = 0
	car.Status = 1
	wCtx.Logger.Info().Int("entity_id", int(h)).Stringer("pos", pos).Msg("vehicle crashed")

	if _, _, err := spawnAt[entity.ExplosionCloud](wCtx, pos); err != nil {
		return err
	}
	if _, _, err := spawnAt[entity.ExplosionFlare](wCtx, pos); err != nil {
		return err
	}
	if _, _, err := spawnAt[entity.CrashSplash](wCtx, pos); err != nil {
		return err
	}
	air := pos
	air.Z += 16
	for i := range crashParticles {
		p, ok, err := spawnAt[entity.CrashedVehicleParticle](wCtx, air)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		p.TimeToLive = 40
		p.VelocityX = int32(i) - crashParticles/2
		p.VelocityY = int32(noise(wCtx.Tick, h, uint64(i))%5) - 2
		p.VelocityZ = 3
		p.AccelerationZ = -1
	}
	return nil
}
