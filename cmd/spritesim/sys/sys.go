// Package sys holds the demo park systems the spritesim binary runs. They are deliberately simple; their job is to
// allocate, move and free entities every tick the way real simulation logic would.
package sys

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/sprite/sim"
	"pkg.world.dev/world-engine/sprite/types"
)

// Register adds every demo system to w.
func Register(w *sim.World) error {
	systems := []struct {
		kind types.Kind
		fn   sim.System
	}{
		{types.KindGuest, GuestWander},
		{types.KindStaff, StaffSweep},
		{types.KindVehicle, VehicleAdvance},
		{types.KindBalloon, BalloonDrift},
		{types.KindSteamParticle, SteamRise},
		{types.KindMoneyEffect, MoneyRise},
		{types.KindCrashedVehicleParticle, CrashedParticleFall},
		{types.KindExplosionCloud, ExplosionCloudAnimate},
		{types.KindCrashSplash, CrashSplashAnimate},
		{types.KindExplosionFlare, ExplosionFlareAnimate},
	}
	for _, s := range systems {
		if err := w.RegisterSystem(s.kind, s.fn); err != nil {
			return eris.Wrapf(err, "registering %s system", s.kind)
		}
	}
	return nil
}

// noise is a splitmix64 step over the tick, the handle and a salt. Systems use it instead of a shared random
// source so every peer makes the same choices.
func noise(tick uint64, h types.Handle, salt uint64) uint64 {
	z := tick*0x9e3779b97f4a7c15 + uint64(h)*0xbf58476d1ce4e5b9 + salt
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// chance reports true roughly once every n calls for a given salt.
func chance(tick uint64, h types.Handle, salt uint64, n uint64) bool {
	return noise(tick, h, salt)%n == 0
}

// stepToward moves v at most step units toward target.
func stepToward(v, target, step int32) int32 {
	switch {
	case target > v+step:
		return v + step
	case target < v-step:
		return v - step
	default:
		return target
	}
}
