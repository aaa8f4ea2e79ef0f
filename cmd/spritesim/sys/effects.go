package sys

import (
	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/sim"
	"pkg.world.dev/world-engine/sprite/types"
)

const (
	steamFrameStep        = 64
	steamLastFrame        = 56 * steamFrameStep
	moneyMaxMovements     = 55
	balloonMaxHeight      = 255
	explosionCloudFrames  = 28
	crashSplashFrames     = 20
	explosionFlareFrames  = 24
	crashedParticleGround = 0

	saltBalloonPop uint64 = 100
)

// SteamRise floats a steam puff upward and removes it once its animation has played.
func SteamRise(wCtx *sim.Context, h types.Handle, slot *entity.Slot) error {
	steam, _ := entity.As[entity.SteamParticle](slot)
	steam.Time++
	if steam.Time%4 == 0 {
		if err := rise(wCtx, h, slot, 1); err != nil {
			return err
		}
	}
	steam.Frame += steamFrameStep
	if steam.Frame >= steamLastFrame {
		return wCtx.Arena.Free(h)
	}
	return nil
}

// MoneyRise moves a money effect up every other tick and removes it after a fixed number of moves.
func MoneyRise(wCtx *sim.Context, h types.Handle, slot *entity.Slot) error {
	money, _ := entity.As[entity.MoneyEffect](slot)
	money.MoveDelay++
	if money.MoveDelay < 2 {
		return nil
	}
	money.MoveDelay = 0
	money.Wiggle = (money.Wiggle + 1) % 22
	money.NumMovements++
	if money.NumMovements >= moneyMaxMovements {
		return wCtx.Arena.Free(h)
	}
	return rise(wCtx, h, slot, 1)
}

// BalloonDrift lets a released balloon float away until it pops or leaves the sky.
func BalloonDrift(wCtx *sim.Context, h types.Handle, slot *entity.Slot) error {
	balloon, _ := entity.As[entity.Balloon](slot)
	if balloon.Popped {
		balloon.Frame++
		if balloon.Frame >= 8 {
			return wCtx.Arena.Free(h)
		}
		return nil
	}
	if chance(wCtx.Tick, h, saltBalloonPop, 1000) {
		balloon.Popped = true
		balloon.Frame = 0
		return nil
	}
	balloon.TimeToMove++
	if balloon.TimeToMove < 3 {
		return nil
	}
	balloon.TimeToMove = 0
	if slot.Pos.Z+1 > balloonMaxHeight {
		return wCtx.Arena.Free(h)
	}
	return rise(wCtx, h, slot, 1)
}

// CrashedParticleFall integrates a ballistic crash particle and removes it when it lands or expires.
func CrashedParticleFall(wCtx *sim.Context, h types.Handle, slot *entity.Slot) error {
	p, _ := entity.As[entity.CrashedVehicleParticle](slot)
	if p.TimeToLive == 0 {
		return wCtx.Arena.Free(h)
	}
	p.TimeToLive--
	p.VelocityX += p.AccelerationX
	p.VelocityY += p.AccelerationY
	p.VelocityZ += p.AccelerationZ
	p.Frame = (p.Frame + 1) % 12

	pos := slot.Pos
	pos.X += p.VelocityX
	pos.Y += p.VelocityY
	pos.Z += p.VelocityZ
	if pos.Z <= crashedParticleGround {
		return wCtx.Arena.Free(h)
	}
	return wCtx.Arena.MoveTo(h, pos)
}

func ExplosionCloudAnimate(wCtx *sim.Context, h types.Handle, slot *entity.Slot) error {
	e, _ := entity.As[entity.ExplosionCloud](slot)
	return animate(wCtx, h, &e.Frame, explosionCloudFrames)
}

func CrashSplashAnimate(wCtx *sim.Context, h types.Handle, slot *entity.Slot) error {
	e, _ := entity.As[entity.CrashSplash](slot)
	return animate(wCtx, h, &e.Frame, crashSplashFrames)
}

func ExplosionFlareAnimate(wCtx *sim.Context, h types.Handle, slot *entity.Slot) error {
	e, _ := entity.As[entity.ExplosionFlare](slot)
	return animate(wCtx, h, &e.Frame, explosionFlareFrames)
}

// animate advances a one-shot animation and frees the entity after its last frame.
func animate(wCtx *sim.Context, h types.Handle, frame *uint16, frames uint16) error {
	*frame++
	if *frame >= frames {
		return wCtx.Arena.Free(h)
	}
	return nil
}
