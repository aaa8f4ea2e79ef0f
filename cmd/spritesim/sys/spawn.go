package sys

import (
	"pkg.world.dev/world-engine/sprite/arena"
	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/sim"
	"pkg.world.dev/world-engine/sprite/types"
)

// spawnAt creates a T at pos. A full arena or an exhausted misc cap is not an error: the spawn is skipped and ok
// is false.
func spawnAt[T entity.Body](wCtx *sim.Context, pos types.Position) (*T, bool, error) {
	body, slot, err := arena.Create[T](wCtx.Arena)
	if arena.IsCapacityError(err) {
		wCtx.Logger.Debug().Err(err).Str("kind", entity.KindOf[T]().String()).Msg("spawn skipped")
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	if err := wCtx.Arena.MoveTo(slot.ID, pos); err != nil {
		return nil, false, err
	}
	return body, true, nil
}

// rise lifts an entity by dz world units.
func rise(wCtx *sim.Context, h types.Handle, slot *entity.Slot, dz int32) error {
	pos := slot.Pos
	pos.Z += dz
	return wCtx.Arena.MoveTo(h, pos)
}
