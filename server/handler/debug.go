package handler

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/sprite/arena"
	"pkg.world.dev/world-engine/sprite/checksum"
	"pkg.world.dev/world-engine/sprite/codec"
	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/sim"
	"pkg.world.dev/world-engine/sprite/types"
)

type ArenaSummaryResponse struct {
	Tick            uint64         `json:"tick"`
	Capacity        int            `json:"capacity"`
	Live            int            `json:"live"`
	Free            int            `json:"free"`
	Misc            int            `json:"misc"`
	MiscLimit       int            `json:"miscLimit"`
	SpatialRebuilds int            `json:"spatialRebuilds"`
	Kinds           map[string]int `json:"kinds"`
}

// GetArenaSummary reports arena occupancy per kind.
func GetArenaSummary(w *sim.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		var res ArenaSummaryResponse
		_ = w.View(func(a *arena.Arena) error {
			res = ArenaSummaryResponse{
				Tick:            w.CurrentTick(),
				Capacity:        a.Capacity(),
				Live:            a.LiveCount(),
				Free:            a.FreeCount(),
				Misc:            a.MiscCount(),
				MiscLimit:       a.MiscLimit(),
				SpatialRebuilds: a.SpatialRebuilds(),
				Kinds:           make(map[string]int),
			}
			for _, kind := range types.LiveKinds() {
				if n := a.Count(kind); n > 0 {
					res.Kinds[kind.String()] = n
				}
			}
			return nil
		})
		return ctx.JSON(&res)
	}
}

type debugEntityElement struct {
	ID     types.Handle    `json:"id"`
	Kind   string          `json:"kind"`
	Header entity.Header   `json:"header"`
	Body   json.RawMessage `json:"body"`
}

type EntitiesResponse []*debugEntityElement

// GetEntitiesByKind lists every live entity of the kind named in the path, ascending by handle.
func GetEntitiesByKind(w *sim.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		kind, err := types.ParseKind(ctx.Params("kind"))
		if err != nil || !kind.Live() {
			return fiber.NewError(fiber.StatusBadRequest, "unknown entity kind: "+ctx.Params("kind"))
		}

		result := make(EntitiesResponse, 0)
		err = w.View(func(a *arena.Arena) error {
			var eachErr error
			a.Each(kind, func(h types.Handle, slot *entity.Slot) bool {
				var element *debugEntityElement
				element, eachErr = newDebugEntity(h, slot)
				if eachErr != nil {
					return false
				}
				result = append(result, element)
				return true
			})
			return eachErr
		})
		if err != nil {
			return err
		}
		return ctx.JSON(&result)
	}
}

// GetEntity returns the live entity whose handle is in the path.
func GetEntity(w *sim.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		id, err := ctx.ParamsInt("id", -1)
		if err != nil || id < 0 || id >= int(types.NullHandle) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid entity handle: "+ctx.Params("id"))
		}
		h := types.Handle(id)

		var element *debugEntityElement
		err = w.View(func(a *arena.Arena) error {
			if id >= a.Capacity() {
				return eris.Wrapf(arena.ErrInvalidHandle, "handle %d, capacity %d", id, a.Capacity())
			}
			slot, ok := a.Resolve(h)
			if !ok {
				return eris.Wrapf(arena.ErrEntityNotLive, "handle %d", id)
			}
			element, err = newDebugEntity(h, slot)
			return err
		})
		if err != nil {
			return err
		}
		return ctx.JSON(element)
	}
}

type CellResponse struct {
	Cell     int              `json:"cell"`
	Entities EntitiesResponse `json:"entities"`
}

// GetCell lists the entities in the spatial cell containing the x and y query parameters. A missing x selects the
// null cell.
func GetCell(w *sim.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		pos := types.NullPosition
		if ctx.Query("x") != "" {
			pos = types.Position{X: int32(ctx.QueryInt("x")), Y: int32(ctx.QueryInt("y"))}
		}

		res := CellResponse{Entities: make(EntitiesResponse, 0)}
		err := w.View(func(a *arena.Arena) error {
			res.Cell = int(a.CellOf(pos))
			var eachErr error
			a.EachInCell(pos, func(h types.Handle, slot *entity.Slot) bool {
				var element *debugEntityElement
				element, eachErr = newDebugEntity(h, slot)
				if eachErr != nil {
					return false
				}
				res.Entities = append(res.Entities, element)
				return true
			})
			return eachErr
		})
		if err != nil {
			return err
		}
		return ctx.JSON(&res)
	}
}

type ChecksumResponse struct {
	Tick     uint64                 `json:"tick"`
	Checksum common.Hash            `json:"checksum"`
	Kinds    map[string]common.Hash `json:"kinds"`
}

// GetChecksum returns the network checksum of the arena along with a per-kind breakdown.
func GetChecksum(w *sim.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		res := ChecksumResponse{Kinds: make(map[string]common.Hash)}
		_ = w.View(func(a *arena.Arena) error {
			res.Tick = w.CurrentTick()
			res.Checksum = checksum.Compute(a)
			for kind, hash := range checksum.PerKind(a) {
				res.Kinds[kind.String()] = hash
			}
			return nil
		})
		return ctx.JSON(&res)
	}
}

type ValidateResponse struct {
	OK bool `json:"ok"`
}

// GetValidate runs the arena consistency check. A violation is reported as an internal server error.
func GetValidate(w *sim.World) func(*fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		if err := w.View(func(a *arena.Arena) error { return a.Validate() }); err != nil {
			return err
		}
		return ctx.JSON(ValidateResponse{OK: true})
	}
}

func newDebugEntity(h types.Handle, slot *entity.Slot) (*debugEntityElement, error) {
	body, err := codec.Encode(slot.Body())
	if err != nil {
		return nil, err
	}
	return &debugEntityElement{
		ID:     h,
		Kind:   slot.Kind.String(),
		Header: slot.Header,
		Body:   body,
	}, nil
}
