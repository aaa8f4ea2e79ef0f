package handler

import (
	"github.com/gofiber/fiber/v2"

	"pkg.world.dev/world-engine/sprite/sim"
)

type GetHealthResponse struct {
	IsServerRunning bool   `json:"isServerRunning"`
	Tick            uint64 `json:"tick"`
}

func GetHealth(w *sim.World) func(c *fiber.Ctx) error {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(GetHealthResponse{
			IsServerRunning: true,
			Tick:            w.CurrentTick(),
		})
	}
}
