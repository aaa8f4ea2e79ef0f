package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"pkg.world.dev/world-engine/sprite/arena"
)

type ErrorResponse struct {
	Error Error `json:"error"`
}

type Error struct {
	Message string `json:"message"`
	// Kind names the arena error class when the failure came from the arena.
	Kind string `json:"kind,omitempty"`
}

// arenaErrorKinds maps arena sentinels to the status and class the debug API reports for them.
var arenaErrorKinds = []struct {
	err   error
	code  int
	class string
}{
	{arena.ErrInvalidHandle, fiber.StatusBadRequest, "invalid_handle"},
	{arena.ErrEntityNotLive, fiber.StatusNotFound, "not_live"},
	{arena.ErrUnknownKind, fiber.StatusBadRequest, "unknown_kind"},
	{arena.ErrArenaFull, fiber.StatusServiceUnavailable, "arena_full"},
	{arena.ErrMiscLimitReached, fiber.StatusServiceUnavailable, "misc_limit"},
	{arena.ErrCorrupt, fiber.StatusInternalServerError, "corrupt"},
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	resp := Error{Message: err.Error()}

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	} else {
		for _, k := range arenaErrorKinds {
			if eris.Is(err, k.err) {
				code = k.code
				resp.Kind = k.class
				break
			}
		}
	}
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("debug request failed")
	}

	c.Set(fiber.HeaderContentType, "application/json")
	return c.Status(code).JSON(ErrorResponse{Error: resp})
}
