// Package server exposes a read-only HTTP debug surface over a running world.
package server

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"pkg.world.dev/world-engine/sprite/server/handler"
	"pkg.world.dev/world-engine/sprite/sim"
)

const (
	DefaultPort     = "4040"
	shutdownTimeout = 5 * time.Second
)

type Server struct {
	app  *fiber.App
	w    *sim.World
	port string
}

// New returns an HTTP server with the health and debug handlers for w.
func New(w *sim.World, port string) (*Server, error) {
	if w == nil {
		return nil, eris.New("server requires a non-nil world")
	}
	if port == "" {
		port = DefaultPort
	}

	app := fiber.New(fiber.Config{
		Network:               "tcp", // Enable server listening on both ipv4 & ipv6 (default: ipv4 only)
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	s := &Server{
		app:  app,
		w:    w,
		port: port,
	}
	s.setupRoutes()

	return s, nil
}

// App exposes the underlying fiber app, mainly so tests can drive it with app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Serve serves the application, blocking until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		log.Info().Msgf("Starting HTTP server at port %s", s.port)
		if err := s.app.Listen(":" + s.port); err != nil {
			serverErr <- eris.Wrap(err, "error starting http server")
		}
	}()

	select {
	case err := <-serverErr:
		return eris.Wrap(err, "server encountered an error")
	case <-ctx.Done():
		if err := s.shutdown(); err != nil {
			return eris.Wrap(err, "error shutting down server")
		}
	}

	return nil
}

func (s *Server) shutdown() error {
	log.Info().Msg("Shutting down server")
	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return eris.Wrap(err, "error shutting down server")
	}
	log.Info().Msg("Successfully shut down server")
	return nil
}

func (s *Server) setupRoutes() {
	// Route: /health
	s.app.Get("/health", handler.GetHealth(s.w))

	// Route: /debug/...
	debug := s.app.Group("/debug")
	debug.Get("/entities", handler.GetArenaSummary(s.w))
	debug.Get("/entities/:kind", handler.GetEntitiesByKind(s.w))
	debug.Get("/entity/:id", handler.GetEntity(s.w))
	debug.Get("/cell", handler.GetCell(s.w))
	debug.Get("/checksum", handler.GetChecksum(s.w))
	debug.Get("/validate", handler.GetValidate(s.w))
}
