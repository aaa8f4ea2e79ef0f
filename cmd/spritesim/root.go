package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pkg.world.dev/world-engine/sprite/arena"
	"pkg.world.dev/world-engine/sprite/cmd/spritesim/sys"
	"pkg.world.dev/world-engine/sprite/config"
	"pkg.world.dev/world-engine/sprite/server"
	"pkg.world.dev/world-engine/sprite/sim"
	"pkg.world.dev/world-engine/sprite/snapshot"
	"pkg.world.dev/world-engine/sprite/statsd"
	"pkg.world.dev/world-engine/sprite/types"
)

const snapshotEvery = 400

var defaultPopulation = sys.Population{Guests: 200, Staff: 8, Vehicles: 12}

// NewRootCmd creates the spritesim command. Run without a subcommand it opens the park.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "spritesim",
		Short:         "Run the demo park simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runPark(cmd.Context(), cfg)
		},
	}
	config.Flags(cmd.PersistentFlags())
	cmd.AddCommand(newSnapshotsCmd())
	return cmd
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	zerolog.SetGlobalLevel(cfg.Level())
	return cfg, nil
}

func newRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
	})
}

func runPark(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	if cfg.StatsdAddress != "" {
		if err := statsd.Init(cfg.StatsdAddress, []string{"namespace:" + cfg.Namespace}); err != nil {
			return err
		}
	}

	opts := []sim.Option{
		sim.WithArenaOptions(cfg.ArenaOptions()...),
		sim.WithLogger(log.Logger),
	}
	if cfg.RedisAddress != "" {
		client := newRedisClient(cfg)
		defer client.Close()
		store, err := snapshot.NewRedisStore(client, types.Namespace(cfg.Namespace))
		if err != nil {
			return err
		}
		opts = append(opts, sim.WithSnapshotStore(store, snapshotEvery))
	}

	w, err := sim.New(opts...)
	if err != nil {
		return err
	}
	if err := sys.Register(w); err != nil {
		return err
	}

	if cfg.RedisAddress != "" {
		if err := w.LoadSnapshot(ctx); err != nil && !eris.Is(err, snapshot.ErrNoSnapshot) {
			return eris.Wrap(err, "failed to restore park")
		}
	}
	if err := w.Update(func(a *arena.Arena) error {
		if a.LiveCount() > 0 {
			return nil
		}
		return sys.SpawnPark(a, defaultPopulation)
	}); err != nil {
		return err
	}

	srv, err := server.New(w, cfg.DebugPort)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickRate))
	defer ticker.Stop()

	log.Info().
		Int("capacity", cfg.Capacity).
		Int("tick_rate", cfg.TickRate).
		Str("debug_port", cfg.DebugPort).
		Msg("park open")

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return srv.Serve(egCtx)
	})
	eg.Go(func() error {
		return w.Run(egCtx, ticker.C)
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	if cfg.RedisAddress != "" {
		if err := w.SaveSnapshot(context.Background()); err != nil {
			return eris.Wrap(err, "failed to save park on shutdown")
		}
	}
	log.Info().Uint64("tick", w.CurrentTick()).Msg("park closed")
	return nil
}
