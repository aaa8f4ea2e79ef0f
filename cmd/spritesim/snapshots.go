package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"pkg.world.dev/world-engine/sprite/config"
	"pkg.world.dev/world-engine/sprite/snapshot"
	"pkg.world.dev/world-engine/sprite/types"
)

var errNoRedis = eris.New("snapshots need --redis-address")

func newSnapshotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Inspect and prune the park snapshots stored in redis",
	}
	cmd.AddCommand(newSnapshotsListCmd(), newSnapshotsPruneCmd())
	return cmd
}

func newSnapshotsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the ticks that have a stored snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(store *snapshot.RedisStore) error {
				ticks, err := store.Ticks(cmd.Context())
				if err != nil {
					return err
				}
				for _, tick := range ticks {
					fmt.Fprintln(cmd.OutOrStdout(), tick)
				}
				return nil
			})
		},
	}
}

func newSnapshotsPruneCmd() *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the most recent snapshots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(store *snapshot.RedisStore) error {
				return store.Prune(cmd.Context(), keep)
			})
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 1, "number of snapshots to keep")
	return cmd
}

func withStore(cmd *cobra.Command, fn func(store *snapshot.RedisStore) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return openStore(cfg, fn)
}

func openStore(cfg config.Config, fn func(store *snapshot.RedisStore) error) error {
	if cfg.RedisAddress == "" {
		return errNoRedis
	}
	client := newRedisClient(cfg)
	defer client.Close()
	store, err := snapshot.NewRedisStore(client, types.Namespace(cfg.Namespace))
	if err != nil {
		return err
	}
	return fn(store)
}
