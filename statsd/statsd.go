// Package statsd emits the arena and tick metrics through a process-wide datadog client. The client is a no-op
// until Init is called, so library users who never configure an agent pay nothing.
package statsd

import (
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"pkg.world.dev/world-engine/sprite/types"
)

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

// SetClient replaces the global client. Tests use it to capture emitted metrics.
func SetClient(c ddstatsd.ClientInterface) {
	if c == nil {
		c = &ddstatsd.NoOpClient{}
	}
	client = c
}

func EmitTickStat(start time.Time, stage string) {
	duration := time.Since(start)
	err := Client().Timing("tick", duration, []string{stage}, 1)
	if err != nil {
		log.Logger.Warn().Msgf("failed to emit tick stat: %v", err)
	}
}

// EmitEntityCount reports the live population of one kind.
func EmitEntityCount(kind types.Kind, count int) {
	err := Client().Gauge("entities", float64(count), []string{"kind:" + kind.String()}, 1)
	if err != nil {
		log.Logger.Warn().Msgf("failed to emit entity count: %v", err)
	}
}

// EmitFreeSlots reports how many arena slots are unused.
func EmitFreeSlots(count int) {
	err := Client().Gauge("free_slots", float64(count), nil, 1)
	if err != nil {
		log.Logger.Warn().Msgf("failed to emit free slots: %v", err)
	}
}

// IncrSpatialRebuild counts self-healing spatial index rebuilds. Any non-zero value points at a bug.
func IncrSpatialRebuild() {
	err := Client().Incr("spatial_index_rebuild", []string{"bug:true"}, 1)
	if err != nil {
		log.Logger.Warn().Msgf("failed to emit spatial rebuild: %v", err)
	}
}

// IncrAllocationFailure counts allocations refused for lack of capacity.
func IncrAllocationFailure(kind types.Kind, reason string) {
	err := Client().Incr("allocation_failure", []string{"kind:" + kind.String(), "reason:" + reason}, 1)
	if err != nil {
		log.Logger.Warn().Msgf("failed to emit allocation failure: %v", err)
	}
}

func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		// The statsd namespace is the prefix of all metrics
		ddstatsd.WithNamespace("sprite"),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return eris.Wrap(err, "")
	}
	// Success! replace the global client
	client = newClient
	return nil
}
