// Command spritesim runs the demo park: a fixed-rate simulation over the entity arena with optional redis
// snapshots, statsd metrics and a debug http server.
package main

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg(eris.ToString(err, true))
	}
}
