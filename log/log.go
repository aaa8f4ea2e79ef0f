package log

import (
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/types"
)

// Loggable is anything that can report arena occupancy.
type Loggable interface {
	Capacity() int
	MiscLimit() int
	Count(kind types.Kind) int
	FreeCount() int
	MiscCount() int
}

func loadKindIntoArrayLogger(kind types.Kind, count int, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Str("kind", kind.String())
	dictLogger = dictLogger.Int("count", count)
	return arrayLogger.Dict(dictLogger)
}

func loadCountsToEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	arrayLogger := zerolog.Arr()
	live := 0
	for _, kind := range types.LiveKinds() {
		n := target.Count(kind)
		live += n
		if n == 0 {
			continue
		}
		arrayLogger = loadKindIntoArrayLogger(kind, n, arrayLogger)
	}
	zeroLoggerEvent.Int("capacity", target.Capacity())
	zeroLoggerEvent.Int("live", live)
	zeroLoggerEvent.Int("free", target.FreeCount())
	zeroLoggerEvent.Int("misc", target.MiscCount())
	zeroLoggerEvent.Int("misc_limit", target.MiscLimit())
	return zeroLoggerEvent.Array("kinds", arrayLogger)
}

func loadEntityIntoEvent(zeroLoggerEvent *zerolog.Event, slot *entity.Slot) *zerolog.Event {
	zeroLoggerEvent.Int("entity_id", int(slot.ID))
	zeroLoggerEvent.Str("kind", slot.Kind.String())
	return zeroLoggerEvent.Stringer("pos", slot.Pos)
}

// Arena logs the occupancy of every list in the arena.
func Arena(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	loadCountsToEvent(zeroLoggerEvent, target).Send()
}

// Entity logs the identity and location of a single entity with the given message.
func Entity(logger *zerolog.Logger, level zerolog.Level, slot *entity.Slot, msg string) {
	zeroLoggerEvent := logger.WithLevel(level)
	loadEntityIntoEvent(zeroLoggerEvent, slot).Msg(msg)
}

// CreateSystemLogger creates a sub logger with the entry {"system" : systemName}.
func CreateSystemLogger(logger *zerolog.Logger, systemName string) *zerolog.Logger {
	newLogger := logger.With().Str("system", systemName).Logger()
	return &newLogger
}

// CreateTickLogger creates a sub logger that stamps every entry with the tick number.
func CreateTickLogger(logger *zerolog.Logger, tick uint64) *zerolog.Logger {
	newLogger := logger.With().Uint64("tick", tick).Logger()
	return &newLogger
}
