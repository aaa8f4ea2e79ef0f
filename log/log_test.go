package log_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"pkg.world.dev/world-engine/assert"

	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/log"
	"pkg.world.dev/world-engine/sprite/types"
)

type fakeArena struct {
	counts map[types.Kind]int
}

func (f fakeArena) Capacity() int             { return 100 }
func (f fakeArena) MiscLimit() int            { return 10 }
func (f fakeArena) Count(kind types.Kind) int { return f.counts[kind] }
func (f fakeArena) FreeCount() int            { return 100 - f.counts[types.KindGuest] - f.counts[types.KindDuck] }
func (f fakeArena) MiscCount() int            { return f.counts[types.KindDuck] }

func TestArenaLog(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	target := fakeArena{counts: map[types.Kind]int{types.KindGuest: 3, types.KindDuck: 2}}

	log.Arena(&logger, target, zerolog.InfoLevel)

	require.JSONEq(t, `{
		"level":"info",
		"capacity":100,
		"live":5,
		"free":95,
		"misc":2,
		"misc_limit":10,
		"kinds":[{"kind":"guest","count":3},{"kind":"duck","count":2}]
	}`, buf.String())
}

func TestEntityLog(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	var slot entity.Slot
	slot.Init(12, types.KindVehicle)

	log.Entity(&logger, zerolog.DebugLevel, &slot, "created")
	require.JSONEq(t,
		`{"level":"debug","entity_id":12,"kind":"vehicle","pos":"(null)","message":"created"}`,
		buf.String())
}

func TestSubLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	log.CreateSystemLogger(&logger, "litter").Info().Msg("swept")
	log.CreateTickLogger(&logger, 42).Info().Msg("tick")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"system":"litter"`)
	assert.Contains(t, lines[1], `"tick":42`)
}
