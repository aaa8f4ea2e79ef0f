package sim

import (
	"path/filepath"
	"reflect"
	"runtime"
	"slices"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/sprite/arena"
	"pkg.world.dev/world-engine/sprite/entity"
	spritelog "pkg.world.dev/world-engine/sprite/log"
	"pkg.world.dev/world-engine/sprite/statsd"
	"pkg.world.dev/world-engine/sprite/types"
)

// Context is handed to systems for the duration of one tick.
type Context struct {
	Arena   *arena.Arena
	History *History
	Tick    uint64
	Logger  *zerolog.Logger
}

// System updates one entity. It runs once per tick for every live entity of the kind it was registered for and
// may allocate, free or move entities, including the one it was handed.
type System func(wCtx *Context, h types.Handle, slot *entity.Slot) error

type registeredSystem struct {
	name string
	kind types.Kind
	fn   System
}

type systemManager struct {
	// systems holds every registered system grouped by kind, each group in registration order.
	systems [types.KindCount][]registeredSystem
	names   []string

	// currentSystem is the name of the system that is currently running.
	currentSystem string
}

// register adds a system for kind. The system name is derived from the function name and must be unique.
func (m *systemManager) register(kind types.Kind, fn System) error {
	if !kind.Live() {
		return eris.Wrapf(types.ErrUnknownKind, "system for %s", kind)
	}
	name := filepath.Base(runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name())
	if slices.Contains(m.names, name) {
		return eris.Errorf("system %q is already registered", name)
	}
	m.names = append(m.names, name)
	m.systems[kind] = append(m.systems[kind], registeredSystem{name: name, kind: kind, fn: fn})
	return nil
}

// run executes every system kind by kind, in registration order within a kind, over the kind's live entities in
// ascending handle order.
func (m *systemManager) run(wCtx *Context) error {
	allSystemStartTime := time.Now()
	tickLogger := wCtx.Logger
	for _, kind := range types.LiveKinds() {
		for _, sys := range m.systems[kind] {
			m.currentSystem = sys.name
			wCtx.Logger = spritelog.CreateSystemLogger(tickLogger, sys.name)

			systemStartTime := time.Now()
			it := wCtx.Arena.IterateByKind(kind)
			for it.Next() {
				slot, ok := it.Slot()
				if !ok {
					continue
				}
				if err := sys.fn(wCtx, it.Handle(), slot); err != nil {
					m.currentSystem = ""
					wCtx.Logger = tickLogger
					return eris.Wrapf(err, "system %s generated an error on entity %d", sys.name, it.Handle())
				}
			}
			statsd.EmitTickStat(systemStartTime, sys.name)
		}
	}
	m.currentSystem = ""
	wCtx.Logger = tickLogger
	statsd.EmitTickStat(allSystemStartTime, "all_systems")
	return nil
}

func (m *systemManager) systemNames() []string {
	return slices.Clone(m.names)
}
