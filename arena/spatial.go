package arena

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/sprite/handlelist"
	"pkg.world.dev/world-engine/sprite/spatial"
	"pkg.world.dev/world-engine/sprite/statsd"
	"pkg.world.dev/world-engine/sprite/types"
)

// MoveTo sets the authoritative position of a live entity and moves it between spatial cells. The rendered
// position follows; the tweener overrides it between ticks.
func (a *Arena) MoveTo(h types.Handle, pos types.Position) error {
	slot, err := a.liveSlot(h)
	if err != nil {
		return err
	}
	old := slot.Pos
	slot.Pos = pos
	slot.RenderPos = pos
	if err := a.grid.Move(h, old, pos); err != nil {
		a.healSpatial(err)
	}
	return nil
}

// CellOf returns the spatial cell a position folds into.
func (a *Arena) CellOf(pos types.Position) spatial.Cell {
	return a.grid.CellOf(pos)
}

// CellContents returns a copy of the handles in the cell containing pos, ascending.
func (a *Arena) CellContents(pos types.Position) handlelist.List {
	return a.grid.Contents(pos).Clone()
}

// RebuildSpatialIndex discards the grid and re-inserts every live entity at its current position.
func (a *Arena) RebuildSpatialIndex() {
	a.grid.Clear()
	for _, kind := range types.LiveKinds() {
		for _, h := range a.lists[kind] {
			if err := a.grid.Insert(h, a.slots[h].Pos); err != nil {
				// Each handle is on exactly one kind list, so a duplicate means the lists themselves are broken.
				a.fatal(eris.Wrapf(ErrCorrupt, "rebuilding spatial index: %v", err))
			}
		}
	}
}

// healSpatial recovers from a grid that disagrees with entity positions. Reaching this is a bug elsewhere; the
// rebuild only keeps spatial queries complete.
func (a *Arena) healSpatial(cause error) {
	a.spatialRebuilds++
	a.logger.Warn().
		Err(cause).
		Bool("bug", true).
		Int("rebuilds", a.spatialRebuilds).
		Msg("spatial index inconsistency, rebuilding from live entities")
	statsd.IncrSpatialRebuild()
	a.RebuildSpatialIndex()
}
