// Package spatial maps coarse map tiles to the handles of the entities standing on them.
package spatial

import (
	"github.com/rotisserie/eris"

	"pkg.world.dev/world-engine/sprite/handlelist"
	"pkg.world.dev/world-engine/sprite/types"
)

const (
	DefaultGridSize = 256
	DefaultTileSize = 32
)

var (
	ErrNotInCell     = eris.New("handle not found in spatial cell")
	ErrAlreadyInCell = eris.New("handle already in spatial cell")
)

// Cell indexes Grid storage. Cells are laid out tileX-major; the last cell is the null cell.
type Cell int

// Grid is a size*size tile grid plus one reserved null cell for off-world and out-of-range positions.
// Every cell keeps its handles ascending.
type Grid struct {
	size     int
	tileSize int32
	cells    []handlelist.List
}

func NewGrid(size int, tileSize int32) *Grid {
	if size <= 0 {
		size = DefaultGridSize
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &Grid{
		size:     size,
		tileSize: tileSize,
		cells:    make([]handlelist.List, size*size+1),
	}
}

func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) TileSize() int32 {
	return g.tileSize
}

// NullCell is the bucket for positions that are off-world or outside the grid.
func (g *Grid) NullCell() Cell {
	return Cell(g.size * g.size)
}

// CellOf folds a world position to its cell. The fold uses |x| and |y| so it is symmetric around the origin.
func (g *Grid) CellOf(pos types.Position) Cell {
	if pos.IsNull() {
		return g.NullCell()
	}
	tileX := abs(pos.X) / g.tileSize
	tileY := abs(pos.Y) / g.tileSize
	if tileX < 0 || tileY < 0 || int(tileX) >= g.size || int(tileY) >= g.size {
		return g.NullCell()
	}
	return Cell(int(tileX)*g.size + int(tileY))
}

// Insert adds h to the cell containing pos.
func (g *Grid) Insert(h types.Handle, pos types.Position) error {
	c := g.CellOf(pos)
	if err := g.cells[c].Insert(h); err != nil {
		return eris.Wrapf(ErrAlreadyInCell, "handle %d cell %d", h, c)
	}
	return nil
}

// Remove deletes h from the cell containing pos.
func (g *Grid) Remove(h types.Handle, pos types.Position) error {
	c := g.CellOf(pos)
	if err := g.cells[c].Remove(h); err != nil {
		return eris.Wrapf(ErrNotInCell, "handle %d cell %d", h, c)
	}
	return nil
}

// Move relocates h from the cell of oldPos to the cell of newPos. It does nothing when both positions share a
// cell.
func (g *Grid) Move(h types.Handle, oldPos, newPos types.Position) error {
	from, to := g.CellOf(oldPos), g.CellOf(newPos)
	if from == to {
		return nil
	}
	if err := g.cells[from].Remove(h); err != nil {
		return eris.Wrapf(ErrNotInCell, "handle %d cell %d", h, from)
	}
	if err := g.cells[to].Insert(h); err != nil {
		return eris.Wrapf(ErrAlreadyInCell, "handle %d cell %d", h, to)
	}
	return nil
}

// Contents returns the handles in the cell containing pos. The slice aliases grid storage and is only valid
// until the next mutation.
func (g *Grid) Contents(pos types.Position) handlelist.List {
	return g.cells[g.CellOf(pos)]
}

// CellContents is Contents addressed by cell index. Out-of-range cells are empty.
func (g *Grid) CellContents(c Cell) handlelist.List {
	if c < 0 || int(c) >= len(g.cells) {
		return nil
	}
	return g.cells[c]
}

// Clear empties every cell, keeping their backing arrays.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].Clear()
	}
}

// Len returns the total number of handles across all cells.
func (g *Grid) Len() int {
	n := 0
	for _, c := range g.cells {
		n += len(c)
	}
	return n
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
