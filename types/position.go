package types

import (
	"fmt"
	"math"
)

// LocationNull in the X coordinate marks a position as off-world. Off-world entities are kept in the spatial
// index's null cell.
const LocationNull int32 = math.MinInt16

// Position is a world-space location in world units. One map tile is TileSize units wide.
type Position struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
	Z int32 `json:"z"`
}

// NullPosition is where freshly allocated entities live until they are first moved.
var NullPosition = Position{X: LocationNull}

func (p Position) IsNull() bool {
	return p.X == LocationNull
}

func (p Position) String() string {
	if p.IsNull() {
		return "(null)"
	}
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Lerp linearly interpolates between p and q. alpha is clamped to [0,1]; results are rounded half away from zero.
func (p Position) Lerp(q Position, alpha float64) Position {
	switch {
	case alpha <= 0:
		return p
	case alpha >= 1:
		return q
	}
	inv := 1 - alpha
	return Position{
		X: int32(math.Round(float64(q.X)*alpha + float64(p.X)*inv)),
		Y: int32(math.Round(float64(q.Y)*alpha + float64(p.Y)*inv)),
		Z: int32(math.Round(float64(q.Z)*alpha + float64(p.Z)*inv)),
	}
}
