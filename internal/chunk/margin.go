package chunk

import "github.com/Dan0net/worldify-multiplayer-sub004/internal/voxel"

// Neighbors maps a chunk coordinate to its resident neighbor chunk, used
// by margin sampling and by the mesher's 34³ expansion.
type Neighbors interface {
	Get(cx, cy, cz int) *Chunk
}

// MapNeighbors is the simplest Neighbors implementation, backed directly
// by a coordinate-keyed map (spec.md §9: "use a triple-keyed hash map").
type MapNeighbors map[Coord]*Chunk

func (m MapNeighbors) Get(cx, cy, cz int) *Chunk {
	return m[Coord{cx, cy, cz}]
}

// emptyAir is the synthetic cell returned for margin coordinates whose
// owning neighbor chunk is not resident: weight -0.5, material 0, light 0.
var emptyAir = voxel.Pack(-0.5, 0, 0)

// CellWithMargin returns the cell at local coordinates (x,y,z), which may
// range over [-1, 32] along any axis. Coordinates inside [0,31] read this
// chunk directly; a coordinate of -1 or 32 along an axis reads the
// matching boundary cell of the appropriate neighbor chunk. If that
// neighbor is not resident, a synthetic empty-air cell is returned
// (spec.md §4.2).
func (c *Chunk) CellWithMargin(x, y, z int, neighbors Neighbors) voxel.Cell {
	if InBounds(x, y, z) {
		return c.GetCell(x, y, z)
	}

	dcx, lx := marginFold(x)
	dcy, ly := marginFold(y)
	dcz, lz := marginFold(z)

	if dcx == 0 && dcy == 0 && dcz == 0 {
		return c.GetCell(lx, ly, lz)
	}

	nb := neighbors.Get(c.Coord.X+dcx, c.Coord.Y+dcy, c.Coord.Z+dcz)
	if nb == nil {
		return emptyAir
	}
	return nb.GetCell(lx, ly, lz)
}

// marginFold maps a margin coordinate in [-1, 32] to (chunk delta, local
// coordinate in [0, 31]).
func marginFold(v int) (delta, local int) {
	switch {
	case v < 0:
		return -1, Size + v
	case v >= Size:
		return 1, v - Size
	default:
		return 0, v
	}
}
