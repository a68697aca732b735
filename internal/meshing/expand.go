// Package meshing implements the Surface-Net (dual-contouring) mesher
// that turns a chunk's margin-expanded cell data into per-material-type
// triangle lists, grounded on the teacher's internal/meshing package
// (its per-direction traversal and packed-vertex idiom in greedy.go, and
// its fluid.go layer-splitting precedent for producing more than one
// mesh from one chunk) generalized from greedy block meshing to
// continuous dual contouring.
package meshing

import (
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/voxel"
)

// ExpandedSize is the edge length of the margin-expanded grid (32 + 2).
const ExpandedSize = chunk.Size + 2

// expandedVolume is the total cell count of the expanded grid.
const expandedVolume = ExpandedSize * ExpandedSize * ExpandedSize

// Expanded is a dense 34³ copy of a chunk's cells plus one cell of
// margin on every side, the mesher's sole input (spec.md §4.6).
type Expanded struct {
	cells [expandedVolume]voxel.Cell

	// HighXResident, HighYResident, HighZResident report whether the
	// +X/+Y/+Z neighbor chunk was resident when this buffer was built;
	// high-boundary quads are skipped when the corresponding neighbor is
	// absent so seams aren't double-walled (spec.md §4.6).
	HighXResident, HighYResident, HighZResident bool
}

// expandedIndex converts expanded-grid coordinates in [0, ExpandedSize)
// to a flat index. Local chunk coordinate 0 lives at expanded index 1.
func expandedIndex(x, y, z int) int {
	return x + y*ExpandedSize + z*ExpandedSize*ExpandedSize
}

// Expand builds the margin-expanded buffer for c using neighbors to
// resolve cells outside the chunk's own bounds (spec.md §4.2's margin
// sampling, reused verbatim from chunk.CellWithMargin).
func Expand(c *chunk.Chunk, neighbors chunk.Neighbors) *Expanded {
	e := &Expanded{}
	for z := -1; z <= chunk.Size; z++ {
		for y := -1; y <= chunk.Size; y++ {
			for x := -1; x <= chunk.Size; x++ {
				e.cells[expandedIndex(x+1, y+1, z+1)] = c.CellWithMargin(x, y, z, neighbors)
			}
		}
	}

	e.HighXResident = neighbors.Get(c.Coord.X+1, c.Coord.Y, c.Coord.Z) != nil
	e.HighYResident = neighbors.Get(c.Coord.X, c.Coord.Y+1, c.Coord.Z) != nil
	e.HighZResident = neighbors.Get(c.Coord.X, c.Coord.Y, c.Coord.Z+1) != nil
	return e
}

// at returns the cell at expanded-grid coordinates (ex, ey, ez), each in
// [0, ExpandedSize).
func (e *Expanded) at(ex, ey, ez int) voxel.Cell {
	return e.cells[expandedIndex(ex, ey, ez)]
}
