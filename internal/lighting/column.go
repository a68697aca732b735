// Package lighting computes per-chunk sunlight and emissive light in two
// passes, grounded on the teacher's internal/world density/block-table
// style (a per-cell classification table driving a simple top-down scan)
// generalized to the packed 5-bit light field, and on the teacher's
// internal/world.ChunkStreamer's pending-queue idiom generalized from a
// request queue to a BFS frontier ring buffer.
package lighting

import (
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/material"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/voxel"
)

// FullSunlight is the incoming light for a column with nothing above it.
const FullSunlight = int(voxel.MaxLight)

// ColumnLight holds the per-(x,z)-column outgoing light values of a
// chunk, passed to the chunk below as its ComputeSunlightColumns input.
type ColumnLight [chunk.Size * chunk.Size]uint8

func columnIndex(x, z int) int { return x + z*chunk.Size }

// FullSunlightColumns returns a ColumnLight with every column at full
// sunlight, used as the "incoming" value for a chunk with no resident
// chunk above it.
func FullSunlightColumns() ColumnLight {
	var cl ColumnLight
	for i := range cl {
		cl[i] = uint8(FullSunlight)
	}
	return cl
}

// ComputeSunlightColumns runs the column pass of spec.md §4.5: for each
// (x, z) column, scans top-down from y=31 to y=0, writing light into
// every cell and returning the per-column light that should be handed to
// the chunk below as its incoming value.
//
// incoming holds, for each column, the sunlight arriving at y=31 from
// above; pass FullSunlightColumns() when no chunk is resident above.
func ComputeSunlightColumns(c *chunk.Chunk, pal *material.Palette, incoming ColumnLight) ColumnLight {
	var outgoing ColumnLight
	data := c.Data()

	for z := 0; z < chunk.Size; z++ {
		for x := 0; x < chunk.Size; x++ {
			light := int(incoming[columnIndex(x, z)])
			blocked := false

			for y := chunk.Size - 1; y >= 0; y-- {
				idx := chunk.Index(x, y, z)
				cell := data[idx]

				if blocked {
					data[idx] = cell.WithLight(0)
					continue
				}

				if !cell.IsSolid() {
					data[idx] = cell.WithLight(light)
					continue
				}

				switch pal.TypeOf(cell.Material()) {
				case material.Solid:
					data[idx] = cell.WithLight(0)
					blocked = true
				default: // Transparent, Liquid: pass light through, attenuated
					data[idx] = cell.WithLight(light)
					if light > 0 {
						light--
					}
				}
			}

			outgoing[columnIndex(x, z)] = uint8(light)
		}
	}

	c.MarkDirty()
	return outgoing
}
