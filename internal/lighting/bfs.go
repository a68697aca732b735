package lighting

import (
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/material"
)

// ringQueue is a pre-sized FIFO of flat cell indices. Capacity 2×chunk
// volume is sufficient because a cell is only ever re-enqueued when its
// light increases, which happens at most voxel.MaxLight (31) times
// across a chunk's lighting lifetime, so the queue never needs to grow
// (spec.md §4.5).
type ringQueue struct {
	buf        []int
	head, tail int
	count      int
}

func newRingQueue(capacity int) *ringQueue {
	return &ringQueue{buf: make([]int, capacity)}
}

func (q *ringQueue) push(v int) {
	q.buf[q.tail] = v
	q.tail = (q.tail + 1) % len(q.buf)
	q.count++
}

func (q *ringQueue) pop() int {
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return v
}

func (q *ringQueue) empty() bool { return q.count == 0 }

// neighborOffsets lists the 6-neighbor local-coordinate deltas, in the
// same order as chunk.Face.
var neighborOffsets = [6][3]int{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// PropagateLight runs the horizontal BFS pass of spec.md §4.5 over c,
// after ComputeSunlightColumns has already populated the column-pass
// light values. It first injects boundary light from any resident
// neighbor chunks on a best-effort basis, then seeds from emissive solid
// cells and from "frontier" cells undervalued relative to a brighter
// neighbor, then propagates.
func PropagateLight(c *chunk.Chunk, pal *material.Palette, neighbors chunk.Neighbors) {
	data := c.Data()
	q := newRingQueue(2 * chunk.Volume)

	injectBorders(c, neighbors, q)

	for z := 0; z < chunk.Size; z++ {
		for y := 0; y < chunk.Size; y++ {
			for x := 0; x < chunk.Size; x++ {
				idx := chunk.Index(x, y, z)
				cell := data[idx]

				if cell.IsSolid() {
					if em := pal.EmissionOf(cell.Material()); em > 0 && int(cell.Light()) < int(em) {
						data[idx] = cell.WithLight(int(em))
						q.push(idx)
					}
					continue
				}

				light := int(cell.Light())
				if light < 2 {
					continue
				}
				if isFrontier(c, x, y, z, light) {
					q.push(idx)
				}
			}
		}
	}

	for !q.empty() {
		idx := q.pop()
		src := int(data[idx].Light())
		x, y, z := unindex(idx)

		for _, off := range neighborOffsets {
			nx, ny, nz := x+off[0], y+off[1], z+off[2]
			if !chunk.InBounds(nx, ny, nz) {
				continue
			}
			nidx := chunk.Index(nx, ny, nz)
			ncell := data[nidx]
			if ncell.IsSolid() && pal.TypeOf(ncell.Material()) == material.Solid {
				continue
			}
			if int(ncell.Light()) < src-1 {
				data[nidx] = ncell.WithLight(src - 1)
				q.push(nidx)
			}
		}
	}

	c.MarkDirty()
}

// isFrontier reports whether the cell at (x,y,z) with the given light
// has an in-bounds 6-neighbor strictly darker than light-1, making it a
// BFS seed per spec.md §4.5.
func isFrontier(c *chunk.Chunk, x, y, z, light int) bool {
	for _, off := range neighborOffsets {
		nx, ny, nz := x+off[0], y+off[1], z+off[2]
		if !chunk.InBounds(nx, ny, nz) {
			continue
		}
		if int(c.GetCell(nx, ny, nz).Light()) < light-1 {
			return true
		}
	}
	return false
}

// injectBorders reads each resident neighbor's boundary layer and seeds
// this chunk's matching edge cells when the neighbor offers strictly
// brighter light, per spec.md §4.5's "best-effort, not a correctness
// requirement" border injection.
func injectBorders(c *chunk.Chunk, neighbors chunk.Neighbors, q *ringQueue) {
	if neighbors == nil {
		return
	}
	data := c.Data()

	for f := chunk.Face(0); f < 6; f++ {
		off := neighborOffsets[f]
		nb := neighbors.Get(c.Coord.X+off[0], c.Coord.Y+off[1], c.Coord.Z+off[2])
		if nb == nil {
			continue
		}

		localLayer, remoteLayer := boundaryLayers(off)
		for _, p := range localLayer {
			lx, ly, lz := p[0], p[1], p[2]
			cell := c.GetCell(lx, ly, lz)
			if cell.IsSolid() {
				continue
			}

			rp := remoteLayer(lx, ly, lz)
			remote := int(nb.GetCell(rp[0], rp[1], rp[2]).Light())
			if remote-1 > int(cell.Light()) {
				idx := chunk.Index(lx, ly, lz)
				data[idx] = cell.WithLight(remote - 1)
				q.push(idx)
			}
		}
	}
}

// boundaryLayers returns, for a face offset, the list of this chunk's
// boundary-layer local coordinates on that face, and a function mapping
// each to the matching coordinate just inside the neighbor across that
// face.
func boundaryLayers(off [3]int) ([][3]int, func(x, y, z int) [3]int) {
	var coords [][3]int
	var fixedAxis, fixedVal, neighborVal int

	switch {
	case off[0] != 0:
		fixedAxis = 0
		if off[0] < 0 {
			fixedVal, neighborVal = 0, chunk.Size-1
		} else {
			fixedVal, neighborVal = chunk.Size-1, 0
		}
	case off[1] != 0:
		fixedAxis = 1
		if off[1] < 0 {
			fixedVal, neighborVal = 0, chunk.Size-1
		} else {
			fixedVal, neighborVal = chunk.Size-1, 0
		}
	default:
		fixedAxis = 2
		if off[2] < 0 {
			fixedVal, neighborVal = 0, chunk.Size-1
		} else {
			fixedVal, neighborVal = chunk.Size-1, 0
		}
	}

	for a := 0; a < chunk.Size; a++ {
		for b := 0; b < chunk.Size; b++ {
			var p [3]int
			p[fixedAxis] = fixedVal
			p[(fixedAxis+1)%3] = a
			p[(fixedAxis+2)%3] = b
			coords = append(coords, p)
		}
	}

	remap := func(x, y, z int) [3]int {
		p := [3]int{x, y, z}
		p[fixedAxis] = neighborVal
		return p
	}

	return coords, remap
}

func unindex(idx int) (x, y, z int) {
	z = idx / (chunk.Size * chunk.Size)
	rem := idx % (chunk.Size * chunk.Size)
	y = rem / chunk.Size
	x = rem % chunk.Size
	return
}
