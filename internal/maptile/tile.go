// Package maptile implements surface-column bundling (spec.md §4.10): a
// 32×32 height/material tile paired with the chunks whose Y range
// intersects it, reducing request chatter for newly-entered columns.
// Grounded on the teacher's internal/world.DensityGenerator (a
// height/density field sampled per (x,z) column) for the tile's height
// semantics, and on world.ChunkStore's "apply only if newer" idiom
// (chunk_store.go's modCount-guarded inserts) for the atomic chunk
// insert/replace rule.
package maptile

import (
	"fmt"
	"strings"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
)

// TileSize is the edge length of a map tile in columns (spec.md §6:
// "1024 int16 heights").
const TileSize = 32

const tileCells = TileSize * TileSize

// Tile is a 32×32 surface height/material sample, keyed by tile
// coordinate (tx, tz); one tile covers the same XZ footprint as one
// chunk column.
type Tile struct {
	TX, TZ    int
	Heights   [tileCells]int16
	Materials [tileCells]uint8
}

func tileIndex(x, z int) int { return x + z*TileSize }

// New creates an empty tile at (tx, tz).
func New(tx, tz int) *Tile {
	return &Tile{TX: tx, TZ: tz}
}

// Set writes the height and material at local column (x, z) in
// [0, TileSize).
func (t *Tile) Set(x, z int, height int16, mat uint8) {
	idx := tileIndex(x, z)
	t.Heights[idx] = height
	t.Materials[idx] = mat
}

// HeightAt returns the height at local column (x, z).
func (t *Tile) HeightAt(x, z int) int16 { return t.Heights[tileIndex(x, z)] }

// MaterialAt returns the material at local column (x, z).
func (t *Tile) MaterialAt(x, z int) uint8 { return t.Materials[tileIndex(x, z)] }

// HeightRangeChunks returns the inclusive [minCY, maxCY] chunk-Y range
// whose world span intersects this tile's height values, used to decide
// which chunks a surface-column response should bundle (spec.md §4.10).
func (t *Tile) HeightRangeChunks() (minCY, maxCY int) {
	minCY, maxCY = 1<<30, -(1 << 30)
	for _, h := range t.Heights {
		cy := int(h) / chunk.Size
		if float64(h) < 0 && int(h)%chunk.Size != 0 {
			cy--
		}
		if cy < minCY {
			minCY = cy
		}
		if cy > maxCY {
			maxCY = cy
		}
	}
	if minCY > maxCY {
		return 0, 0
	}
	return minCY, maxCY
}

// DebugString renders an ASCII minimap of the tile's heights, bucketed
// into 10 bands, for logging and manual inspection (a supplemented
// convenience beyond spec.md's wire-level description of the tile).
func (t *Tile) DebugString() string {
	var minH, maxH int16 = t.Heights[0], t.Heights[0]
	for _, h := range t.Heights {
		if h < minH {
			minH = h
		}
		if h > maxH {
			maxH = h
		}
	}
	span := int(maxH - minH)
	if span == 0 {
		span = 1
	}

	const ramp = " .:-=+*#%@"
	var sb strings.Builder
	fmt.Fprintf(&sb, "tile (%d,%d) height [%d,%d]\n", t.TX, t.TZ, minH, maxH)
	for z := 0; z < TileSize; z++ {
		for x := 0; x < TileSize; x++ {
			h := int(t.HeightAt(x, z))
			bucket := (h - int(minH)) * (len(ramp) - 1) / span
			sb.WriteByte(ramp[bucket])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
