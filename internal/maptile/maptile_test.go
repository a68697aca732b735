package maptile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/maptile"
)

func TestTileSetGetRoundTrip(t *testing.T) {
	tile := maptile.New(2, -3)
	tile.Set(5, 7, 42, 9)

	assert.Equal(t, int16(42), tile.HeightAt(5, 7))
	assert.Equal(t, uint8(9), tile.MaterialAt(5, 7))
	assert.Equal(t, int16(0), tile.HeightAt(0, 0))
}

func TestHeightRangeChunksCoversAllHeights(t *testing.T) {
	tile := maptile.New(0, 0)
	for z := 0; z < maptile.TileSize; z++ {
		for x := 0; x < maptile.TileSize; x++ {
			tile.Set(x, z, 16, 1)
		}
	}
	// One outlier column pushes the max chunk-Y range up.
	tile.Set(0, 0, 80, 1)

	minCY, maxCY := tile.HeightRangeChunks()
	assert.Equal(t, 16/chunk.Size, minCY)
	assert.Equal(t, 80/chunk.Size, maxCY)
}

func TestHeightRangeChunksHandlesNegativeHeights(t *testing.T) {
	tile := maptile.New(0, 0)
	for z := 0; z < maptile.TileSize; z++ {
		for x := 0; x < maptile.TileSize; x++ {
			tile.Set(x, z, -10, 0)
		}
	}
	minCY, maxCY := tile.HeightRangeChunks()
	assert.Equal(t, -1, minCY)
	assert.Equal(t, -1, maxCY)
}

func TestDebugStringIncludesTileCoordAndGrid(t *testing.T) {
	tile := maptile.New(4, 5)
	out := tile.DebugString()
	assert.True(t, strings.Contains(out, "tile (4,5)"))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// One header line plus TileSize rows of the ASCII grid.
	assert.Len(t, lines, maptile.TileSize+1)
}

// fakeSink is a maptile.ChunkSink backed by a plain map, for testing
// BuildResponse/ApplyResponse without the full streaming store.
type fakeSink struct {
	seqs     map[chunk.Coord]uint32
	installs map[chunk.Coord]uint32
}

func newFakeSink() *fakeSink {
	return &fakeSink{seqs: make(map[chunk.Coord]uint32), installs: make(map[chunk.Coord]uint32)}
}

func (f *fakeSink) ExistingLastBuildSeq(coord chunk.Coord) uint32 { return f.seqs[coord] }

func (f *fakeSink) Install(coord chunk.Coord, c *chunk.Chunk, lastBuildSeq uint32) {
	f.installs[coord] = lastBuildSeq
	f.seqs[coord] = lastBuildSeq
}

func TestBuildResponseBundlesChunksInHeightRange(t *testing.T) {
	tile := maptile.New(1, 2)
	for z := 0; z < maptile.TileSize; z++ {
		for x := 0; x < maptile.TileSize; x++ {
			tile.Set(x, z, 16, 1)
		}
	}

	c := chunk.New(1, 0, 2)
	c.Fill(0.5, 1, 10)
	c.SetLastBuildSeq(3)

	source := func(coord chunk.Coord) *chunk.Chunk {
		if coord == (chunk.Coord{X: 1, Y: 0, Z: 2}) {
			return c
		}
		return nil
	}

	resp := maptile.BuildResponse(tile, source)
	require.Len(t, resp.Chunks, 1)
	assert.Equal(t, 0, resp.Chunks[0].CY)
	assert.Equal(t, uint32(3), resp.Chunks[0].LastBuildSeq)
	assert.Len(t, resp.Chunks[0].Raw, chunk.RawDataSize)
}

func TestApplyResponseRefusesToOverwriteNewerLocalChunk(t *testing.T) {
	c := chunk.New(1, 0, 2)
	c.Fill(0.5, 1, 10)
	resp := maptile.Response{
		Chunks: []maptile.ChunkPayload{{CY: 0, LastBuildSeq: 2, Raw: c.ToSerialized()}},
	}

	sink := newFakeSink()
	sink.seqs[chunk.Coord{X: 1, Y: 0, Z: 2}] = 5 // local preview is ahead of the bundle

	maptile.ApplyResponse(sink, resp, 1, 2)
	_, installed := sink.installs[chunk.Coord{X: 1, Y: 0, Z: 2}]
	assert.False(t, installed, "must not overwrite a chunk with a higher local lastBuildSeq")
}

func TestApplyResponseInstallsNewerChunk(t *testing.T) {
	c := chunk.New(1, 0, 2)
	c.Fill(0.5, 1, 10)
	resp := maptile.Response{
		Chunks: []maptile.ChunkPayload{{CY: 0, LastBuildSeq: 7, Raw: c.ToSerialized()}},
	}

	sink := newFakeSink()
	sink.seqs[chunk.Coord{X: 1, Y: 0, Z: 2}] = 2

	maptile.ApplyResponse(sink, resp, 1, 2)
	assert.Equal(t, uint32(7), sink.installs[chunk.Coord{X: 1, Y: 0, Z: 2}])
}
