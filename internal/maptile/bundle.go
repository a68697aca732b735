package maptile

import "github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"

// ChunkPayload is one bundled chunk's raw serialized data plus its
// server-assigned build sequence (spec.md §4.10, §6).
type ChunkPayload struct {
	CY           int
	LastBuildSeq uint32
	Raw          []byte // chunk.RawDataSize bytes
}

// Response is a full surface-column response: the tile plus every
// chunk whose Y intersects its height range (spec.md §4.10).
type Response struct {
	Tile   *Tile
	Chunks []ChunkPayload
}

// BuildResponse bundles tile with every resident chunk in its
// HeightRangeChunks() Y-span at column (tx, tz), using source to
// resolve and serialize each chunk.
func BuildResponse(tile *Tile, source func(c chunk.Coord) *chunk.Chunk) Response {
	minCY, maxCY := tile.HeightRangeChunks()
	var resp Response
	resp.Tile = tile

	for cy := minCY; cy <= maxCY; cy++ {
		coord := chunk.Coord{X: tile.TX, Y: cy, Z: tile.TZ}
		c := source(coord)
		if c == nil {
			continue
		}
		resp.Chunks = append(resp.Chunks, ChunkPayload{
			CY:           cy,
			LastBuildSeq: c.LastBuildSeq(),
			Raw:          c.ToSerialized(),
		})
	}
	return resp
}

// ChunkSink receives a decoded chunk payload and decides whether to
// install it, implemented by the client's chunk store.
type ChunkSink interface {
	// ExistingLastBuildSeq returns the build sequence of whatever chunk
	// currently occupies coord, or 0 if none (a chunk never seen before
	// always accepts the incoming payload).
	ExistingLastBuildSeq(coord chunk.Coord) uint32
	// Install atomically replaces coord's chunk with the decoded payload.
	Install(coord chunk.Coord, c *chunk.Chunk, lastBuildSeq uint32)
}

// ApplyResponse installs resp's chunks into sink (resp.Tile is not
// passed on; ChunkSink has no tile method), refusing to
// overwrite any chunk whose existing lastBuildSeq is higher than the
// one just received — this preserves in-flight local preview edits that
// have already advanced past what the server bundled (spec.md §4.10).
func ApplyResponse(sink ChunkSink, resp Response, tx, tz int) {
	for _, payload := range resp.Chunks {
		coord := chunk.Coord{X: tx, Y: payload.CY, Z: tz}
		if sink.ExistingLastBuildSeq(coord) > payload.LastBuildSeq {
			continue
		}
		c := chunk.New(coord.X, coord.Y, coord.Z)
		c.FromSerialized(payload.Raw)
		sink.Install(coord, c, payload.LastBuildSeq)
	}
}
