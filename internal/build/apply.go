package build

import (
	"sync/atomic"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
)

// SequenceCounter is the server's single monotonic global build
// sequence (spec.md §6: "increment a monotonic global build sequence").
// It is an explicit handle, not a package-level global.
type SequenceCounter struct {
	value uint64
}

// Next atomically advances and returns the new sequence value.
func (s *SequenceCounter) Next() uint32 {
	return uint32(atomic.AddUint64(&s.value, 1))
}

// ChunkSource resolves a chunk by coordinate, creating it on demand.
// Implemented by the streaming chunk store.
type ChunkSource interface {
	GetOrCreate(c chunk.Coord) *chunk.Chunk
}

// ApplyResult reports, for one op application, which chunks actually
// changed.
type ApplyResult struct {
	ChangedChunks []chunk.Coord
}

// Apply draws op into every chunk GetAffectedChunks names, using
// source to resolve (and lazily create) each chunk, and marks changed
// chunks dirty. If preview is true, edits go into each chunk's preview
// buffer instead of its main data (spec.md §4.4, §9: "preview vs main as
// two buffers... the preview swap is purely a mesh-slot operation").
func Apply(source ChunkSource, op Op, preview bool) ApplyResult {
	var result ApplyResult
	for _, cc := range GetAffectedChunks(op) {
		c := source.GetOrCreate(cc)
		var changed bool
		if preview {
			changed = DrawToChunk(c, op, c.EnsurePreview())
		} else {
			changed = DrawToChunk(c, op, nil)
		}
		if changed {
			c.MarkDirty()
			result.ChangedChunks = append(result.ChangedChunks, cc)
		}
	}
	return result
}

// ApplyCommitted applies op to its affected chunks and stamps each one's
// lastBuildSeq, matching spec.md §6's "set each affected chunk's
// lastBuildSeq to the new value" server-side commit step.
func ApplyCommitted(source ChunkSource, op Op, seq uint32) ApplyResult {
	result := Apply(source, op, false)
	for _, cc := range GetAffectedChunks(op) {
		source.GetOrCreate(cc).SetLastBuildSeq(seq)
	}
	return result
}
