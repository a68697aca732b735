// Package streaming maintains the chunk residency window around a
// camera, drives a bounded worker pool that performs lighting and
// meshing off the main thread, and reconciles stale results, grounded
// on the teacher's internal/world.ChunkStreamer (its pending-map +
// bounded job channel idiom, spiral-column enqueue order, and eviction
// by radius) and internal/meshing.WorkerPool (its context.Context +
// sync.WaitGroup worker lifecycle), generalized from single-pass
// terrain generation to the request/lighting/meshing pipeline of
// spec.md §4.8.
package streaming

import (
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunkmesh"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/lighting"
)

// State is a chunk's streaming lifecycle state (spec.md §4.8).
type State int

const (
	Idle State = iota
	Pending
	ReceivedNotYetMeshed
	Resident
	Dirty
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Pending:
		return "Pending"
	case ReceivedNotYetMeshed:
		return "ReceivedNotYetMeshed"
	case Resident:
		return "Resident"
	case Dirty:
		return "Dirty"
	default:
		return "Unknown"
	}
}

// Entry tracks one chunk coordinate's streaming state plus bookkeeping
// needed to detect stale worker results and bound retries.
type Entry struct {
	State          State
	Chunk          *chunk.Chunk
	Generation     uint64 // latest request generation; set by the caller, not advanced by this package
	RequestRetries int

	// OutgoingLight caches the column pass's per-column outgoing
	// sunlight, so the chunk above can hand it to the chunk below
	// without recomputation (spec.md §4.5).
	OutgoingLight lighting.ColumnLight

	// Mesh is this coordinate's chunk-mesh lifecycle handle (spec.md
	// §4.7), created lazily once the first meshing result arrives.
	Mesh *chunkmesh.ChunkMesh
}

// MaxRequestRetries bounds how many times a missing-chunk response is
// retried before the coordinate is left as empty air (spec.md §4.8
// failure semantics).
const MaxRequestRetries = 3
