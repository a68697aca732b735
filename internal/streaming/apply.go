package streaming

import (
	"log"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunkmesh"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/material"
)

// Drain applies every currently-buffered Result from pool to store,
// returning the coordinates whose mesh changed. Call once per frame
// (spec.md §4.8: "the main thread owns the chunk store").
func Drain(pool *WorkerPool, store *Store, build chunkmesh.LayerBuilder) []chunk.Coord {
	var changed []chunk.Coord
	for {
		select {
		case result := <-pool.Results():
			if applyResult(store, result, build) {
				changed = append(changed, result.Coord)
			}
		default:
			return changed
		}
	}
}

// applyResult reconciles one worker Result against the store, dropping
// stale generations and applying the spec's failure semantics for
// missing chunks and worker errors (spec.md §4.8, §7).
func applyResult(store *Store, result Result, build chunkmesh.LayerBuilder) bool {
	entry := store.Entry(result.Coord)
	if entry == nil {
		return false // chunk was released before the result arrived
	}
	if result.Generation < entry.Generation {
		return false // stale: a newer request has since superseded this one
	}

	if result.Err != nil {
		log.Printf("streaming: meshing %s failed: %v", result.Coord, result.Err)
		if entry.Chunk != nil {
			entry.Chunk.MarkClean()
		}
		return false
	}

	if entry.Chunk == nil {
		entry.RequestRetries++
		if entry.RequestRetries > MaxRequestRetries {
			entry.State = Resident // leave as empty air, stop retrying
		}
		return false
	}

	// Commit the worker's private snapshot back into the live chunk: this
	// is the only place the lit cell data and outgoing sunlight column
	// are written, now that the worker itself never touches shared state
	// (spec.md §5).
	entry.Chunk.ReplaceData(result.LitData)
	entry.OutgoingLight = result.OutgoingLight

	if entry.Mesh == nil {
		entry.Mesh = chunkmesh.New()
	}

	var layers [material.Count]chunkmesh.LayerPayload
	for t := material.Type(0); int(t) < material.Count; t++ {
		layers[t] = chunkmesh.LayerPayload{
			VertexCount: len(result.Mesh.Vertices[t]),
			IndexCount:  len(result.Mesh.Indices[t]),
		}
	}
	entry.Mesh.UpdateFromData(layers, build)
	entry.Chunk.MarkClean()
	entry.State = Resident
	return true
}
