package streaming

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/lighting"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/material"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/meshing"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/voxel"
)

// Job is one immutable unit of off-thread lighting+meshing work,
// grounded on the teacher's meshing.MeshJob shape but carrying a uuid
// request-correlation ID (spec.md §9 supplements the teacher's bare
// coordinate key with a per-request ID so duplicate/retried requests for
// the same coordinate can still be told apart downstream) and, per
// spec.md §5, a self-contained snapshot rather than a bare coordinate:
// Snapshot is a private clone of the target chunk's cells, Neighbors
// holds clones of whichever of its 6 face-adjacent chunks are resident
// (for margin sampling and border-light injection), and Incoming is the
// sunlight column handed down from the chunk above. BuildJob constructs
// this snapshot on the main thread, the store's sole writer, so by the
// time a worker goroutine reads it nothing else can be concurrently
// mutating it; the worker that processes a Job never touches the chunk
// store, an Entry, or any live neighbor chunk again.
type Job struct {
	ID         uuid.UUID
	Coord      chunk.Coord
	Generation uint64

	Snapshot  *chunk.Chunk
	Neighbors chunk.MapNeighbors
	Incoming  lighting.ColumnLight
}


// Result is a completed Job's output, grounded on the teacher's
// meshing.MeshResult. Mesh, OutgoingLight, and LitData are all values
// the worker computed on its own private Snapshot, never written into
// shared state directly (spec.md §5); the main thread's applyResult is
// the only place they are committed back into the live chunk/Entry.
type Result struct {
	ID         uuid.UUID
	Coord      chunk.Coord
	Generation uint64
	Mesh       *meshing.Mesh
	// OutgoingLight is the column pass's per-column outgoing sunlight,
	// cached by the main thread on Entry.OutgoingLight so the chunk below
	// can read it without recomputation (spec.md §4.5).
	OutgoingLight lighting.ColumnLight
	// LitData is the snapshot's cell buffer after both lighting passes,
	// committed into the live chunk via Chunk.ReplaceData.
	LitData *[chunk.Volume]voxel.Cell
	Err     error
}

// WorkerPool performs lighting and meshing off the main thread, over
// Job snapshots that BuildJob captured from store. A worker never reads
// or writes store, an Entry, or a live Chunk: Job and Result are its
// entire universe, so no lock is needed on the hot path (spec.md §4.8,
// §5).
//
// Grounded on the teacher's meshing.WorkerPool: a context.Context +
// sync.WaitGroup worker lifecycle over a bounded job channel.
type WorkerPool struct {
	jobs    chan Job
	results chan Result

	store   *Store
	palette *material.Palette

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorkerPool starts workers goroutines reading from a queueSize-deep
// job channel.
func NewWorkerPool(store *Store, palette *material.Palette, workers, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &WorkerPool{
		jobs:    make(chan Job, queueSize),
		results: make(chan Result, queueSize),
		store:   store,
		palette: palette,
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// BuildJob reads p.store (and must therefore be called from the main
// thread, the store's sole writer) to build an immutable snapshot Job
// for coord: a clone of its chunk, clones of its resident face
// neighbors, and the incoming sunlight column from the chunk above.
// Building the snapshot on the main thread, before the job ever reaches
// a worker goroutine, guarantees nothing can be concurrently mutating
// what it captures (spec.md §5). It returns false if coord has no chunk
// data yet.
func (p *WorkerPool) BuildJob(id uuid.UUID, coord chunk.Coord, generation uint64) (Job, bool) {
	entry := p.store.Entry(coord)
	if entry == nil || entry.Chunk == nil {
		return Job{}, false
	}

	job := Job{
		ID:         id,
		Coord:      coord,
		Generation: generation,
		Snapshot:   entry.Chunk.Clone(),
		Neighbors:  make(chunk.MapNeighbors, 6),
		Incoming:   lighting.FullSunlightColumns(),
	}

	above := p.store.Entry(chunk.Coord{X: coord.X, Y: coord.Y + 1, Z: coord.Z})
	if above != nil && above.State != Idle && above.State != Pending {
		job.Incoming = above.OutgoingLight
	}

	for _, nc := range coord.Neighbor6() {
		if nb := p.store.Get(nc.X, nc.Y, nc.Z); nb != nil {
			job.Neighbors[nc] = nb.Clone()
		}
	}

	return job, true
}

// Submit enqueues job, returning false if the queue is full (spec.md
// §4.8's bounded worker pool: callers must be prepared to retry later
// rather than block the main thread).
func (p *WorkerPool) Submit(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Results returns the channel workers publish completed Results to. The
// main thread drains it each frame and applies results whose Generation
// is not stale.
func (p *WorkerPool) Results() <-chan Result { return p.results }

// Shutdown cancels outstanding work and waits for all workers to exit.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	close(p.jobs)
	p.wg.Wait()
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := p.process(job)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// process runs the lighting column pass, the lighting BFS pass, and the
// Surface-Net mesher over job's private Snapshot and Neighbors (spec.md
// §4.5, §4.6). It never reads or writes p.store, an Entry, or any chunk
// another goroutine might touch: Job is a self-contained, immutable-to-
// the-rest-of-the-world input, and the lit Snapshot plus mesh are handed
// back through Result for the main thread to commit (spec.md §5). Worker
// exceptions are represented as a Result.Err rather than a panic, per
// spec.md §7's "log, mark chunk clean, leave meshes untouched" failure
// semantics; the main thread performs the actual chunk-clean step once
// it receives an errored Result.
func (p *WorkerPool) process(job Job) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("streaming: worker panic meshing %s: %v", job.Coord, r)
			result = Result{ID: job.ID, Coord: job.Coord, Generation: job.Generation, Err: errPanic}
		}
	}()

	if job.Snapshot == nil {
		return Result{ID: job.ID, Coord: job.Coord, Generation: job.Generation, Err: errMissingChunk}
	}
	c := job.Snapshot

	outgoing := lighting.ComputeSunlightColumns(c, p.palette, job.Incoming)
	lighting.PropagateLight(c, p.palette, job.Neighbors)

	expanded := meshing.Expand(c, job.Neighbors)
	mesh := meshing.Build(expanded, p.palette)

	return Result{
		ID:            job.ID,
		Coord:         job.Coord,
		Generation:    job.Generation,
		Mesh:          mesh,
		OutgoingLight: outgoing,
		LitData:       c.Data(),
	}
}
