package streaming

import (
	"sync"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
)

// Store is the main-thread-owned map of resident/pending chunk entries,
// grounded on the teacher's world.ChunkStore (chunks map + RWMutex +
// modCount), generalized to track streaming Entry state rather than
// just chunk pointers.
type Store struct {
	mu       sync.RWMutex
	entries  map[chunk.Coord]*Entry
	modCount uint64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[chunk.Coord]*Entry)}
}

// Entry returns the entry at c, or nil if untracked.
func (s *Store) Entry(c chunk.Coord) *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[c]
}

// Get implements chunk.Neighbors for margin sampling and the mesher's
// 34³ expansion: it returns only chunks whose entry is at least
// ReceivedNotYetMeshed (i.e. whose cell data is authoritative).
func (s *Store) Get(cx, cy, cz int) *chunk.Chunk {
	e := s.Entry(chunk.Coord{X: cx, Y: cy, Z: cz})
	if e == nil || e.Chunk == nil {
		return nil
	}
	switch e.State {
	case ReceivedNotYetMeshed, Resident, Dirty:
		return e.Chunk
	default:
		return nil
	}
}

// GetOrCreate implements build.ChunkSource: it returns the resident
// chunk at c, creating a fresh empty one (and a Pending-less Idle entry)
// if none exists yet. Used by local build-preview edits, which must be
// able to write into a chunk even before the server's authoritative data
// has streamed in.
func (s *Store) GetOrCreate(c chunk.Coord) *chunk.Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[c]
	if !ok {
		e = &Entry{State: Idle, Chunk: chunk.New(c.X, c.Y, c.Z)}
		s.entries[c] = e
		s.modCount++
	} else if e.Chunk == nil {
		e.Chunk = chunk.New(c.X, c.Y, c.Z)
	}
	return e.Chunk
}

// SetState transitions c's entry to state, creating the entry if
// needed.
func (s *Store) SetState(c chunk.Coord, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[c]
	if !ok {
		e = &Entry{}
		s.entries[c] = e
		s.modCount++
	}
	e.State = state
}

// MarkDirty transitions a Resident chunk at c to Dirty, used when a
// local edit or a neighbor's edit invalidates its mesh/lighting (spec.md
// §4.8: "neighbors on the affected face(s) are also re-queued").
func (s *Store) MarkDirty(c chunk.Coord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[c]; ok && e.State == Resident {
		e.State = Dirty
	}
}

// Release evicts c entirely: mesh, preview, BVH and any pending work are
// the caller's responsibility to tear down before calling Release
// (spec.md §4.8: "Chunks leaving the window are released").
func (s *Store) Release(c chunk.Coord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, c)
	s.modCount++
}

// Resident lists every chunk coordinate currently at or past
// ReceivedNotYetMeshed.
func (s *Store) Resident() []chunk.Coord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chunk.Coord, 0, len(s.entries))
	for c, e := range s.entries {
		if e.State != Idle && e.State != Pending {
			out = append(out, c)
		}
	}
	return out
}

// ModCount returns the store's modification counter, bumped on every
// create/release.
func (s *Store) ModCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modCount
}
