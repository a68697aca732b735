package collision

import (
	"sync"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
)

// Store tracks one BVH per chunk key, each tagged with the chunk-mesh
// generation it was built from, so collision can skip rebuilding a BVH
// whose source mesh hasn't changed (spec.md §4.11, §4.7).
type Store struct {
	mu   sync.RWMutex
	bvhs map[chunk.Coord]entry
}

type entry struct {
	bvh        *BVH
	generation uint64
}

// NewStore creates an empty collider Store.
func NewStore() *Store {
	return &Store{bvhs: make(map[chunk.Coord]entry)}
}

// AddCollider installs (or replaces) the BVH for key, tagged with
// generation.
func (s *Store) AddCollider(key chunk.Coord, bvh *BVH, generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bvhs[key] = entry{bvh: bvh, generation: generation}
}

// RemoveCollider evicts key's BVH, used when its chunk leaves the
// residency window (spec.md §4.8, §4.11).
func (s *Store) RemoveCollider(key chunk.Coord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bvhs, key)
}

// Generation returns the generation key's BVH was built from, and
// whether key has a collider at all.
func (s *Store) Generation(key chunk.Coord) (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.bvhs[key]
	if !ok {
		return 0, false
	}
	return e.generation, true
}

// Get returns key's BVH, or nil if none is installed. Queries against a
// missing BVH return "no hit" per spec.md §4.11; callers get that for
// free by passing a nil *BVH to Raycast/SphereCollide/
// ResolveCapsuleCollision guarded by this nil check.
func (s *Store) Get(key chunk.Coord) *BVH {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bvhs[key].bvh
}
