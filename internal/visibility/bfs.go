// Package visibility implements the cave-culling BFS of spec.md §4.9:
// starting at the camera's chunk, it expands through chunks whose
// face-visibility summaries permit passage, bounded by a taxicab radius,
// grounded on the teacher's internal/world package's radius-bounded
// column iteration (chunk_streamer.go's spiral/box enumeration) and
// generalized to a proper frontier BFS with a generation-counter
// "no-clear" visited set, as spec.md §4.9 names explicitly.
package visibility

import "github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"

// ChunkSource resolves a chunk's current face-visibility summary. A nil
// return (chunk not resident) is treated as FaceVisibilityUnknown, i.e.
// fully passable, so the BFS still requests it (spec.md §4.9 point 3
// combined with chunk.FaceVisibilityUnknown's semantics).
type ChunkSource interface {
	Get(cx, cy, cz int) *chunk.Chunk
}

// BackCullTest optionally restricts traversal to chunks whose exit face
// is not entirely behind the camera (spec.md §4.9 point 2). A nil value
// disables the test.
type BackCullTest func(coord chunk.Coord, exitFace chunk.Face) bool

// FrustumTest optionally restricts the reachable set to chunks whose
// world AABB intersects the camera frustum (spec.md §4.9 point 4).
type FrustumTest func(coord chunk.Coord) bool

// frontierItem is one BFS queue entry: the chunk reached, and the face
// through which it was entered (meaningless for the camera chunk
// itself, which has no entry face per spec.md §4.9 point 3).
type frontierItem struct {
	coord     chunk.Coord
	entryFace chunk.Face
	isCamera  bool
}

// Queue is a pre-allocated BFS frontier queue, sized to the traversal's
// bounding box so no further allocation is needed mid-BFS (spec.md
// §4.9).
type Queue struct {
	buf        []frontierItem
	head, tail int
}

// NewQueue allocates a Queue with the given capacity.
func NewQueue(capacity int) *Queue {
	return &Queue{buf: make([]frontierItem, capacity)}
}

func (q *Queue) reset() { q.head, q.tail = 0, 0 }

func (q *Queue) push(item frontierItem) {
	if q.tail < len(q.buf) {
		q.buf[q.tail] = item
		q.tail++
	}
}

func (q *Queue) empty() bool { return q.head >= q.tail }

func (q *Queue) pop() frontierItem {
	item := q.buf[q.head]
	q.head++
	return item
}

// VisitSet is a generation-stamped visited set over a bounding cube
// centered on the last BFS origin: instead of clearing a bitmap every
// call, each cell stores the generation at which it was last visited,
// and each Run bumps the current generation (spec.md §4.9's "generation
// counter trick").
type VisitSet struct {
	radius     int
	stamps     []uint32
	generation uint32
}

// NewVisitSet allocates a VisitSet covering a (2*radius+1)³ cube.
func NewVisitSet(radius int) *VisitSet {
	side := 2*radius + 1
	return &VisitSet{radius: radius, stamps: make([]uint32, side*side*side)}
}

func (v *VisitSet) index(origin, c chunk.Coord) (int, bool) {
	side := 2*v.radius + 1
	dx, dy, dz := c.X-origin.X+v.radius, c.Y-origin.Y+v.radius, c.Z-origin.Z+v.radius
	if dx < 0 || dx >= side || dy < 0 || dy >= side || dz < 0 || dz >= side {
		return 0, false
	}
	return dx + dy*side + dz*side*side, true
}

// visit marks c visited for this generation, relative to origin. It
// returns false (and marks nothing) if c falls outside the set's cube
// or was already visited this round.
func (v *VisitSet) visit(origin, c chunk.Coord) bool {
	idx, ok := v.index(origin, c)
	if !ok {
		return false
	}
	if v.stamps[idx] == v.generation {
		return false
	}
	v.stamps[idx] = v.generation
	return true
}

// Result holds one BFS run's outputs (spec.md §4.9).
type Result struct {
	Reachable []chunk.Coord
	ToRequest []chunk.Coord
}

// neighborOffsets lists the 6-neighbor coordinate deltas, in the same
// order as chunk.Face's constants.
var neighborOffsets = [6][3]int{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// oppositeFace returns the face on the far side of the same offset: the
// face through which the BFS enters the neighbor chunk.
func oppositeFace(f chunk.Face) chunk.Face {
	switch f {
	case chunk.FaceNegX:
		return chunk.FacePosX
	case chunk.FacePosX:
		return chunk.FaceNegX
	case chunk.FaceNegY:
		return chunk.FacePosY
	case chunk.FacePosY:
		return chunk.FaceNegY
	case chunk.FaceNegZ:
		return chunk.FacePosZ
	default:
		return chunk.FaceNegZ
	}
}

// Run performs one BFS from camera, per spec.md §4.9's four conditions.
// q and visited must be sized to cover radius; reusing them across
// frames amortizes allocation.
func Run(source ChunkSource, camera chunk.Coord, radius int, q *Queue, visited *VisitSet, backCull BackCullTest, frustum FrustumTest) Result {
	visited.generation++
	q.reset()

	var result Result

	visited.visit(camera, camera)
	q.push(frontierItem{coord: camera, isCamera: true})
	result.Reachable = append(result.Reachable, camera)
	if source.Get(camera.X, camera.Y, camera.Z) == nil {
		result.ToRequest = append(result.ToRequest, camera)
	}

	for !q.empty() {
		parent := q.pop()

		var parentFV chunk.FaceVisibility = chunk.FaceVisibilityUnknown
		if c := source.Get(parent.coord.X, parent.coord.Y, parent.coord.Z); c != nil {
			parentFV = c.FaceVisibility()
		}

		for faceIdx, off := range neighborOffsets {
			exitFace := chunk.Face(faceIdx)
			n := chunk.Coord{X: parent.coord.X + off[0], Y: parent.coord.Y + off[1], Z: parent.coord.Z + off[2]}

			if abs(n.X-camera.X)+abs(n.Y-camera.Y)+abs(n.Z-camera.Z) > radius {
				continue
			}

			// Condition 3: the camera chunk has no entry face and is
			// always fully traversable; every other parent must permit
			// passage from its own entry face to this exit face.
			if !parent.isCamera && !parentFV.Passable(parent.entryFace, exitFace) {
				continue
			}

			if backCull != nil && !backCull(n, exitFace) {
				continue
			}

			if !visited.visit(camera, n) {
				continue
			}

			if frustum != nil && !frustum(n) {
				continue
			}

			result.Reachable = append(result.Reachable, n)
			if source.Get(n.X, n.Y, n.Z) == nil {
				result.ToRequest = append(result.ToRequest, n)
			}
			q.push(frontierItem{coord: n, entryFace: oppositeFace(exitFace), isCamera: false})
		}
	}

	return result
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
