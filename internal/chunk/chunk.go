// Package chunk implements the 32³ voxel container: dense cell storage,
// margin sampling across neighbor chunks, and serialization to the
// on-wire 65,536-byte payload.
package chunk

import "github.com/Dan0net/worldify-multiplayer-sub004/internal/voxel"

const (
	// Size is the edge length of a chunk in cells.
	Size = 32
	// Volume is the total cell count of a chunk (32³).
	Volume = Size * Size * Size
	// CellSizeMeters is the world size of one cell.
	CellSizeMeters = 0.25
	// WorldSizeMeters is the world AABB edge length of one chunk.
	WorldSizeMeters = Size * CellSizeMeters
)

// Face identifies one of a chunk's 6 faces, in the same order as
// Coord.Neighbor6.
type Face int

const (
	FaceNegX Face = iota
	FacePosX
	FaceNegY
	FacePosY
	FaceNegZ
	FacePosZ
	faceCount
)

// FaceVisibility is a 6-bit mask, one bit per Face, recording whether any
// interior air cell reachable from that face's boundary layer exists
// (spec.md §3/§9's "6-bit face-visibility summary"). Two faces are
// treated as mutually reachable by the visibility BFS (spec.md §4.9) iff
// both bits are set. This is a deliberately conservative-in-the-safe-
// direction encoding: a cleared bit guarantees that face touches no
// interior air (so it is genuinely unreachable from anywhere, satisfying
// the invariant in spec.md §8 that a "disconnected" verdict must be
// genuine); a set bit only guarantees that face touches *some* air, so
// two set faces belonging to disjoint air pockets are over-approximated
// as mutually reachable. Over-approximating reachability only under-
// culls (shows a few more chunks than strictly necessary); it never
// hides a chunk that should be visible.
type FaceVisibility uint8

// FaceVisibilityUnknown is a sentinel outside the valid 6-bit range,
// meaning the summary has not been computed yet and must be treated as
// fully visible/passable by the cave-culling BFS (spec.md §9's open
// question about the source's "-1 means unknown" comment).
const FaceVisibilityUnknown FaceVisibility = 0xFF

// Open reports whether face touches any interior air, or is unknown.
func (fv FaceVisibility) Open(f Face) bool {
	if fv == FaceVisibilityUnknown {
		return true
	}
	return fv&(1<<uint(f)) != 0
}

// WithOpen returns fv with face's bit set according to open.
func (fv FaceVisibility) WithOpen(f Face, open bool) FaceVisibility {
	if fv == FaceVisibilityUnknown {
		fv = 0
	}
	if open {
		return fv | 1<<uint(f)
	}
	return fv &^ (1 << uint(f))
}

// Passable reports whether the BFS may cross this chunk from entry face
// in to exit face out. The camera chunk itself has no entry face and is
// always fully traversable (spec.md §4.9 point 3); callers represent
// that case by passing in == out with both bits forced open, or by
// bypassing Passable entirely for the camera chunk.
func (fv FaceVisibility) Passable(in, out Face) bool {
	return fv.Open(in) && fv.Open(out)
}

// Chunk is a 32³ cuboid of packed cells at integer chunk coordinates.
type Chunk struct {
	Coord Coord

	data    [Volume]voxel.Cell
	preview *[Volume]voxel.Cell

	lastBuildSeq uint32
	dirty        bool

	faceVisibility FaceVisibility
}

// New allocates a chunk at (cx, cy, cz) with all-zero cells (weight
// -0.5, material 0, light 0), marked dirty.
func New(cx, cy, cz int) *Chunk {
	return &Chunk{
		Coord:          Coord{cx, cy, cz},
		dirty:          true,
		faceVisibility: FaceVisibilityUnknown,
	}
}

// Index converts local (x,y,z) in [0,31] to a flat index; callers must
// bounds-check first (use InBounds).
func Index(x, y, z int) int {
	return x + y*Size + z*Size*Size
}

// InBounds reports whether (x,y,z) is a valid local cell coordinate.
func InBounds(x, y, z int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size && z >= 0 && z < Size
}

// GetCell returns the cell at local (x,y,z). Out-of-bounds reads return
// the zero cell.
func (c *Chunk) GetCell(x, y, z int) voxel.Cell {
	if !InBounds(x, y, z) {
		return voxel.Zero
	}
	return c.data[Index(x, y, z)]
}

// SetCell writes the cell at local (x,y,z) into the main buffer.
// Out-of-bounds writes are silently dropped.
func (c *Chunk) SetCell(x, y, z int, v voxel.Cell) {
	c.setInto(&c.data, x, y, z, v)
}

func (c *Chunk) setInto(buf *[Volume]voxel.Cell, x, y, z int, v voxel.Cell) {
	if !InBounds(x, y, z) {
		return
	}
	idx := Index(x, y, z)
	if buf[idx] != v {
		buf[idx] = v
		c.dirty = true
	}
}

// Data returns the chunk's main cell buffer for direct read access (used
// by the mesher's margin expansion and by serialization).
func (c *Chunk) Data() *[Volume]voxel.Cell { return &c.data }

// Preview returns the chunk's preview buffer, or nil if none is staged.
func (c *Chunk) Preview() *[Volume]voxel.Cell { return c.preview }

// EnsurePreview allocates the preview buffer (a copy of the main data) if
// it does not already exist, and returns it.
func (c *Chunk) EnsurePreview() *[Volume]voxel.Cell {
	if c.preview == nil {
		buf := c.data
		c.preview = &buf
	}
	return c.preview
}

// DiscardPreview releases the preview buffer, per spec.md §3's ownership
// rule that preview buffers are discarded on commit or cancel.
func (c *Chunk) DiscardPreview() {
	c.preview = nil
}

// SetCellInto writes to either the main buffer (target == nil) or a
// caller-supplied preview buffer, used by build application (spec.md
// §4.4: "Target buffer defaults to the chunk's main data; preview edits
// pass a separate target buffer").
func (c *Chunk) SetCellInto(target *[Volume]voxel.Cell, x, y, z int, v voxel.Cell) {
	if target == nil {
		target = &c.data
	}
	c.setInto(target, x, y, z, v)
}

// Fill sets every cell in the main buffer to the same packed fields.
func (c *Chunk) Fill(weight float32, material, light int) {
	v := voxel.Pack(weight, material, light)
	for i := range c.data {
		c.data[i] = v
	}
	c.dirty = true
}

// GenerateFlat fills the chunk with air above surfaceY (local cell Y)
// and solid material at and below it, used by tests and fallback terrain.
func (c *Chunk) GenerateFlat(surfaceY int, material, light int) {
	air := voxel.Pack(-0.5, 0, light)
	solid := voxel.Pack(0.5, material, 0)
	for z := 0; z < Size; z++ {
		for x := 0; x < Size; x++ {
			for y := 0; y < Size; y++ {
				if y <= surfaceY {
					c.data[Index(x, y, z)] = solid
				} else {
					c.data[Index(x, y, z)] = air
				}
			}
		}
	}
	c.dirty = true
}

// IsDirty reports whether the chunk changed since its last mesh.
func (c *Chunk) IsDirty() bool { return c.dirty }

// MarkClean clears the dirty flag (called after a successful mesh).
func (c *Chunk) MarkClean() { c.dirty = false }

// MarkDirty forces the dirty flag, used when a neighbor's edit requires
// this chunk to be re-meshed for seam consistency.
func (c *Chunk) MarkDirty() { c.dirty = true }

// LastBuildSeq returns the chunk's last applied build sequence.
func (c *Chunk) LastBuildSeq() uint32 { return c.lastBuildSeq }

// SetLastBuildSeq advances lastBuildSeq if seq is not older than the
// current value (lastBuildSeq is monotonically non-decreasing).
func (c *Chunk) SetLastBuildSeq(seq uint32) {
	if seq > c.lastBuildSeq {
		c.lastBuildSeq = seq
	}
}

// Clone returns a deep copy of c's coordinate, cell data, build sequence,
// dirty flag, and face-visibility summary, sharing no memory with c.
// Used to hand a worker goroutine an immutable snapshot it can read and
// even mutate locally (e.g. during lighting) without ever touching
// chunk-store-owned state (spec.md §5: "Worker tasks receive immutable
// snapshots... Only the main task mutates [the chunk store]").
func (c *Chunk) Clone() *Chunk {
	return &Chunk{
		Coord:          c.Coord,
		data:           c.data,
		lastBuildSeq:   c.lastBuildSeq,
		dirty:          c.dirty,
		faceVisibility: c.faceVisibility,
	}
}

// ReplaceData overwrites c's main cell buffer wholesale from data, used
// by the main thread to commit a worker's computed (lit) snapshot back
// into the live chunk once its result has passed the stale-generation
// check (spec.md §5).
func (c *Chunk) ReplaceData(data *[Volume]voxel.Cell) {
	c.data = *data
}

// FaceVisibility returns the chunk's current face-visibility summary.
func (c *Chunk) FaceVisibility() FaceVisibility { return c.faceVisibility }

// SetFaceVisibility replaces the chunk's face-visibility summary.
func (c *Chunk) SetFaceVisibility(fv FaceVisibility) { c.faceVisibility = fv }
