// Package build implements SDF-based volumetric edits applied
// consistently on client and server (spec.md §4.4), grounded on the
// teacher's direct cell/block mutation style (world.ChunkStore.Set) but
// generalized from single-cell writes to a whole-AABB SDF sweep.
package build

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/sdf"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/voxel"
)

// Mode selects how Op merges the SDF's weight into existing cells.
type Mode uint8

const (
	ModeAdd Mode = iota
	ModeSubtract
	ModePaint
	ModeFill
)

// Op is one build intent in world space: a shape config plus the
// rigid transform (center + rotation) placing it, and the material to
// paint/fill/add with.
type Op struct {
	Center   mgl32.Vec3
	Rotation mgl32.Quat
	Shape    sdf.Config
	Mode     Mode
	Material int
}

// localHalfExtents returns the op's shape's half-extent along each local
// axis, used to derive a rotated world-space AABB.
func (op Op) localHalfExtents() mgl32.Vec3 {
	s := op.Shape.Size
	switch op.Shape.Shape {
	case sdf.ShapeSphere:
		return mgl32.Vec3{s.X(), s.X(), s.X()}
	case sdf.ShapeCylinder:
		return mgl32.Vec3{s.X(), s.Y(), s.X()}
	default: // cube, prism: Size already holds per-axis half-extents
		return s
	}
}

// WorldAABB returns the op's conservative world-space AABB (min, max),
// in metres, padded by one cell of margin. The rotated shape's
// axis-aligned extent along world axis i is bounded by
// sum_j |R_ij| * localHalfExtent_j, the standard rotated-box AABB
// formula; for sphere/cylinder this stays conservative since those
// shapes are bounded by their own local bounding box regardless of
// orientation.
func (op Op) WorldAABB() (min, max mgl32.Vec3) {
	half := op.localHalfExtents()
	rot := op.Rotation.Mat4()

	var world [3]float32
	for i := 0; i < 3; i++ {
		var sum float32
		for j := 0; j < 3; j++ {
			sum += absf(rot.At(i, j)) * half[j]
		}
		world[i] = sum + chunk.CellSizeMeters
	}

	pad := mgl32.Vec3{world[0], world[1], world[2]}
	return op.Center.Sub(pad), op.Center.Add(pad)
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// invertedRotation returns the inverse of op's rotation, computed once
// per op (spec.md §4.4: "invert once per op, apply to each cell-relative
// position").
func (op Op) invertedRotation() mgl32.Quat {
	return op.Rotation.Inverse()
}

// localPoint transforms a world-space point into the op's local
// (inverse-rotated, centered) frame.
func (op Op) localPoint(inv mgl32.Quat, world mgl32.Vec3) mgl32.Vec3 {
	return inv.Rotate(world.Sub(op.Center))
}

// sdfAt evaluates the op's shape at a world-space point.
func (op Op) sdfAt(inv mgl32.Quat, world mgl32.Vec3) float32 {
	return sdf.FromConfig(op.localPoint(inv, world), op.Shape)
}

// cellCenterWorld returns the world-space center of the cell at local
// chunk coordinates (x,y,z) within the chunk at cc.
func cellCenterWorld(cc chunk.Coord, x, y, z int) mgl32.Vec3 {
	return mgl32.Vec3{
		(float32(cc.X*chunk.Size+x) + 0.5) * chunk.CellSizeMeters,
		(float32(cc.Y*chunk.Size+y) + 0.5) * chunk.CellSizeMeters,
		(float32(cc.Z*chunk.Size+z) + 0.5) * chunk.CellSizeMeters,
	}
}

// GetAffectedChunks computes op's world AABB (with a one-cell margin,
// already folded into WorldAABB), converts it to chunk coordinates, and
// enumerates every chunk it intersects.
func GetAffectedChunks(op Op) []chunk.Coord {
	lo, hi := op.WorldAABB()
	cxLo := floorDiv(lo.X(), chunk.WorldSizeMeters)
	cxHi := floorDiv(hi.X(), chunk.WorldSizeMeters)
	cyLo := floorDiv(lo.Y(), chunk.WorldSizeMeters)
	cyHi := floorDiv(hi.Y(), chunk.WorldSizeMeters)
	czLo := floorDiv(lo.Z(), chunk.WorldSizeMeters)
	czHi := floorDiv(hi.Z(), chunk.WorldSizeMeters)

	var out []chunk.Coord
	for cx := cxLo; cx <= cxHi; cx++ {
		for cy := cyLo; cy <= cyHi; cy++ {
			for cz := czLo; cz <= czHi; cz++ {
				out = append(out, chunk.Coord{X: cx, Y: cy, Z: cz})
			}
		}
	}
	return out
}

func floorDiv(v, size float32) int {
	q := v / size
	i := int(q)
	if q < 0 && float32(i) != q {
		i--
	}
	return i
}

// DrawToChunk evaluates op at every cell of c (the loop is not clipped to
// the op's AABB), writing into target (or c's main buffer if target is
// nil). It returns whether any cell changed.
func DrawToChunk(c *chunk.Chunk, op Op, target *[chunk.Volume]voxel.Cell) bool {
	inv := op.invertedRotation()
	changed := false

	for z := 0; z < chunk.Size; z++ {
		for y := 0; y < chunk.Size; y++ {
			for x := 0; x < chunk.Size; x++ {
				world := cellCenterWorld(c.Coord, x, y, z)
				d := op.sdfAt(inv, world)
				newWeight := sdf.ToWeight(d)

				old := c.GetCell(x, y, z)
				next, write := mergeCell(op, old, newWeight)
				if !write {
					continue
				}
				before := old
				c.SetCellInto(target, x, y, z, next)
				if next != before {
					changed = true
				}
			}
		}
	}
	return changed
}

// mergeCell applies op.Mode's merge rule and returns the resulting cell
// and whether it should be written at all. ADD/SUBTRACT bound themselves
// to the shape implicitly through the weight merge (far outside the
// shape, newWeight clamps to -0.5 and leaves the existing weight
// untouched); PAINT/FILL carry no weight merge of their own, so they
// gate explicitly on whether newWeight places this cell inside the
// shape, matching spec.md §4.4's "for each cell in the intersected
// region".
func mergeCell(op Op, old voxel.Cell, newWeight float32) (voxel.Cell, bool) {
	oldWeight, oldMaterial, oldLight := old.Unpack()
	wasSolid := old.IsSolid()

	switch op.Mode {
	case ModeAdd:
		w := maxf(oldWeight, newWeight)
		mat := oldMaterial
		becameSolid := voxel.Pack(w, 0, 0).IsSolid()
		if becameSolid && !wasSolid {
			mat = op.Material
		}
		return voxel.Pack(w, mat, oldLight), true

	case ModeSubtract:
		w := minf(oldWeight, -newWeight)
		return voxel.Pack(w, oldMaterial, oldLight), true

	case ModePaint:
		inside := voxel.Pack(newWeight, 0, 0).IsSolid()
		if !wasSolid || !inside {
			return old, false
		}
		return old.WithMaterial(op.Material), true

	case ModeFill:
		inside := voxel.Pack(newWeight, 0, 0).IsSolid()
		if wasSolid || !inside {
			return old, false
		}
		return voxel.Pack(0.5, op.Material, oldLight), true

	default:
		return old, false
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
