package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/material"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/profiling"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/voxel"
)

// SubCells is the edge length of the sub-cell grid: one fewer than the
// corner grid along each axis (spec.md §4.6: "≤ 33³ sub-cells").
const SubCells = ExpandedSize - 1

const subCellVolume = SubCells * SubCells * SubCells

func subCellIndex(sx, sy, sz int) int {
	return sx + sy*SubCells + sz*SubCells*SubCells
}

// Vertex is one Surface-Net vertex's per-vertex output (spec.md §4.6).
type Vertex struct {
	Position mgl32.Vec3 // local chunk-cell units in [-1, 32]; margin sub-cell vertices fall outside [0, 32)
	Normal   mgl32.Vec3
	Material uint8
	AO       uint8
	Light    uint8
}

// Mesh holds the three parallel, independently deduplicated triangle
// lists produced by Build, indexed by material.Type.
type Mesh struct {
	Vertices [material.Count][]Vertex
	Indices  [material.Count][]uint32
}

// Empty reports whether layer t has no triangles.
func (m *Mesh) Empty(t material.Type) bool {
	return len(m.Indices[t]) == 0
}

type subCellVertex struct {
	v     Vertex
	valid bool
}

// cornerOffsets lists the 8 corner deltas of a sub-cell, bit i of the
// loop index selects offset i's axis: bit0=x, bit1=y, bit2=z.
var cornerOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

// edgePairs lists the 12 sub-cell edges as corner-index pairs.
var edgePairs = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along X
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along Z
}

// Build runs the Surface-Net algorithm of spec.md §4.6 over e, producing
// three independently deduplicated triangle lists split by the material
// type of each quad's solid-side corner.
func Build(e *Expanded, pal *material.Palette) *Mesh {
	defer profiling.Track("meshing.Build")()

	verts := make([]subCellVertex, subCellVolume)

	for sz := 0; sz < SubCells; sz++ {
		for sy := 0; sy < SubCells; sy++ {
			for sx := 0; sx < SubCells; sx++ {
				buildSubCellVertex(e, sx, sy, sz, verts)
			}
		}
	}

	mesh := &Mesh{}
	var localIndex [material.Count]map[int]uint32
	for t := range localIndex {
		localIndex[t] = make(map[int]uint32)
	}

	emit := func(t material.Type, subcell int) uint32 {
		if idx, ok := localIndex[t][subcell]; ok {
			return idx
		}
		idx := uint32(len(mesh.Vertices[t]))
		mesh.Vertices[t] = append(mesh.Vertices[t], verts[subcell].v)
		localIndex[t][subcell] = idx
		return idx
	}

	emitQuad := func(t material.Type, a, b, c, d int) {
		ia, ib, ic, id := emit(t, a), emit(t, b), emit(t, c), emit(t, d)
		mesh.Indices[t] = append(mesh.Indices[t], ia, ib, ic, ia, ic, id)
	}

	// Axis 0=X, 1=Y, 2=Z. For each grid edge along axis a whose two
	// corner endpoints differ in solidity, emit a quad connecting the
	// 4 sub-cells sharing that edge.
	for a := 0; a < 3; a++ {
		b, cax := (a+1)%3, (a+2)%3
		for pa := 0; pa <= SubCells-1; pa++ {
			for pb := 1; pb <= SubCells-1; pb++ {
				for pc := 1; pc <= SubCells-1; pc++ {
					var p, p2 [3]int
					p[a], p[b], p[cax] = pa, pb, pc
					p2 = p
					p2[a]++

					cell1 := e.at(p[0], p[1], p[2])
					cell2 := e.at(p2[0], p2[1], p2[2])
					s1, s2 := cell1.IsSolid(), cell2.IsSolid()
					if s1 == s2 {
						continue
					}

					var sub [4][3]int
					sub[0][a], sub[1][a], sub[2][a], sub[3][a] = pa, pa, pa, pa
					sub[0][b], sub[1][b] = pb-1, pb
					sub[2][b], sub[3][b] = pb-1, pb
					sub[0][cax], sub[1][cax] = pc-1, pc-1
					sub[2][cax], sub[3][cax] = pc, pc

					i00 := subCellIndex(sub[0][0], sub[0][1], sub[0][2])
					i10 := subCellIndex(sub[1][0], sub[1][1], sub[1][2])
					i01 := subCellIndex(sub[2][0], sub[2][1], sub[2][2])
					i11 := subCellIndex(sub[3][0], sub[3][1], sub[3][2])
					if !verts[i00].valid || !verts[i10].valid || !verts[i01].valid || !verts[i11].valid {
						continue
					}

					if skipBoundaryQuad(e, a, pa) {
						continue
					}

					var solidCell voxel.Cell
					if s1 {
						solidCell = cell1
					} else {
						solidCell = cell2
					}
					t := pal.TypeOf(solidCell.Material())

					// s1 solid (facing +a) winds one way; s2 solid
					// (facing -a) winds the reverse so the normal
					// points from solid to air either way.
					if s1 {
						emitQuad(t, i00, i10, i11, i01)
					} else {
						emitQuad(t, i00, i01, i11, i10)
					}
				}
			}
		}
	}

	return mesh
}

// skipBoundaryQuad reports whether the quad generated along axis a at
// sub-cell layer pa lies on the chunk's high boundary in a direction
// whose neighbor chunk is absent (spec.md §4.6: avoids double-walled
// seams). The high boundary sub-cell layer is SubCells-1 (corners 32,33
// of the expanded grid, i.e. exactly the chunk's +face). Quads on the
// low boundary layer 0 (corners 0,1, the chunk's -face) are always
// skipped: that face is the -a neighbor's high boundary.
func skipBoundaryQuad(e *Expanded, a, pa int) bool {
	if pa == 0 {
		return true
	}
	if pa != SubCells-1 {
		return false
	}
	switch a {
	case 0:
		return !e.HighXResident
	case 1:
		return !e.HighYResident
	default:
		return !e.HighZResident
	}
}

// buildSubCellVertex examines sub-cell (sx,sy,sz)'s 8 corners and, if
// they straddle the surface, estimates and stores its vertex.
func buildSubCellVertex(e *Expanded, sx, sy, sz int, out []subCellVertex) {
	var corners [8]voxel.Cell
	var mask uint8
	for i, off := range cornerOffsets {
		corners[i] = e.at(sx+off[0], sy+off[1], sz+off[2])
		if corners[i].IsSolid() {
			mask |= 1 << uint(i)
		}
	}
	if mask == 0 || mask == 0xFF {
		return
	}

	var sum mgl32.Vec3
	var count float32
	for _, edge := range edgePairs {
		c0, c1 := corners[edge[0]], corners[edge[1]]
		s0, s1 := c0.IsSolid(), c1.IsSolid()
		if s0 == s1 {
			continue
		}
		w0, w1 := c0.Weight(), c1.Weight()
		t := w0 / (w0 - w1)
		o0, o1 := cornerOffsets[edge[0]], cornerOffsets[edge[1]]
		p := mgl32.Vec3{
			lerp(float32(o0[0]), float32(o1[0]), t),
			lerp(float32(o0[1]), float32(o1[1]), t),
			lerp(float32(o0[2]), float32(o1[2]), t),
		}
		sum = sum.Add(p)
		count++
	}
	if count == 0 {
		return
	}
	local := sum.Mul(1 / count)

	matID, lightSum, solidCount := dominantMaterial(corners, mask)

	var gradPos, gradNeg [3]float32
	for i, off := range cornerOffsets {
		w := corners[i].Weight()
		for axis := 0; axis < 3; axis++ {
			if off[axis] == 1 {
				gradPos[axis] += w
			} else {
				gradNeg[axis] += w
			}
		}
	}
	normal := mgl32.Vec3{
		gradNeg[0] - gradPos[0],
		gradNeg[1] - gradPos[1],
		gradNeg[2] - gradPos[2],
	}
	if normal.Len() > 1e-6 {
		normal = normal.Normalize()
	} else {
		normal = mgl32.Vec3{0, 1, 0}
	}

	idx := subCellIndex(sx, sy, sz)
	out[idx] = subCellVertex{
		valid: true,
		v: Vertex{
			Position: mgl32.Vec3{float32(sx-1) + local.X(), float32(sy-1) + local.Y(), float32(sz-1) + local.Z()},
			Normal:   normal,
			Material: matID,
			AO:       uint8(255 * solidCount / 8),
			Light:    uint8(lightSum / 8),
		},
	}
}

// dominantMaterial returns the majority material ID among the solid
// corners named by mask, ties broken by lowest material ID, plus the
// summed corner light (for averaging) and the solid corner count (for
// the AO proxy).
func dominantMaterial(corners [8]voxel.Cell, mask uint8) (matID uint8, lightSum int, solidCount int) {
	var counts [256]int
	for i := 0; i < 8; i++ {
		lightSum += int(corners[i].Light())
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		solidCount++
		counts[corners[i].Material()]++
	}

	best, bestCount := uint8(0), -1
	for id := 0; id <= int(voxel.MaxMaterial); id++ {
		if counts[id] > bestCount {
			bestCount = counts[id]
			best = uint8(id)
		}
	}
	return best, lightSum, solidCount
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
