package collision

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/material"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/meshing"
)

// TrianglesFromMesh extracts world-space collision triangles from mesh's
// SOLID layer only — liquids and foliage are excluded from collision by
// default (spec.md §4.11) — converting the mesher's local cell-unit
// vertex positions into world metres at coord's chunk offset.
func TrianglesFromMesh(coord chunk.Coord, mesh *meshing.Mesh) []Triangle {
	verts := mesh.Vertices[material.Solid]
	indices := mesh.Indices[material.Solid]

	origin := mgl32.Vec3{
		float32(coord.X * chunk.Size),
		float32(coord.Y * chunk.Size),
		float32(coord.Z * chunk.Size),
	}

	toWorld := func(local mgl32.Vec3) mgl32.Vec3 {
		return origin.Add(local).Mul(chunk.CellSizeMeters)
	}

	tris := make([]Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		a := toWorld(verts[indices[i]].Position)
		b := toWorld(verts[indices[i+1]].Position)
		c := toWorld(verts[indices[i+2]].Position)
		normal := b.Sub(a).Cross(c.Sub(a))
		if l := normal.Len(); l > 1e-9 {
			normal = normal.Mul(1 / l)
		}
		tris = append(tris, Triangle{A: a, B: b, C: c, Normal: normal})
	}
	return tris
}
