package meshing_test

import (
	"testing"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/material"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/meshing"
)

func TestBuildEmptyForAllSolidOrAllAir(t *testing.T) {
	pal := material.Default()

	allSolid := chunk.New(0, 0, 0)
	allSolid.Fill(0.5, 1, 0)
	mesh := meshing.Build(meshing.Expand(allSolid, chunk.MapNeighbors{}), pal)
	for tIdx := 0; tIdx < material.Count; tIdx++ {
		if !mesh.Empty(material.Type(tIdx)) {
			t.Errorf("all-solid chunk should produce an empty %v layer, got %d triangles", material.Type(tIdx), len(mesh.Indices[tIdx])/3)
		}
	}

	allAir := chunk.New(0, 0, 0)
	allAir.Fill(-0.5, 0, 0)
	mesh = meshing.Build(meshing.Expand(allAir, chunk.MapNeighbors{}), pal)
	for tIdx := 0; tIdx < material.Count; tIdx++ {
		if !mesh.Empty(material.Type(tIdx)) {
			t.Errorf("all-air chunk should produce an empty %v layer, got %d triangles", material.Type(tIdx), len(mesh.Indices[tIdx])/3)
		}
	}
}

// Scenario 1 (spec.md §8): flat-terrain chunk, Y=16.
func TestFlatTerrainChunkProducesUpwardFacingSolidMesh(t *testing.T) {
	pal := material.NewBuilder().
		Define(0, material.Transparent, 0).
		Define(3, material.Solid, 0).
		Build()

	c := chunk.New(0, 0, 0)
	c.GenerateFlat(16, 3, 31)

	mesh := meshing.Build(meshing.Expand(c, chunk.MapNeighbors{}), pal)

	triCount := len(mesh.Indices[material.Solid]) / 3
	if triCount < 100 {
		t.Fatalf("expected >= 100 solid triangles, got %d", triCount)
	}

	upward := 0
	for _, v := range mesh.Vertices[material.Solid] {
		if v.Material != 3 {
			t.Errorf("expected material ID 3 on every solid vertex, got %d", v.Material)
		}
		if v.Normal.Y() > 0.5 {
			upward++
		}
	}
	total := len(mesh.Vertices[material.Solid])
	if float64(upward) < 0.8*float64(total) {
		t.Fatalf("expected >= 80%% upward-facing vertices, got %d/%d", upward, total)
	}
}

// Scenario 3 (spec.md §8): chunk seam. Two neighboring flat chunks mesh
// matching boundary vertices at the shared +X/-X face.
func TestChunkSeamBoundaryVerticesMatch(t *testing.T) {
	pal := material.Default()

	left := chunk.New(0, 0, 0)
	left.GenerateFlat(10, 1, 0)
	right := chunk.New(1, 0, 0)
	right.GenerateFlat(10, 1, 0)

	neighbors := chunk.MapNeighbors{
		{X: 0, Y: 0, Z: 0}: left,
		{X: 1, Y: 0, Z: 0}: right,
	}

	leftMesh := meshing.Build(meshing.Expand(left, neighbors), pal)
	rightMesh := meshing.Build(meshing.Expand(right, neighbors), pal)

	var leftBoundary, rightBoundary []float32
	for _, v := range leftMesh.Vertices[material.Solid] {
		if v.Position.X() > 31 {
			leftBoundary = append(leftBoundary, v.Position.Z())
		}
	}
	for _, v := range rightMesh.Vertices[material.Solid] {
		if v.Position.X() < 0.5 {
			rightBoundary = append(rightBoundary, v.Position.Z())
		}
	}

	if len(leftBoundary) == 0 {
		t.Fatalf("expected boundary vertices at x~32 on the left chunk")
	}

	matched := 0
	for _, lz := range leftBoundary {
		for _, rz := range rightBoundary {
			if abs32(lz-rz) < 0.2 {
				matched++
				break
			}
		}
	}
	if float64(matched) < 0.6*float64(len(leftBoundary)) {
		t.Fatalf("expected >= 60%% of boundary vertices to match across the seam, got %d/%d", matched, len(leftBoundary))
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
