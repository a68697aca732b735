package collision_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/collision"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/material"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/meshing"
)

func flatGroundBVH(t *testing.T, surfaceY int) *collision.BVH {
	t.Helper()
	pal := material.Default()
	c := chunk.New(0, 0, 0)
	c.GenerateFlat(surfaceY, 1, 0)
	mesh := meshing.Build(meshing.Expand(c, chunk.MapNeighbors{}), pal)
	tris := collision.TrianglesFromMesh(c.Coord, mesh)
	if len(tris) == 0 {
		t.Fatalf("expected at least one SOLID triangle for flat ground")
	}
	return collision.Build(tris)
}

// Scenario 4 (spec.md §8): raycast to ground.
func TestRaycastToGround(t *testing.T) {
	b := flatGroundBVH(t, 10)

	origin := mgl32.Vec3{1, 10, 1}
	dir := mgl32.Vec3{0, -1, 0}

	hit, ok := collision.Raycast(b, origin, dir, 100)
	if !ok {
		t.Fatalf("expected a raycast hit on flat ground")
	}
	wantY := float32(2.5)
	if d := abs32(hit.Position.Y() - wantY); d > 0.5 {
		t.Fatalf("expected hit.Position.Y within 0.5 of %v, got %v", wantY, hit.Position.Y())
	}
}

func TestRaycastMissesEmptyBVH(t *testing.T) {
	b := collision.Build(nil)
	if _, ok := collision.Raycast(b, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, -1, 0}, 100); ok {
		t.Fatalf("raycast against an empty BVH should never hit")
	}
}

// Scenario 5 (spec.md §8): capsule on flat ground.
func TestCapsuleOnFlatGroundRestsWithoutSinking(t *testing.T) {
	// surfaceY=10 -> top of solid at world y = (10+1)*0.25 = 2.75m.
	b := flatGroundBVH(t, 10)
	surfaceWorldY := float32(11) * chunk.CellSizeMeters

	capsule := collision.Capsule{Radius: 0.3, Height: 1.8}
	position := mgl32.Vec3{4, surfaceWorldY - 1, 4}
	velocity := mgl32.Vec3{0, -1, 0}
	dt := float32(1.0 / 60.0)

	result := collision.ResolveCapsuleCollision(b, capsule, position, velocity, dt)

	if !result.IsOnGround {
		t.Fatalf("expected capsule resting on flat ground to report IsOnGround")
	}
	if result.Delta.Y() <= 0 {
		t.Fatalf("expected a positive upward push-out delta, got %v", result.Delta.Y())
	}
	if mag := result.Delta.Len(); mag >= 1.1 {
		t.Fatalf("expected push-out delta magnitude < 1.1, got %v", mag)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
