package build_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/build"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/sdf"
)

func TestGetAffectedChunksSingleChunkAABB(t *testing.T) {
	op := build.Op{
		Center:   mgl32.Vec3{chunk.WorldSizeMeters / 2, chunk.WorldSizeMeters / 2, chunk.WorldSizeMeters / 2},
		Rotation: mgl32.QuatIdent(),
		Shape:    sdf.Config{Shape: sdf.ShapeSphere, Size: mgl32.Vec3{1, 0, 0}},
		Mode:     build.ModeAdd,
		Material: 1,
	}
	chunks := build.GetAffectedChunks(op)
	if len(chunks) != 1 {
		t.Fatalf("expected exactly one affected chunk for a small centered sphere, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != (chunk.Coord{X: 0, Y: 0, Z: 0}) {
		t.Fatalf("expected chunk (0,0,0), got %v", chunks[0])
	}
}

// Scenario 2 (spec.md §8): empty-then-sphere build. The sphere's center
// cell becomes solid with the op's material; corner cells remain air.
func TestDrawToChunkAddSphere(t *testing.T) {
	c := chunk.New(0, 0, 0)
	c.Fill(-0.5, 0, 0)

	centerWorld := mgl32.Vec3{chunk.WorldSizeMeters / 2, chunk.WorldSizeMeters / 2, chunk.WorldSizeMeters / 2}
	op := build.Op{
		Center:   centerWorld,
		Rotation: mgl32.QuatIdent(),
		Shape:    sdf.Config{Shape: sdf.ShapeSphere, Size: mgl32.Vec3{1, 0, 0}},
		Mode:     build.ModeAdd,
		Material: 5,
	}

	changed := build.DrawToChunk(c, op, nil)
	if !changed {
		t.Fatalf("expected DrawToChunk to report a change")
	}

	centerCell := c.GetCell(chunk.Size/2, chunk.Size/2, chunk.Size/2)
	if !centerCell.IsSolid() {
		t.Fatalf("sphere center cell should be solid")
	}
	if centerCell.Material() != 5 {
		t.Fatalf("sphere center cell should have material 5, got %d", centerCell.Material())
	}

	cornerCell := c.GetCell(0, 0, 0)
	if cornerCell.IsSolid() {
		t.Fatalf("corner cell far from a radius-1 sphere should remain air")
	}
}

// PAINT must only repaint cells the shape actually covers, not every
// solid cell in the chunk (spec.md §4.4: "for each cell in the
// intersected region").
func TestDrawToChunkPaintOnlyAffectsShapeFootprint(t *testing.T) {
	c := chunk.New(0, 0, 0)
	c.Fill(0.5, 1, 0) // whole chunk solid, material 1

	centerWorld := mgl32.Vec3{chunk.WorldSizeMeters / 2, chunk.WorldSizeMeters / 2, chunk.WorldSizeMeters / 2}
	op := build.Op{
		Center:   centerWorld,
		Rotation: mgl32.QuatIdent(),
		Shape:    sdf.Config{Shape: sdf.ShapeSphere, Size: mgl32.Vec3{1, 0, 0}},
		Mode:     build.ModePaint,
		Material: 7,
	}

	changed := build.DrawToChunk(c, op, nil)
	if !changed {
		t.Fatalf("expected DrawToChunk to report a change")
	}

	centerCell := c.GetCell(chunk.Size/2, chunk.Size/2, chunk.Size/2)
	if centerCell.Material() != 7 {
		t.Fatalf("sphere center cell should be repainted to material 7, got %d", centerCell.Material())
	}

	cornerCell := c.GetCell(0, 0, 0)
	if cornerCell.Material() != 1 {
		t.Fatalf("corner cell far outside the sphere must keep its original material, got %d", cornerCell.Material())
	}
}

// FILL must only affect air cells the shape actually covers, not every
// air cell in the chunk.
func TestDrawToChunkFillOnlyAffectsShapeFootprint(t *testing.T) {
	c := chunk.New(0, 0, 0)
	c.Fill(-0.5, 0, 0) // whole chunk air

	centerWorld := mgl32.Vec3{chunk.WorldSizeMeters / 2, chunk.WorldSizeMeters / 2, chunk.WorldSizeMeters / 2}
	op := build.Op{
		Center:   centerWorld,
		Rotation: mgl32.QuatIdent(),
		Shape:    sdf.Config{Shape: sdf.ShapeSphere, Size: mgl32.Vec3{1, 0, 0}},
		Mode:     build.ModeFill,
		Material: 7,
	}

	changed := build.DrawToChunk(c, op, nil)
	if !changed {
		t.Fatalf("expected DrawToChunk to report a change")
	}

	centerCell := c.GetCell(chunk.Size/2, chunk.Size/2, chunk.Size/2)
	if !centerCell.IsSolid() || centerCell.Material() != 7 {
		t.Fatalf("sphere center cell should be filled solid with material 7, got solid=%v material=%d", centerCell.IsSolid(), centerCell.Material())
	}

	cornerCell := c.GetCell(0, 0, 0)
	if cornerCell.IsSolid() {
		t.Fatalf("corner cell far outside the sphere must remain air, got solid")
	}
}
