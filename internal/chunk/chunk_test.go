package chunk_test

import (
	"testing"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/voxel"
)

func TestGetCellMatchesFlatIndex(t *testing.T) {
	c := chunk.New(0, 0, 0)
	cell := voxel.Pack(0.5, 7, 12)
	c.SetCell(3, 4, 5, cell)

	if got := c.GetCell(3, 4, 5); got != cell {
		t.Fatalf("GetCell mismatch: got %v, want %v", got, cell)
	}

	data := c.Data()
	idx := 3 + 4*chunk.Size + 5*chunk.Size*chunk.Size
	if data[idx] != cell {
		t.Fatalf("direct data index mismatch: got %v, want %v", data[idx], cell)
	}
}

func TestGetCellOutOfBoundsReturnsZero(t *testing.T) {
	c := chunk.New(0, 0, 0)
	c.Fill(0.5, 1, 10)
	if got := c.GetCell(-1, 0, 0); got != voxel.Zero {
		t.Fatalf("out-of-bounds read should return zero cell, got %v", got)
	}
	if got := c.GetCell(32, 0, 0); got != voxel.Zero {
		t.Fatalf("out-of-bounds read should return zero cell, got %v", got)
	}
}

func TestCellWithMarginReadsNeighbor(t *testing.T) {
	center := chunk.New(0, 0, 0)
	posX := chunk.New(1, 0, 0)
	edgeCell := voxel.Pack(0.5, 9, 5)
	posX.SetCell(0, 10, 10, edgeCell)

	neighbors := chunk.MapNeighbors{
		{X: 1, Y: 0, Z: 0}: posX,
	}

	got := center.CellWithMargin(chunk.Size, 10, 10, neighbors)
	if got != edgeCell {
		t.Fatalf("margin read from +X neighbor mismatch: got %v, want %v", got, edgeCell)
	}
}

func TestCellWithMarginMissingNeighborIsEmptyAir(t *testing.T) {
	center := chunk.New(0, 0, 0)
	got := center.CellWithMargin(-1, 0, 0, chunk.MapNeighbors{})
	if got.IsSolid() {
		t.Fatalf("missing neighbor margin cell should be air, got solid cell %v", got)
	}
}

func TestFaceVisibilityUnknownIsAlwaysPassable(t *testing.T) {
	var fv chunk.FaceVisibility = chunk.FaceVisibilityUnknown
	if !fv.Passable(chunk.FaceNegX, chunk.FacePosZ) {
		t.Fatalf("unknown face visibility must be treated as fully passable")
	}
}

func TestFaceVisibilityClosedFaceBlocksPassage(t *testing.T) {
	var fv chunk.FaceVisibility
	fv = fv.WithOpen(chunk.FaceNegX, true)
	if fv.Passable(chunk.FaceNegX, chunk.FacePosX) {
		t.Fatalf("closed +X face should not be passable")
	}
	if !fv.Passable(chunk.FaceNegX, chunk.FaceNegX) {
		t.Fatalf("the open -X face should be passable to itself")
	}
}
