package voxel_test

import (
	"testing"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/voxel"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		weight          float32
		material, light int
	}{
		{0, 0, 0},
		{-0.5, 1, 31},
		{0.5, 127, 0},
		{0.1, 64, 16},
	}
	for _, c := range cases {
		cell := voxel.Pack(c.weight, c.material, c.light)
		gotWeight, gotMaterial, gotLight := cell.Unpack()
		if gotMaterial != c.material {
			t.Errorf("material round trip: got %d, want %d", gotMaterial, c.material)
		}
		if gotLight != c.light {
			t.Errorf("light round trip: got %d, want %d", gotLight, c.light)
		}
		if abs32(gotWeight-c.weight) > 0.05 {
			t.Errorf("weight round trip: got %v, want %v", gotWeight, c.weight)
		}
		// Re-packing the unpacked fields must reproduce the same bits
		// (the quantization step is idempotent once already quantized).
		again := voxel.Pack(gotWeight, gotMaterial, gotLight)
		if again != cell {
			t.Errorf("pack(unpack(c)) != c: got %v, want %v", again, cell)
		}
	}
}

func TestPackClampsOutOfRange(t *testing.T) {
	cell := voxel.Pack(10, -5, 1000)
	_, material, light := cell.Unpack()
	if material != 0 {
		t.Errorf("material should clamp to 0, got %d", material)
	}
	if light != voxel.MaxLight {
		t.Errorf("light should clamp to %d, got %d", voxel.MaxLight, light)
	}
}

func TestIsSolidThreshold(t *testing.T) {
	air := voxel.Pack(-0.5, 0, 0)
	solid := voxel.Pack(0.5, 1, 0)
	if air.IsSolid() {
		t.Errorf("minimum weight cell should not be solid")
	}
	if !solid.IsSolid() {
		t.Errorf("maximum weight cell should be solid")
	}
}

func TestWithMaterialPreservesOtherFields(t *testing.T) {
	cell := voxel.Pack(0.5, 3, 20)
	updated := cell.WithMaterial(9)
	w, m, l := updated.Unpack()
	if m != 9 {
		t.Errorf("material not updated: got %d", m)
	}
	if l != 20 {
		t.Errorf("light field clobbered by WithMaterial: got %d", l)
	}
	if abs32(w-0.5) > 0.05 {
		t.Errorf("weight field clobbered by WithMaterial: got %v", w)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
