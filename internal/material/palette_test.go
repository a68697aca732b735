package material_test

import (
	"testing"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/material"
)

func TestDefaultPaletteBuckets(t *testing.T) {
	pal := material.Default()
	if pal.TypeOf(0) != material.Transparent {
		t.Errorf("material 0 (air) should be TRANSPARENT, got %v", pal.TypeOf(0))
	}
	if pal.TypeOf(1) != material.Solid {
		t.Errorf("material 1 should be SOLID, got %v", pal.TypeOf(1))
	}
	if pal.TypeOf(2) != material.Liquid {
		t.Errorf("material 2 should be LIQUID, got %v", pal.TypeOf(2))
	}
}

func TestTypeOfClampsOutOfRangeID(t *testing.T) {
	pal := material.Default()
	if got := pal.TypeOf(255); got != pal.TypeOf(material.MaxID) {
		t.Errorf("out-of-range material ID should clamp to MaxID's bucket, got %v", got)
	}
}

func TestBuilderDefinesEmissionClamped(t *testing.T) {
	pal := material.NewBuilder().Define(5, material.Solid, 1000).Build()
	if got := pal.EmissionOf(5); got != 31 {
		t.Errorf("emission should clamp to 31, got %d", got)
	}
}
