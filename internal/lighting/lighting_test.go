package lighting_test

import (
	"testing"

	"github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/lighting"
	"github.com/Dan0net/worldify-multiplayer-sub004/internal/material"
)

func TestComputeSunlightColumnsFullyAirChunkIsFullyLit(t *testing.T) {
	pal := material.Default()
	c := chunk.New(0, 0, 0)
	c.Fill(-0.5, 0, 0)

	lighting.ComputeSunlightColumns(c, pal, lighting.FullSunlightColumns())

	for z := 0; z < chunk.Size; z++ {
		for y := 0; y < chunk.Size; y++ {
			for x := 0; x < chunk.Size; x++ {
				if got := c.GetCell(x, y, z).Light(); got != uint8(lighting.FullSunlight) {
					t.Fatalf("cell (%d,%d,%d) expected full sunlight %d, got %d", x, y, z, lighting.FullSunlight, got)
				}
			}
		}
	}
}

func TestComputeSunlightColumnsBlocksBelowOpaqueSolid(t *testing.T) {
	pal := material.Default()
	c := chunk.New(0, 0, 0)
	c.GenerateFlat(16, 1, 0)

	lighting.ComputeSunlightColumns(c, pal, lighting.FullSunlightColumns())

	below := c.GetCell(0, 0, 0)
	if below.Light() != 0 {
		t.Fatalf("cell beneath opaque solid column should be dark, got light %d", below.Light())
	}
	above := c.GetCell(0, chunk.Size-1, 0)
	if above.Light() != uint8(lighting.FullSunlight) {
		t.Fatalf("cell above the surface should be fully lit, got %d", above.Light())
	}
}

func TestPropagateLightNeighborDropsAtMostOne(t *testing.T) {
	pal := material.Default()
	c := chunk.New(0, 0, 0)
	c.Fill(-0.5, 0, 0)

	lighting.ComputeSunlightColumns(c, pal, lighting.FullSunlightColumns())
	lighting.PropagateLight(c, pal, chunk.MapNeighbors{})

	for z := 0; z < chunk.Size; z++ {
		for y := 0; y < chunk.Size; y++ {
			for x := 0; x < chunk.Size; x++ {
				a := c.GetCell(x, y, z)
				if a.IsSolid() {
					continue
				}
				al := int(a.Light())
				for _, off := range [][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
					nx, ny, nz := x+off[0], y+off[1], z+off[2]
					if !chunk.InBounds(nx, ny, nz) {
						continue
					}
					b := c.GetCell(nx, ny, nz)
					if b.IsSolid() {
						continue
					}
					if int(b.Light()) < al-1 {
						t.Fatalf("neighbor light dropped by more than 1: a=%d at (%d,%d,%d), b=%d at (%d,%d,%d)", al, x, y, z, b.Light(), nx, ny, nz)
					}
				}
			}
		}
	}
}
