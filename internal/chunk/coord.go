package chunk

import "fmt"

// Coord addresses a chunk by its integer chunk-space coordinates. Chunks
// are always looked up through this triple-keyed struct, never through a
// string key (spec.md §9 design note: "Neighbor lookups by key string").
type Coord struct {
	X, Y, Z int
}

// String renders a Coord for logging; not used as a map key anywhere.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Add returns the coordinate offset by (dx,dy,dz).
func (c Coord) Add(dx, dy, dz int) Coord {
	return Coord{c.X + dx, c.Y + dy, c.Z + dz}
}

// Neighbor6 returns the six axis-aligned neighbor coordinates in the
// fixed order -X, +X, -Y, +Y, -Z, +Z.
func (c Coord) Neighbor6() [6]Coord {
	return [6]Coord{
		{c.X - 1, c.Y, c.Z},
		{c.X + 1, c.Y, c.Z},
		{c.X, c.Y - 1, c.Z},
		{c.X, c.Y + 1, c.Z},
		{c.X, c.Y, c.Z - 1},
		{c.X, c.Y, c.Z + 1},
	}
}
