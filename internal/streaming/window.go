package streaming

import "github.com/Dan0net/worldify-multiplayer-sub004/internal/chunk"

// DefaultVisibilityRadius is the default residency window radius in
// chunks (spec.md §4.8's VISIBILITY_RADIUS).
const DefaultVisibilityRadius = 8

// Window computes the desired residency set for a camera chunk: the
// default 2r+1 axis-aligned box of radius VISIBILITY_RADIUS (spec.md
// §4.8). A column-shaped window (fixed Y span regardless of camera
// height) is also supported via ColumnWindow for bundling with surface
// columns (spec.md §4.10).
func Window(camera chunk.Coord, radius int) []chunk.Coord {
	var out []chunk.Coord
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			for dz := -radius; dz <= radius; dz++ {
				out = append(out, chunk.Coord{X: camera.X + dx, Y: camera.Y + dy, Z: camera.Z + dz})
			}
		}
	}
	return out
}

// ColumnWindow computes the residency set as a column region: every
// (x,z) within taxicab-unbounded square radius of the camera column,
// with Y ranging over [minY, maxY] regardless of camera height, used
// when bundling requests by surface column (spec.md §4.10).
func ColumnWindow(camera chunk.Coord, radius, minY, maxY int) []chunk.Coord {
	var out []chunk.Coord
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			for cy := minY; cy <= maxY; cy++ {
				out = append(out, chunk.Coord{X: camera.X + dx, Y: cy, Z: camera.Z + dz})
			}
		}
	}
	return out
}

// Reconcile compares the desired window against the store's current
// entries and returns the coordinates that need to be requested (newly
// entering the window, still Idle) and the coordinates that should be
// released (resident but no longer desired).
func Reconcile(store *Store, desired []chunk.Coord) (toRequest, toRelease []chunk.Coord) {
	want := make(map[chunk.Coord]struct{}, len(desired))
	for _, c := range desired {
		want[c] = struct{}{}
		e := store.Entry(c)
		if e == nil || e.State == Idle {
			toRequest = append(toRequest, c)
		}
	}

	for _, c := range store.Resident() {
		if _, ok := want[c]; !ok {
			toRelease = append(toRelease, c)
		}
	}
	return toRequest, toRelease
}
