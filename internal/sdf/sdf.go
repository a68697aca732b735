// Package sdf implements the signed-distance-function primitives and
// modifiers build application evaluates against each cell, grounded on
// the teacher's 3D-density terrain generator (dantero-ps-mini-mc-go's
// internal/world/density.go computeDensity — a continuous field sampled
// per-cell rather than a discrete block lookup) and on Gekko3D-gekko's
// mgl32-based transform math for the local-frame rotation.
package sdf

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape selects which primitive sdfFromConfig evaluates.
type Shape uint8

const (
	ShapeCube Shape = iota
	ShapeSphere
	ShapeCylinder
	ShapePrism
)

// Config fully describes one build shape in its own local frame: size
// (half-extents for cube/prism, (radius, halfHeight, _) for cylinder,
// radius for sphere), plus optional hollow and arc-sweep modifiers.
type Config struct {
	Shape Shape
	Size  mgl32.Vec3

	HasThickness bool
	Thickness    float32
	Closed       bool // when hollow, whether the caps are kept; false removes cylinder/cube caps

	HasArcSweep bool
	ArcSweep    float32 // radians; XZ-angle beyond which d is forced positive
}

// Sphere returns the signed distance from p to a sphere of radius r
// centered at the local-frame origin.
func Sphere(p mgl32.Vec3, r float32) float32 {
	return p.Len() - r
}

// Box returns the signed distance from p to an axis-aligned box with the
// given half-extents, centered at the local-frame origin.
func Box(p mgl32.Vec3, halfExtents mgl32.Vec3) float32 {
	qx := abs(p.X()) - halfExtents.X()
	qy := abs(p.Y()) - halfExtents.Y()
	qz := abs(p.Z()) - halfExtents.Z()
	outside := mgl32.Vec3{max0(qx), max0(qy), max0(qz)}
	inside := min(max(qx, max(qy, qz)), 0)
	return outside.Len() + inside
}

// Cylinder returns the signed distance from p to a Y-axis cylinder with
// the given radius and half-height.
func Cylinder(p mgl32.Vec3, radius, halfHeight float32) float32 {
	dRadial := mgl32.Vec2{p.X(), p.Z()}.Len() - radius
	dHeight := abs(p.Y()) - halfHeight
	outside := mgl32.Vec2{max0(dRadial), max0(dHeight)}
	inside := min(max(dRadial, dHeight), 0)
	return outside.Len() + inside
}

// Prism returns the signed distance from p to a triangular prism
// extruded along Z: an isosceles triangle in the XY plane (base
// half-width size.X, height size.Y) extruded to half-length size.Z.
func Prism(p mgl32.Vec3, size mgl32.Vec3) float32 {
	// Triangle cross-section (XY): apex at y = 2*size.Y/3, base at
	// y = -size.Y/3 (centroid at the origin). Measured from the apex, q
	// runs to the base's right corner.
	qx, qy := size.X(), -size.Y()
	px, py := abs(p.X()), p.Y()-2*size.Y()/3
	t := clamp((px*qx+py*qy)/(qx*qx+qy*qy), 0, 1)
	ax, ay := px-qx*t, py-qy*t
	bx, by := px-qx*clamp(px/qx, 0, 1), py-qy
	side := min(px*qy-py*qx, py-qy) // > 0 strictly inside the triangle
	dTri := -float32(math.Sqrt(float64(min(ax*ax+ay*ay, bx*bx+by*by)))) * sign(side)

	dZ := abs(p.Z()) - size.Z()
	outside := mgl32.Vec2{max0(dTri), max0(dZ)}
	inside := min(max(dTri, dZ), 0)
	return outside.Len() + inside
}

// Hollow turns a solid SDF into a shell of the given thickness:
// hollow(d) = |d| - thickness.
func Hollow(d, thickness float32) float32 {
	return abs(d) - thickness
}

// ArcSweep forces d strictly positive (outside) when p's XZ-plane angle
// exceeds angle radians, used to carve an arc-limited wedge out of a
// revolved shape.
func ArcSweep(p mgl32.Vec3, d, angle float32) float32 {
	a := absAngle(p.X(), p.Z())
	if a > angle {
		return max0(d) + 1e-4
	}
	return d
}

// FromConfig evaluates the full SDF for cfg at local-frame point p:
// primitive distance, then hollow (with optional open-cap removal for
// cylinder/cube), then arc sweep.
func FromConfig(p mgl32.Vec3, cfg Config) float32 {
	var d float32
	switch cfg.Shape {
	case ShapeSphere:
		d = Sphere(p, cfg.Size.X())
	case ShapeCylinder:
		d = Cylinder(p, cfg.Size.X(), cfg.Size.Y())
	case ShapePrism:
		d = Prism(p, cfg.Size)
	default:
		d = Box(p, cfg.Size)
	}

	if cfg.HasThickness {
		d = Hollow(d, cfg.Thickness)
		if !cfg.Closed {
			d = removeCaps(p, cfg, d)
		}
	}

	if cfg.HasArcSweep {
		d = ArcSweep(p, d, cfg.ArcSweep)
	}

	return d
}

// removeCaps subtracts the top/bottom caps from a hollowed cylinder or
// box so the shell is open at both ends (an "open top/bottom" cap
// removal, spec.md §4.3).
func removeCaps(p mgl32.Vec3, cfg Config, d float32) float32 {
	var capHalfHeight float32
	switch cfg.Shape {
	case ShapeCylinder:
		capHalfHeight = cfg.Size.Y()
	case ShapeCube:
		capHalfHeight = cfg.Size.Y()
	default:
		return d
	}
	// Intersect with the slab between the cap planes, pulled in by the
	// shell thickness, so no cap material is left at either end.
	return max(d, abs(p.Y())-(capHalfHeight-cfg.Thickness))
}

// ToWeight converts a signed distance into the clamped density used by
// the packed cell format.
func ToWeight(d float32) float32 {
	return clamp(-d, -0.5, 0.5)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func max0(v float32) float32 {
	if v > 0 {
		return v
	}
	return 0
}

func max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func minf(a, b float32) float32 { return min(a, b) }

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}

func absAngle(x, z float32) float32 {
	a := float32(math.Atan2(float64(z), float64(x)))
	if a < 0 {
		a = -a
	}
	return a
}
