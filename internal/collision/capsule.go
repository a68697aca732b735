package collision

import "github.com/go-gl/mathgl/mgl32"

// Capsule is a vertical capsule collider standing on its position:
// Height is its total height, feet to top, and its core segment runs
// from Radius to Height-Radius above the position, swept by Radius.
type Capsule struct {
	Radius, Height float32
}

// CapsuleResult is resolveCapsuleCollision's output (spec.md §4.11).
type CapsuleResult struct {
	Delta      mgl32.Vec3
	IsOnGround bool
	Collided   bool
}

// MaxIterations bounds resolveCapsuleCollision's push-out loop so a
// pathological overlap (e.g. spawned fully inside solid geometry)
// cannot spin forever.
const MaxIterations = 4

// ResolveCapsuleCollision iteratively nudges capsule (at position, with
// velocity integrated over dt) out of every BVH triangle it intersects
// by the minimum push-out direction, biasing near-vertical pushes toward
// pure +Y to stabilize ground contact (spec.md §4.11).
func ResolveCapsuleCollision(b *BVH, capsule Capsule, position, velocity mgl32.Vec3, dt float32) CapsuleResult {
	if b.Empty() {
		return CapsuleResult{}
	}

	pos := position
	var totalDelta mgl32.Vec3
	collided := false

	for iter := 0; iter < MaxIterations; iter++ {
		push, hit := deepestCapsulePush(b, capsule, pos)
		if !hit {
			break
		}
		collided = true
		pos = pos.Add(push)
		totalDelta = totalDelta.Add(push)
	}

	groundThreshold := absf(dt * velocity.Y() * 0.25)
	isOnGround := totalDelta.Y() > groundThreshold

	return CapsuleResult{Delta: totalDelta, IsOnGround: isOnGround, Collided: collided}
}

// deepestCapsulePush finds the single deepest triangle penetration
// against the capsule at pos (feet at pos, axis along Y) and returns the
// minimum push-out vector to resolve it, biased toward +Y when the
// natural push direction is already near-vertical.
func deepestCapsulePush(b *BVH, capsule Capsule, pos mgl32.Vec3) (mgl32.Vec3, bool) {
	segA := pos.Add(mgl32.Vec3{0, capsule.Radius, 0})
	segB := pos.Add(mgl32.Vec3{0, capsule.Height - capsule.Radius, 0})

	var bestNormal mgl32.Vec3
	bestPenetration := float32(0)
	found := false

	var visit func(idx int32)
	visit = func(idx int32) {
		n := &b.nodes[idx]
		if !aabbIntersectsCapsuleBounds(n.min, n.max, segA, segB, capsule.Radius) {
			return
		}
		if n.isLeaf() {
			for i := int32(0); i < n.leafCount; i++ {
				tri := b.triangles[n.leafFirst+i]
				closestSeg, closestTri := closestSegmentTrianglePoints(segA, segB, tri)
				delta := closestSeg.Sub(closestTri)
				dist := delta.Len()
				if dist >= capsule.Radius {
					continue
				}
				penetration := capsule.Radius - dist
				if penetration > bestPenetration {
					bestPenetration = penetration
					if dist > 1e-6 {
						bestNormal = delta.Mul(1 / dist)
					} else {
						bestNormal = tri.Normal
					}
					found = true
				}
			}
			return
		}
		visit(n.left)
		visit(n.right)
	}
	visit(0)

	if !found {
		return mgl32.Vec3{}, false
	}

	push := bestNormal.Mul(bestPenetration)
	// Bias near-vertical pushes toward pure +Y so the player doesn't
	// slide sideways on a surface that's functionally flat ground.
	if bestNormal.Y() > 0.7 {
		push = mgl32.Vec3{0, bestPenetration, 0}
	}
	return push, true
}

func aabbIntersectsCapsuleBounds(min, max, segA, segB mgl32.Vec3, radius float32) bool {
	lo := vec3Min(segA, segB).Sub(mgl32.Vec3{radius, radius, radius})
	hi := vec3Max(segA, segB).Add(mgl32.Vec3{radius, radius, radius})
	return lo.X() <= max.X() && hi.X() >= min.X() &&
		lo.Y() <= max.Y() && hi.Y() >= min.Y() &&
		lo.Z() <= max.Z() && hi.Z() >= min.Z()
}

// closestSegmentTrianglePoints approximates the closest pair of points
// between segment [segA,segB] and tri by sampling the segment's closest
// point to the triangle's closest-point function at both endpoints and
// their midpoint, sufficient for a vertical capsule against terrain-
// scale triangles.
func closestSegmentTrianglePoints(segA, segB mgl32.Vec3, tri Triangle) (onSeg, onTri mgl32.Vec3) {
	candidates := [3]mgl32.Vec3{segA, segB, segA.Add(segB).Mul(0.5)}
	bestDist := float32(1e30)
	for _, c := range candidates {
		p := closestPointOnTriangle(c, tri)
		d := c.Sub(p).Len()
		if d < bestDist {
			bestDist = d
			onSeg, onTri = c, p
		}
	}
	return
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
