package collision

import "github.com/go-gl/mathgl/mgl32"

// RayHit is the nearest hit of a BVH raycast (spec.md §4.11).
type RayHit struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Raycast descends the BVH looking for the nearest Möller–Trumbore hit
// within [0, maxDist] along dir from origin. Returns (hit, true) or the
// zero value and false if nothing was hit — including when b is empty
// (spec.md §4.11's "no hit" failure semantics).
func Raycast(b *BVH, origin, dir mgl32.Vec3, maxDist float32) (RayHit, bool) {
	if b.Empty() {
		return RayHit{}, false
	}
	invDir := mgl32.Vec3{safeInv(dir.X()), safeInv(dir.Y()), safeInv(dir.Z())}

	best := RayHit{Distance: maxDist}
	found := false

	var visit func(idx int32)
	visit = func(idx int32) {
		n := &b.nodes[idx]
		if !aabbIntersectsRay(n.min, n.max, origin, invDir, best.Distance) {
			return
		}
		if n.isLeaf() {
			for i := int32(0); i < n.leafCount; i++ {
				tri := b.triangles[n.leafFirst+i]
				if dist, ok := intersectTriangle(origin, dir, tri, best.Distance); ok {
					found = true
					best = RayHit{
						Position: origin.Add(dir.Mul(dist)),
						Normal:   tri.Normal,
						Distance: dist,
					}
				}
			}
			return
		}
		visit(n.left)
		visit(n.right)
	}
	visit(0)

	return best, found
}

func safeInv(v float32) float32 {
	if v == 0 {
		return 1e30
	}
	return 1 / v
}

// intersectTriangle is the standard Möller–Trumbore ray/triangle
// intersection, culling hits beyond maxDist or behind the ray origin.
func intersectTriangle(origin, dir mgl32.Vec3, tri Triangle, maxDist float32) (float32, bool) {
	const epsilon = 1e-7

	edge1 := tri.B.Sub(tri.A)
	edge2 := tri.C.Sub(tri.A)
	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, false
	}

	f := 1 / a
	s := origin.Sub(tri.A)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	if t < epsilon || t > maxDist {
		return 0, false
	}
	return t, true
}
