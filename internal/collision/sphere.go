package collision

import "github.com/go-gl/mathgl/mgl32"

// SphereContact is the single deepest contact accumulated by
// SphereCollide (spec.md §4.11: "accumulate a single deepest contact
// (maximum penetration)").
type SphereContact struct {
	Point       mgl32.Vec3
	Normal      mgl32.Vec3
	Penetration float32
}

// SphereCollide traverses BVH nodes whose AABB intersects the sphere at
// center with radius, returning the deepest single contact found, or
// false if none (spec.md §4.11).
func SphereCollide(b *BVH, center mgl32.Vec3, radius float32) (SphereContact, bool) {
	if b.Empty() {
		return SphereContact{}, false
	}

	var best SphereContact
	found := false

	var visit func(idx int32)
	visit = func(idx int32) {
		n := &b.nodes[idx]
		if !aabbIntersectsSphere(n.min, n.max, center, radius) {
			return
		}
		if n.isLeaf() {
			for i := int32(0); i < n.leafCount; i++ {
				tri := b.triangles[n.leafFirst+i]
				point := closestPointOnTriangle(center, tri)
				delta := center.Sub(point)
				dist := delta.Len()
				if dist >= radius {
					continue
				}
				penetration := radius - dist
				if !found || penetration > best.Penetration {
					normal := tri.Normal
					if dist > 1e-6 {
						normal = delta.Mul(1 / dist)
					}
					best = SphereContact{Point: point, Normal: normal, Penetration: penetration}
					found = true
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

// closestPointOnTriangle finds the point on triangle tri nearest to p,
// using barycentric region tests (Ericson, Real-Time Collision
// Detection §5.1.5).
func closestPointOnTriangle(p mgl32.Vec3, tri Triangle) mgl32.Vec3 {
	a, b, c := tri.A, tri.B, tri.C
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return a.Add(ab.Mul(d1 / (d1 - d3)))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return a.Add(ac.Mul(d2 / (d2 - d6)))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		return b.Add(c.Sub(b).Mul((d4 - d3) / ((d4 - d3) + (d5 - d6))))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}
