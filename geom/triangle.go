// Package geom provides the triangle queries the narrow phase is built on:
// closest point on a triangle and barycentric coordinates.
package geom

import "github.com/go-gl/mathgl/mgl64"

// ClosestPointOnTriangle returns the point of triangle (a, b, c) nearest to p,
// on the interior or the boundary. Uses the Voronoi-region walk, so vertex and
// edge cases never divide by a degenerate triangle area.
func ClosestPointOnTriangle(p, a, b, c mgl64.Vec3) mgl64.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	// Vertex region A
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	// Vertex region B
	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	// Edge region AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v))
	}

	// Vertex region C
	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	// Edge region AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w))
	}

	// Edge region BC
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	// Interior
	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom

	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// Barycentric returns the weights (u, v, w) of p with respect to triangle
// (a, b, c), with u + v + w = 1 and p = u*a + v*b + w*c for points in the
// triangle's plane. A degenerate triangle yields NaN or infinite weights;
// callers must check before using them.
func Barycentric(p, a, b, c mgl64.Vec3) (u, v, w float64) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1.0 - v - w

	return u, v, w
}
