// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for
// collision detection.
//
// GJK detects whether two convex shapes overlap by testing if their Minkowski
// difference contains the origin. The algorithm builds a simplex incrementally,
// converging toward the origin in typically 3-6 iterations. On the way it can
// also catch a shallow contact: whenever the descent proves separation with a
// triangle in hand, the triangle is tested against the contact margin.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance
//     Between Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"log/slog"
	"math"

	"github.com/akmonengine/talon/actor"
	"github.com/akmonengine/talon/contact"
	"github.com/akmonengine/talon/geom"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Margin is the default contact skin: pairs separated by less than this
	// report a shallow contact instead of a miss, which keeps resting contacts
	// stable for the solver downstream.
	Margin = 0.03

	// MaxIterations is the default hard budget on the descent. Degenerate
	// inputs stop here and report a conservative miss.
	MaxIterations = 20
)

// Status is the outcome of one descent iteration.
type Status int

const (
	// StatusContinue means the simplex moved closer to the origin, iterate again
	StatusContinue Status = iota
	// StatusNoContact means the origin is provably outside the CSO
	StatusNoContact
	// StatusContact means the margin test caught a shallow contact,
	// available via Result
	StatusContact
	// StatusEPANeeded means the simplex closed a tetrahedron around the
	// origin, hand it to EPA for depth and normal
	StatusEPANeeded
)

// Simplex is an ordered set of 1-4 support points descending toward the
// origin of the CSO. A new sample is appended last; the front-side triangle
// and tetrahedron reductions reorder the kept points for winding.
type Simplex struct {
	bodyA *actor.RigidBody
	bodyB *actor.RigidBody

	points        []*SupportPoint
	nextDirection mgl64.Vec3
	iterations    int

	margin        float64
	maxIterations int

	result *contact.Details
}

// NewSimplex prepares a descent between two bodies. The first search
// direction aims from a toward b; coincident centers fall back to an
// arbitrary axis so the descent cannot stall.
func NewSimplex(a, b *actor.RigidBody, margin float64, maxIterations int) *Simplex {
	direction := b.Transform.Position.Sub(a.Transform.Position)
	if direction.LenSqr() < mgl64.Epsilon {
		direction = mgl64.Vec3{0, 0, 1}
	}

	return &Simplex{
		bodyA:         a,
		bodyB:         b,
		points:        make([]*SupportPoint, 0, 4),
		nextDirection: direction,
		margin:        margin,
		maxIterations: maxIterations,
	}
}

// Result returns the shallow contact stashed by a margin hit, if any
func (s *Simplex) Result() *contact.Details {
	return s.result
}

// Points exposes the current support points in simplex order
func (s *Simplex) Points() []*SupportPoint {
	return s.points
}

// TakePoints hands ownership of the support points to the caller; the
// simplex no longer releases them.
func (s *Simplex) TakePoints() []*SupportPoint {
	points := s.points
	s.points = nil

	return points
}

// Release returns every owned support point to the pool
func (s *Simplex) Release() {
	for _, point := range s.points {
		ReleaseSupportPoint(point)
	}
	s.points = s.points[:0]
}

// AddPoint performs one GJK iteration: sample the CSO along the current
// search direction, bail out if the sample proves separation (checking the
// margin first when a triangle is available), otherwise refine the simplex
// toward the origin.
func (s *Simplex) AddPoint() Status {
	s.iterations++
	if s.iterations >= s.maxIterations {
		slog.Debug("gjk iteration budget exhausted", "iterations", s.iterations)
		return StatusNoContact
	}

	point := AcquireSupportPoint()
	FindSupportPoint(s.bodyA, s.bodyB, s.nextDirection, point)
	s.points = append(s.points, point)

	if point.Point.Dot(s.nextDirection) < 0 && len(s.points) > 1 {
		// The new sample never crossed the origin: the CSO cannot contain it.
		// With a triangle in hand, the origin may still sit within the
		// contact skin of the CSO surface.
		if len(s.points) >= 3 {
			q := geom.ClosestPointOnTriangle(mgl64.Vec3{},
				s.points[0].Point, s.points[1].Point, s.points[2].Point)
			if q.LenSqr() <= s.margin*s.margin {
				if details := BuildContact(s.bodyA, s.bodyB,
					s.points[0], s.points[1], s.points[2], q, true, s.margin); details != nil {
					s.result = details
					return StatusContact
				}
			}
		}
		return StatusNoContact
	}

	if s.updateDirection() {
		return StatusEPANeeded
	}

	return StatusContinue
}

// updateDirection refines the simplex to the feature nearest the origin and
// picks the next search direction. Returns true only when a tetrahedron
// encloses the origin.
func (s *Simplex) updateDirection() bool {
	switch len(s.points) {
	case 1:
		s.nextDirection = s.points[0].Point.Mul(-1)
	case 2:
		s.updateLine()
	case 3:
		s.updateTriangle()
	case 4:
		return s.updateTetrahedron()
	}

	return false
}

// updateLine handles the 2-point simplex (b, a; a most recent)
func (s *Simplex) updateLine() {
	a := s.points[1]
	b := s.points[0]

	ab := b.Point.Sub(a.Point)
	ao := a.Point.Mul(-1)

	if ab.Dot(ao) < 0 {
		// Origin is behind a; b cannot contribute anymore
		s.points[0] = a
		s.points = s.points[:1]
		ReleaseSupportPoint(b)
		s.nextDirection = ao
		return
	}

	direction := ab.Cross(ao).Cross(ab)
	if direction.LenSqr() == 0 {
		// ab runs straight through the origin; derive a direction
		// perpendicular-ish to the segment instead
		n := ab.Normalize()
		direction = mgl64.Vec3{1 - math.Abs(n.X()), 1 - math.Abs(n.Y()), 1 - math.Abs(n.Z())}
	}
	s.nextDirection = direction
}

// updateTriangle handles the 3-point simplex (c, b, a; a most recent)
func (s *Simplex) updateTriangle() {
	a := s.points[2]
	b := s.points[1]
	c := s.points[0]

	ab := b.Point.Sub(a.Point)
	ac := c.Point.Sub(a.Point)
	ao := a.Point.Mul(-1)

	n := ab.Cross(ac)
	eab := ab.Cross(n)
	eac := n.Cross(ac)

	switch {
	case eac.Dot(ao) >= 0:
		if ac.Dot(ao) >= 0 {
			// Edge ac is closest
			s.points[0], s.points[1] = c, a
			s.points = s.points[:2]
			ReleaseSupportPoint(b)
			s.nextDirection = ac.Cross(ao).Cross(ac)
		} else if ab.Dot(ao) >= 0 {
			// Edge ab is closest
			s.points[0], s.points[1] = b, a
			s.points = s.points[:2]
			ReleaseSupportPoint(c)
			s.nextDirection = ab.Cross(ao).Cross(ab)
		} else {
			// Vertex a is closest
			s.points[0] = a
			s.points = s.points[:1]
			ReleaseSupportPoint(b)
			ReleaseSupportPoint(c)
			s.nextDirection = ao
		}
	case eab.Dot(ao) >= 0:
		if ab.Dot(ao) >= 0 {
			s.points[0], s.points[1] = b, a
			s.points = s.points[:2]
			ReleaseSupportPoint(c)
			s.nextDirection = ab.Cross(ao).Cross(ab)
		} else {
			s.points[0] = a
			s.points = s.points[:1]
			ReleaseSupportPoint(b)
			ReleaseSupportPoint(c)
			s.nextDirection = ao
		}
	default:
		// Origin is above or below the triangle's plane
		if n.Dot(ao) >= 0 {
			// Front side: reorder so the next sample closes the tetrahedron
			// with a consistent winding
			s.points[0], s.points[1], s.points[2] = a, b, c
			s.nextDirection = n
		} else {
			// Back side: keep the order, the next support lands on the far
			// side as the 4th point
			s.nextDirection = n.Mul(-1)
		}
	}
}

// tetrahedronFaces are the four candidate faces of the closed simplex, as
// index triples into points. The same triples, in the same vertex order,
// seed the EPA polytope.
var tetrahedronFaces = [4][3]int{
	{2, 1, 0}, // bcd
	{3, 1, 2}, // acb
	{1, 3, 0}, // cad
	{0, 3, 2}, // dab
}

// updateTetrahedron handles the 4-point simplex (d, c, b, a; a most recent).
// Returns true when no face separates the origin from the interior.
func (s *Simplex) updateTetrahedron() bool {
	best := -1
	bestDot := mgl64.Epsilon
	var bestNormal mgl64.Vec3

	for i, face := range tetrahedronFaces {
		p0 := s.points[face[0]].Point
		p1 := s.points[face[1]].Point
		p2 := s.points[face[2]].Point

		normal := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		toOrigin := p0.Add(p1).Add(p2).Mul(-1).Normalize()

		// First face evaluated wins ties: the comparison is strict
		if dot := normal.Dot(toOrigin); dot > bestDot {
			best = i
			bestDot = dot
			bestNormal = normal
		}
	}

	if best == -1 {
		// Every face keeps the origin on its inner side: enclosed
		return true
	}

	// Reduce to the face the origin is most outside of and search past it
	face := tetrahedronFaces[best]
	kept0, kept1, kept2 := s.points[face[0]], s.points[face[1]], s.points[face[2]]
	dropped := s.points[6-face[0]-face[1]-face[2]]
	ReleaseSupportPoint(dropped)

	s.points[0], s.points[1], s.points[2] = kept0, kept1, kept2
	s.points = s.points[:3]
	s.nextDirection = bestNormal

	return false
}
