// Package epa implements the Expanding Polytope Algorithm for computing
// penetration depth.
//
// EPA runs after GJK detects an overlap. Starting from GJK's final
// tetrahedron it grows a convex polytope toward the CSO surface; the face
// that ends up closest to the origin yields the contact normal, the
// penetration depth and, through the support-point witnesses, the contact
// point on both bodies.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation
//     on 3D Game Objects" (2001)
package epa

import (
	"log/slog"

	"github.com/akmonengine/talon/actor"
	"github.com/akmonengine/talon/contact"
	"github.com/akmonengine/talon/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Condition is the default convergence threshold: the squared gap between
	// a new support sample and the current closest point below which the
	// polytope has reached the CSO surface.
	Condition = 0.001

	// MaxIterations is the default expansion budget. Flat CSO faces land
	// supports on corners and never close the gap, so hitting the budget is
	// a normal exit that still reports the best face found.
	MaxIterations = 20
)

// Run expands the polytope seeded by a GJK tetrahedron until the face
// nearest the origin approximates the CSO surface, then assembles the
// contact. Takes ownership of the simplex's support points; all of them are
// returned to the pool before Run returns. A nil result means the closest
// triangle was too degenerate to produce a contact.
func Run(a, b *actor.RigidBody, simplex *gjk.Simplex,
	margin, condition float64, maxIterations int) *contact.Details {

	polyhedron := NewPolyhedron(a, b, simplex)
	defer polyhedron.Release()

	for i := 1; ; i++ {
		polyhedron.findClosestFace()
		if polyhedron.closestFace < 0 {
			return nil
		}
		face := &polyhedron.faces[polyhedron.closestFace]

		// Search past the closest point; when the face passes through the
		// origin the point is no direction at all, but the normal still
		// points out of the polytope
		direction := polyhedron.closestPoint
		if polyhedron.closestFaceDistance < mgl64.Epsilon {
			direction = face.Normal
		}

		support := gjk.AcquireSupportPoint()
		gjk.FindSupportPoint(a, b, direction, support)

		gap := support.Point.Sub(polyhedron.closestPoint).LenSqr()
		converged := gap < condition && polyhedron.closestFaceDistance > mgl64.Epsilon

		if i >= maxIterations || converged {
			gjk.ReleaseSupportPoint(support)
			if !converged {
				slog.Debug("epa iteration budget exhausted", "iterations", i)
			}
			return gjk.BuildContact(a, b,
				face.Points[0], face.Points[1], face.Points[2],
				polyhedron.closestPoint, false, margin)
		}

		polyhedron.addVertex(support)
	}
}
