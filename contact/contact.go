// Package contact defines the single-point contact record produced by the
// narrow phase and consumed by a constraint solver.
package contact

import (
	"github.com/akmonengine/talon/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Details describes one contact between two overlapping (or margin-touching)
// convex bodies.
type Details struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody

	// Normal is the unit separation direction, pointing from BodyA toward BodyB
	Normal mgl64.Vec3
	// Point is the shared contact point in world space
	Point mgl64.Vec3
	// PointInA and PointInB are the contact point in each body's local frame
	PointInA mgl64.Vec3
	PointInB mgl64.Vec3
	// Depth is how far the bodies (including the contact skin) interpenetrate
	Depth float64

	// Restitution and Friction are the means of the two bodies' materials
	Restitution float64
	Friction    float64
}
