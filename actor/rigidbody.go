package actor

import "github.com/go-gl/mathgl/mgl64"

// Material holds the surface properties blended into a contact.
// Restitution: 0 = no rebound, 1 = perfect restitution.
type Material struct {
	Restitution float64
	Friction    float64
}

// RigidBody represents a convex rigid body queried by the narrow phase.
// Dynamics (mass, velocities, integration) live with the solver, not here;
// the detector only needs the spatial pose, the material and the shape.
type RigidBody struct {
	Transform Transform
	Material  Material
	Shape     ShapeInterface
}

// NewRigidBody creates a rigid body and computes its initial AABB
func NewRigidBody(transform Transform, shape ShapeInterface, material Material) *RigidBody {
	rb := &RigidBody{
		Transform: transform,
		Material:  material,
		Shape:     shape,
	}
	rb.Shape.ComputeAABB(rb.Transform)

	return rb
}

// SetTransform moves the body and refreshes its AABB
func (rb *RigidBody) SetTransform(transform Transform) {
	rb.Transform = transform
	rb.Shape.ComputeAABB(rb.Transform)
}

// SupportWorld returns the farthest point of the body along direction, in world space.
//
// Shapes answer support queries in local space, so the direction is rotated
// into the body's frame first and the resulting point rotated back out.
func (rb *RigidBody) SupportWorld(direction mgl64.Vec3) mgl64.Vec3 {
	localDirection := rb.Transform.InverseRotation.Rotate(direction)
	localSupport := rb.Shape.Support(localDirection)
	worldSupport := rb.Transform.Rotation.Rotate(localSupport)

	return rb.Transform.Position.Add(worldSupport)
}
