package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTransformRoundTrip(t *testing.T) {
	rotation := mgl64.QuatRotate(0.7, mgl64.Vec3{0, 1, 0}.Normalize())
	transform := NewTransformAt(mgl64.Vec3{1, 2, 3}, rotation)

	point := mgl64.Vec3{0.4, -0.2, 0.9}
	back := transform.ApplyInverse(transform.Apply(point))

	if back.Sub(point).Len() > 1e-12 {
		t.Errorf("round trip drifted: %v vs %v", back, point)
	}
}

func TestSupportWorld(t *testing.T) {
	t.Run("translated sphere supports from its center", func(t *testing.T) {
		body := NewRigidBody(
			NewTransformAt(mgl64.Vec3{3, 0, 0}, mgl64.QuatIdent()),
			&Sphere{Radius: 1},
			Material{},
		)

		support := body.SupportWorld(mgl64.Vec3{1, 0, 0})
		if support.Sub(mgl64.Vec3{4, 0, 0}).Len() > 1e-12 {
			t.Errorf("expected (4,0,0), got %v", support)
		}
	})

	t.Run("rotation maps the query into local space", func(t *testing.T) {
		// Long box rotated 90° about z: its local x extent shows up along world y
		body := NewRigidBody(
			NewTransformAt(mgl64.Vec3{}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})),
			&Box{HalfExtents: mgl64.Vec3{2, 0.5, 0.5}},
			Material{},
		)

		support := body.SupportWorld(mgl64.Vec3{0, 1, 0})
		if math.Abs(support.Y()-2) > 1e-9 {
			t.Errorf("expected world y extent 2, got %v", support)
		}

		support = body.SupportWorld(mgl64.Vec3{1, 0, 0})
		if math.Abs(support.X()-0.5) > 1e-9 {
			t.Errorf("expected world x extent 0.5, got %v", support)
		}
	})
}

func TestSetTransform(t *testing.T) {
	body := NewRigidBody(NewTransform(), &Sphere{Radius: 1}, Material{})

	body.SetTransform(NewTransformAt(mgl64.Vec3{10, 0, 0}, mgl64.QuatIdent()))

	if !body.Shape.GetAABB().ContainsPoint(mgl64.Vec3{10, 0, 0}) {
		t.Error("AABB did not follow the body")
	}
}
