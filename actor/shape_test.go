package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBoxSupport(t *testing.T) {
	box := &Box{HalfExtents: mgl64.Vec3{0.5, 1, 2}}

	t.Run("picks the corner matching the direction signs", func(t *testing.T) {
		support := box.Support(mgl64.Vec3{1, -1, 1})
		expected := mgl64.Vec3{0.5, -1, 2}
		if support != expected {
			t.Errorf("expected %v, got %v", expected, support)
		}
	})

	t.Run("zero components resolve to the positive extent", func(t *testing.T) {
		support := box.Support(mgl64.Vec3{1, 0, 0})
		expected := mgl64.Vec3{0.5, 1, 2}
		if support != expected {
			t.Errorf("expected %v, got %v", expected, support)
		}
	})
}

func TestSphereSupport(t *testing.T) {
	sphere := &Sphere{Radius: 2}

	t.Run("support lies on the surface along the direction", func(t *testing.T) {
		support := sphere.Support(mgl64.Vec3{3, 0, 0})
		expected := mgl64.Vec3{2, 0, 0}
		if support.Sub(expected).Len() > 1e-12 {
			t.Errorf("expected %v, got %v", expected, support)
		}
	})

	t.Run("direction need not be normalized", func(t *testing.T) {
		support := sphere.Support(mgl64.Vec3{0, 0.001, 0})
		if math.Abs(support.Len()-2) > 1e-12 {
			t.Errorf("expected support on the surface, got %v", support)
		}
	})
}

func TestPlaneSupport(t *testing.T) {
	plane := &Plane{HalfExtent: 1000}

	t.Run("support never rises above the surface", func(t *testing.T) {
		support := plane.Support(mgl64.Vec3{1, 1, -1})
		if support.Y() > 0 {
			t.Errorf("plane support above surface: %v", support)
		}
		if support.X() != 1000 || support.Z() != -1000 {
			t.Errorf("unexpected lateral support: %v", support)
		}
	})
}

func TestComputeAABB(t *testing.T) {
	t.Run("sphere AABB follows its position", func(t *testing.T) {
		sphere := &Sphere{Radius: 1}
		sphere.ComputeAABB(NewTransformAt(mgl64.Vec3{5, 0, 0}, mgl64.QuatIdent()))

		aabb := sphere.GetAABB()
		if aabb.Min != (mgl64.Vec3{4, -1, -1}) || aabb.Max != (mgl64.Vec3{6, 1, 1}) {
			t.Errorf("unexpected AABB %v", aabb)
		}
	})

	t.Run("rotated box AABB covers the rotated corners", func(t *testing.T) {
		box := &Box{HalfExtents: mgl64.Vec3{2, 0.5, 0.5}}
		rotation := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
		box.ComputeAABB(NewTransformAt(mgl64.Vec3{}, rotation))

		aabb := box.GetAABB()
		// Long axis now along y
		if math.Abs(aabb.Max.Y()-2) > 1e-9 || math.Abs(aabb.Max.X()-0.5) > 1e-9 {
			t.Errorf("unexpected AABB %v", aabb)
		}
	})
}

func TestAABBOverlaps(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 2, 2}}
	b := AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{3, 3, 3}}
	c := AABB{Min: mgl64.Vec3{5, 0, 0}, Max: mgl64.Vec3{6, 1, 1}}

	if !a.Overlaps(b) {
		t.Error("expected overlap")
	}
	if a.Overlaps(c) {
		t.Error("expected no overlap")
	}
	if !a.ContainsPoint(mgl64.Vec3{1, 1, 1}) {
		t.Error("expected point inside")
	}
	if a.ContainsPoint(mgl64.Vec3{-1, 1, 1}) {
		t.Error("expected point outside")
	}
}
