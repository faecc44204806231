package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypeSphere ShapeType = iota
	ShapeTypeBox
	ShapeTypePlane
)

// ShapeInterface is the interface that all collision shapes must implement.
// Support is the only geometric query the narrow phase needs: the farthest
// point of the shape along a direction, in local space. The direction need
// not be normalized but must be nonzero.
type ShapeInterface interface {
	// ComputeAABB calculates the axis-aligned bounding box for the shape
	// at the given transform
	ComputeAABB(transform Transform)
	GetAABB() AABB
	Support(direction mgl64.Vec3) mgl64.Vec3
}

// Box represents an oriented box collision shape
// The box is defined by its half-extents (half-width, half-height, half-depth)
type Box struct {
	HalfExtents mgl64.Vec3
	aabb        AABB
}

func (b *Box) ComputeAABB(transform Transform) {
	// The 8 corners of the box in local space
	corners := [8]mgl64.Vec3{
		{-b.HalfExtents.X(), -b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{+b.HalfExtents.X(), -b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{-b.HalfExtents.X(), +b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{+b.HalfExtents.X(), +b.HalfExtents.Y(), -b.HalfExtents.Z()},
		{-b.HalfExtents.X(), -b.HalfExtents.Y(), +b.HalfExtents.Z()},
		{+b.HalfExtents.X(), -b.HalfExtents.Y(), +b.HalfExtents.Z()},
		{-b.HalfExtents.X(), +b.HalfExtents.Y(), +b.HalfExtents.Z()},
		{+b.HalfExtents.X(), +b.HalfExtents.Y(), +b.HalfExtents.Z()},
	}

	// Transform the first corner to seed min/max
	worldCorner := transform.Apply(corners[0])
	min := worldCorner
	max := worldCorner

	// Transform the remaining corners and extend the AABB
	for i := 1; i < 8; i++ {
		worldCorner = transform.Apply(corners[i])

		min[0] = math.Min(min[0], worldCorner[0])
		min[1] = math.Min(min[1], worldCorner[1])
		min[2] = math.Min(min[2], worldCorner[2])

		max[0] = math.Max(max[0], worldCorner[0])
		max[1] = math.Max(max[1], worldCorner[1])
		max[2] = math.Max(max[2], worldCorner[2])
	}

	b.aabb = AABB{Min: min, Max: max}
}

func (b *Box) GetAABB() AABB {
	return b.aabb
}

func (b *Box) Support(direction mgl64.Vec3) mgl64.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()

	if direction.X() < 0 {
		hx = -hx
	}
	if direction.Y() < 0 {
		hy = -hy
	}
	if direction.Z() < 0 {
		hz = -hz
	}

	return mgl64.Vec3{hx, hy, hz}
}

// Sphere represents a spherical collision shape
type Sphere struct {
	Radius float64
	aabb   AABB
}

// ComputeAABB calculates the axis-aligned bounding box for the sphere
func (s *Sphere) ComputeAABB(transform Transform) {
	// Sphere AABB is not affected by rotation, only by position
	radiusVec := mgl64.Vec3{s.Radius, s.Radius, s.Radius}

	s.aabb = AABB{
		Min: transform.Position.Sub(radiusVec),
		Max: transform.Position.Add(radiusVec),
	}
}

func (s *Sphere) GetAABB() AABB {
	return s.aabb
}

func (s *Sphere) Support(direction mgl64.Vec3) mgl64.Vec3 {
	return direction.Normalize().Mul(s.Radius)
}

// Plane represents a ground plane collision shape, facing +Y in local space.
// It is sampled as a large thin slab so support queries stay bounded.
type Plane struct {
	HalfExtent float64 // half-width of the sampled slab along x and z
	aabb       AABB
}

const planeThickness = 0.5

func (p *Plane) ComputeAABB(transform Transform) {
	min := mgl64.Vec3{-p.HalfExtent, -planeThickness, -p.HalfExtent}
	max := mgl64.Vec3{p.HalfExtent, 0, p.HalfExtent}

	p.aabb = AABB{
		Min: transform.Position.Add(min),
		Max: transform.Position.Add(max),
	}
}

func (p *Plane) GetAABB() AABB {
	return p.aabb
}

func (p *Plane) Support(direction mgl64.Vec3) mgl64.Vec3 {
	hw := p.HalfExtent

	return mgl64.Vec3{
		func() float64 {
			if direction.X() < 0 {
				return -hw
			}
			return hw
		}(),
		func() float64 {
			if direction.Y() > 0 {
				return 0.0
			}
			return -planeThickness
		}(),
		func() float64 {
			if direction.Z() < 0 {
				return -hw
			}
			return hw
		}(),
	}
}
