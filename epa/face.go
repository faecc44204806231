package epa

import (
	"github.com/akmonengine/talon/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Face is one triangle of the expanding polytope. Faces live in the
// polyhedron's arena and are never removed, only deactivated, so neighbor
// links stay valid across expansions.
//
// Neighbors holds arena indices with the convention:
//
//	Neighbors[0] shares edge ab, Neighbors[1] edge bc, Neighbors[2] edge ca
//
// Every active face's neighbors are active and list this face in exactly
// one slot.
type Face struct {
	Points    [3]*gjk.SupportPoint
	Normal    mgl64.Vec3 // outward unit normal, (b-a)×(c-a) at construction
	Neighbors [3]int
	Active    bool
}

func makeFace(a, b, c *gjk.SupportPoint) Face {
	normal := b.Point.Sub(a.Point).Cross(c.Point.Sub(a.Point)).Normalize()

	return Face{
		Points: [3]*gjk.SupportPoint{a, b, c},
		Normal: normal,
		Active: true,
	}
}

// classifyVertex measures which side of the face's plane v lies on;
// positive means outside (the face is visible from v)
func (f *Face) classifyVertex(v mgl64.Vec3) float64 {
	return f.Normal.Dot(v.Sub(f.Points[0].Point))
}

// neighborSlot returns the slot holding the given arena index, or -1
func (f *Face) neighborSlot(id int) int {
	for slot, neighbor := range f.Neighbors {
		if neighbor == id {
			return slot
		}
	}
	return -1
}

// edgeVertices returns the two vertices bounding a neighbor slot, in this
// face's winding order
func (f *Face) edgeVertices(slot int) (a, b *gjk.SupportPoint) {
	switch slot {
	case 0:
		return f.Points[0], f.Points[1]
	case 1:
		return f.Points[1], f.Points[2]
	default:
		return f.Points[2], f.Points[0]
	}
}

// flip reverses the winding so the normal points the other way, permuting
// the neighbor slots to keep the edge convention intact
func (f *Face) flip() {
	f.Points[1], f.Points[2] = f.Points[2], f.Points[1]
	f.Neighbors[0], f.Neighbors[2] = f.Neighbors[2], f.Neighbors[0]
	f.Normal = f.Normal.Mul(-1)
}
