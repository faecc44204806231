package epa

import (
	"math"

	"github.com/akmonengine/talon/actor"
	"github.com/akmonengine/talon/geom"
	"github.com/akmonengine/talon/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Polyhedron is the face-adjacency mesh EPA grows from GJK's final
// tetrahedron toward the CSO surface. Deactivated faces keep their storage
// and are skipped by the closest-face scan.
type Polyhedron struct {
	bodyA *actor.RigidBody
	bodyB *actor.RigidBody

	faces []Face
	// vertices registers every support point the polyhedron has taken over,
	// independently of how many faces share it
	vertices []*gjk.SupportPoint

	closestFace         int
	closestFaceDistance float64 // squared distance from the origin
	closestPoint        mgl64.Vec3
}

// NewPolyhedron seals a tetrahedral simplex (d, c, b, a; a most recent) into
// the initial four-face polytope, taking ownership of its support points.
func NewPolyhedron(a, b *actor.RigidBody, simplex *gjk.Simplex) *Polyhedron {
	points := simplex.TakePoints()

	p := &Polyhedron{
		bodyA:    a,
		bodyB:    b,
		vertices: points,
	}

	p.faces = []Face{
		makeFace(points[2], points[1], points[0]),
		makeFace(points[3], points[1], points[2]),
		makeFace(points[1], points[3], points[0]),
		makeFace(points[0], points[3], points[2]),
	}

	// Complete adjacency of the tetrahedron, slot-aligned with the edge
	// convention of Face
	p.faces[0].Neighbors = [3]int{1, 2, 3}
	p.faces[1].Neighbors = [3]int{2, 0, 3}
	p.faces[2].Neighbors = [3]int{1, 3, 0}
	p.faces[3].Neighbors = [3]int{2, 1, 0}

	// GJK's tetrahedron branch winds these faces outward; an origin enclosed
	// by the simplex makes that checkable, so verify rather than trust it
	for i := range p.faces {
		face := &p.faces[i]
		if face.Normal.Dot(face.Points[0].Point) < 0 {
			face.flip()
		}
	}

	return p
}

// findClosestFace scans the active faces for the one whose closest point to
// the origin (interior or boundary) is nearest, recording face, squared
// distance and point.
func (p *Polyhedron) findClosestFace() {
	p.closestFace = -1
	p.closestFaceDistance = math.MaxFloat64

	for i := range p.faces {
		face := &p.faces[i]
		if !face.Active {
			continue
		}

		point := geom.ClosestPointOnTriangle(mgl64.Vec3{},
			face.Points[0].Point, face.Points[1].Point, face.Points[2].Point)

		if distance := point.LenSqr(); distance < p.closestFaceDistance {
			p.closestFace = i
			p.closestFaceDistance = distance
			p.closestPoint = point
		}
	}
}

// silhouetteEdge is one edge of the hole left by the faces visible from a
// new vertex: the bordering face that stays, the slot in it that crossed
// into the hole, and the edge endpoints in the removed face's winding order
// (the reverse of the bordering face's).
type silhouetteEdge struct {
	face int
	slot int
	a, b *gjk.SupportPoint
}

// silhouette floods outward from a face, deactivating everything visible
// from point and collecting the boundary edges of the visible region.
func (p *Polyhedron) silhouette(id int, point mgl64.Vec3, source int, edges []silhouetteEdge) []silhouetteEdge {
	face := &p.faces[id]
	if !face.Active {
		return edges
	}

	if face.classifyVertex(point) > 0 {
		face.Active = false
		n0, n1, n2 := face.Neighbors[0], face.Neighbors[1], face.Neighbors[2]
		edges = p.silhouette(n0, point, id, edges)
		edges = p.silhouette(n1, point, id, edges)
		edges = p.silhouette(n2, point, id, edges)
		return edges
	}

	// Not visible: the crossing from source marks one silhouette edge. The
	// same face can border the hole along two edges and be visited twice,
	// once per crossing.
	if source >= 0 {
		if slot := face.neighborSlot(source); slot >= 0 {
			edgeA, edgeB := face.edgeVertices(slot)
			edges = append(edges, silhouetteEdge{face: id, slot: slot, a: edgeB, b: edgeA})
		}
	}

	return edges
}

// addVertex expands the polytope with a new CSO sample: remove the faces
// visible from it and stitch a fan of new faces around the silhouette ring.
func (p *Polyhedron) addVertex(v *gjk.SupportPoint) {
	p.vertices = append(p.vertices, v)

	edges := p.silhouette(p.closestFace, v.Point, -1, nil)
	if len(edges) == 0 {
		// v lies on the polytope surface; nothing to recut
		return
	}

	// Order the edges into a closed ring: each edge starts where the
	// previous one ended
	for i := 0; i < len(edges)-1; i++ {
		for j := i + 1; j < len(edges); j++ {
			if edges[j].a == edges[i].b {
				edges[i+1], edges[j] = edges[j], edges[i+1]
				break
			}
		}
	}

	base := len(p.faces)
	count := len(edges)
	for i, edge := range edges {
		id := base + i

		face := makeFace(edge.b, v, edge.a)
		// The edge opposite v faces outward into the old polyhedron; the two
		// v-edges fan around the ring
		face.Neighbors[0] = base + (i+1)%count
		face.Neighbors[1] = base + (i-1+count)%count
		face.Neighbors[2] = edge.face
		p.faces = append(p.faces, face)

		// Retarget the bordering face from the removed face to the new one
		p.faces[edge.face].Neighbors[edge.slot] = id
	}
}

// Release returns every support point to the pool exactly once. Vertices are
// shared across faces, so freeing walks a membership set instead of the faces.
func (p *Polyhedron) Release() {
	live := make(map[*gjk.SupportPoint]struct{}, len(p.vertices))
	for _, vertex := range p.vertices {
		live[vertex] = struct{}{}
	}
	for i := range p.faces {
		for _, point := range p.faces[i].Points {
			live[point] = struct{}{}
		}
	}

	for point := range live {
		gjk.ReleaseSupportPoint(point)
	}
	p.faces = nil
	p.vertices = nil
}
