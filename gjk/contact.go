package gjk

import (
	"log/slog"
	"math"

	"github.com/akmonengine/talon/actor"
	"github.com/akmonengine/talon/contact"
	"github.com/akmonengine/talon/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// BuildContact assembles the contact record shared by the shallow (margin)
// and EPA paths. (pa, pb, pc) is the CSO triangle nearest the origin and q
// the point on it closest to the origin.
//
// The two paths differ in two places, both taken from how the origin relates
// to the CSO surface: the shallow path negates the normal (q points from the
// origin out to a surface the bodies have not crossed), and measures depth as
// the skin left between them, while the EPA path measures how far the surface
// was overshot.
//
// Returns nil when the triangle is too degenerate to locate the contact.
func BuildContact(bodyA, bodyB *actor.RigidBody, pa, pb, pc *SupportPoint,
	q mgl64.Vec3, shallow bool, margin float64) *contact.Details {

	distance := math.Sqrt(q.LenSqr())

	var normal mgl64.Vec3
	if distance == 0 {
		// The contact sits exactly on the origin; aim along the body centers,
		// or anywhere at all if those coincide too
		normal = bodyB.Transform.Position.Sub(bodyA.Transform.Position)
		if normal.LenSqr() == 0 {
			normal = mgl64.Vec3{0, 1, 0}
		}
		normal = normal.Normalize()
	} else {
		normal = q.Mul(1 / distance)
	}
	if shallow {
		normal = normal.Mul(-1)
	}

	u, v, w := geom.Barycentric(q, pa.Point, pb.Point, pc.Point)
	if math.IsNaN(u + v + w) {
		// Degenerate triangle; a conservative miss beats a garbage contact
		slog.Warn("contact dropped, degenerate barycentric coordinates")
		return nil
	}

	pointInAWorld := pa.WitnessA.Mul(u).Add(pb.WitnessA.Mul(v)).Add(pc.WitnessA.Mul(w))

	var depth float64
	var pointInBWorld mgl64.Vec3
	if shallow {
		depth = margin - distance
		pointInBWorld = pointInAWorld.Add(normal.Mul(-depth))
	} else {
		depth = distance + margin
		pointInBWorld = pa.WitnessB.Mul(u).Add(pb.WitnessB.Mul(v)).Add(pc.WitnessB.Mul(w))
	}

	return &contact.Details{
		BodyA:       bodyA,
		BodyB:       bodyB,
		Normal:      normal,
		Point:       pointInAWorld.Add(pointInBWorld).Mul(0.5),
		PointInA:    bodyA.Transform.ApplyInverse(pointInAWorld),
		PointInB:    bodyB.Transform.ApplyInverse(pointInBWorld),
		Depth:       depth,
		Restitution: (bodyA.Material.Restitution + bodyB.Material.Restitution) / 2,
		Friction:    (bodyA.Material.Friction + bodyB.Material.Friction) / 2,
	}
}
