package gjk

import (
	"sync"

	"github.com/akmonengine/talon/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// SupportPoint is one sample of the configuration space obstacle (A - B).
// Point is always WitnessA - WitnessB; the witnesses are kept so a contact
// on the CSO can be mapped back onto both bodies.
type SupportPoint struct {
	WitnessA mgl64.Vec3 // farthest point of body A along the query direction
	WitnessB mgl64.Vec3 // farthest point of body B along the opposite direction
	Point    mgl64.Vec3
}

// supportPointPool recycles the many short-lived samples a query takes.
// sync.Pool is safe for concurrent queries, so a parallel narrow phase
// needs no per-worker state.
var supportPointPool = sync.Pool{
	New: func() interface{} {
		return &SupportPoint{}
	},
}

// AcquireSupportPoint returns an uninitialized support point from the pool
func AcquireSupportPoint() *SupportPoint {
	return supportPointPool.Get().(*SupportPoint)
}

// ReleaseSupportPoint returns a support point to the pool. Callers own the
// dedup: a point shared between polytope faces must be released exactly once.
func ReleaseSupportPoint(point *SupportPoint) {
	supportPointPool.Put(point)
}

// FindSupportPoint samples the CSO of bodies a and b along direction,
// recording both witnesses. The direction need not be normalized but must
// be nonzero.
func FindSupportPoint(a, b *actor.RigidBody, direction mgl64.Vec3, out *SupportPoint) {
	out.WitnessA = a.SupportWorld(direction)
	out.WitnessB = b.SupportWorld(direction.Mul(-1))
	out.Point = out.WitnessA.Sub(out.WitnessB)
}
