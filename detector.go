// Package talon is an embeddable narrow-phase collision detector for convex
// rigid bodies, built on GJK and EPA over the configuration space obstacle
// (Minkowski difference). It reports a single contact point per overlapping
// pair: world-space position, per-body local positions, unit normal,
// penetration depth and blended material coefficients.
package talon

import (
	"github.com/akmonengine/talon/actor"
	"github.com/akmonengine/talon/contact"
	"github.com/akmonengine/talon/epa"
	"github.com/akmonengine/talon/gjk"
)

// Detector runs narrow-phase queries with a fixed set of tunables.
// Queries share no mutable state, so one Detector is safe for concurrent use.
type Detector struct {
	cfg Config
}

// NewDetector creates a detector, filling unset tunables with defaults
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg.withDefaults()}
}

// TestCollision reports the contact between two convex bodies, or nil when
// they are separated by more than the margin.
//
// The GJK descent runs first. It exits one of three ways: a shallow contact
// caught by the margin test, a proof of separation, or a tetrahedron
// enclosing the origin, which EPA then expands into depth and normal.
func (d *Detector) TestCollision(a, b *actor.RigidBody) *contact.Details {
	simplex := gjk.NewSimplex(a, b, d.cfg.Margin, d.cfg.MaxIterations)

	status := simplex.AddPoint()
	for status == gjk.StatusContinue {
		status = simplex.AddPoint()
	}

	switch status {
	case gjk.StatusContact:
		result := simplex.Result()
		simplex.Release()
		return result
	case gjk.StatusEPANeeded:
		// EPA takes over the simplex's support points and frees them
		return epa.Run(a, b, simplex, d.cfg.Margin, d.cfg.EPACondition, d.cfg.MaxIterations)
	default:
		simplex.Release()
		return nil
	}
}
