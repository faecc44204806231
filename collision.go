package talon

import (
	"github.com/akmonengine/talon/actor"
	"github.com/akmonengine/talon/contact"
)

// CollisionPair represents a pair of rigid bodies that potentially collide
type CollisionPair struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

// BroadPhase performs broad-phase collision detection using AABB overlap
// tests. It returns pairs of bodies whose AABBs overlap and might be
// colliding. This is an O(n²) brute-force approach suitable for small
// numbers of bodies; use SpatialGrid for larger worlds.
func BroadPhase(bodies []*actor.RigidBody) []CollisionPair {
	pairs := make([]CollisionPair, 0)

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			bodyA := bodies[i]
			bodyB := bodies[j]

			// Planes have an effectively unbounded AABB along the ground;
			// pair them unconditionally
			_, aIsPlane := bodyA.Shape.(*actor.Plane)
			_, bIsPlane := bodyB.Shape.(*actor.Plane)
			if aIsPlane || bIsPlane {
				pairs = append(pairs, CollisionPair{bodyA, bodyB})
				continue
			}

			if bodyA.Shape.GetAABB().Overlaps(bodyB.Shape.GetAABB()) {
				pairs = append(pairs, CollisionPair{bodyA, bodyB})
			}
		}
	}

	return pairs
}

// NarrowPhase runs the detector over candidate pairs, fanned out over
// workers. Order of the returned contacts follows the pair order, so a
// fixed input yields a deterministic result regardless of worker count.
func NarrowPhase(detector *Detector, pairs []CollisionPair, workers int) []*contact.Details {
	results := make([]*contact.Details, len(pairs))

	task(workers, len(pairs), func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = detector.TestCollision(pairs[i].BodyA, pairs[i].BodyB)
		}
	})

	contacts := make([]*contact.Details, 0, len(pairs))
	for _, details := range results {
		if details != nil {
			contacts = append(contacts, details)
		}
	}

	return contacts
}
