// Package collision turns a list of rigid bodies into the contact manifolds
// the solver package consumes: an O(n^2) AABB broad phase grounded on the
// teacher's collision.go, followed by a GJK/EPA narrow phase that clips
// contact features into solver.ContactVelocityConstraint-ready points.
package collision

import "github.com/akmonengine/islet/actor"

// Pair is a pair of bodies whose AABBs overlap and may be touching.
type Pair struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

// BroadPhase brute-forces every body pair, skipping static-static and
// sleeping-sleeping pairs since neither can produce a velocity change.
func BroadPhase(bodies []*actor.RigidBody) []Pair {
	pairs := make([]Pair, 0)

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			bodyA := bodies[i]
			bodyB := bodies[j]

			if bodyA.BodyType == actor.BodyTypeStatic && bodyB.BodyType == actor.BodyTypeStatic {
				continue
			}
			if bodyA.IsSleeping && bodyB.IsSleeping {
				continue
			}

			if bodyA.Shape.GetAABB().Overlaps(bodyB.Shape.GetAABB()) {
				pairs = append(pairs, Pair{bodyA, bodyB})
			}
		}
	}

	return pairs
}
