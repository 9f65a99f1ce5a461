package solver

import "github.com/akmonengine/islet/actor"

// VelocitySolver runs the warm-started PGS velocity iteration over one
// island's assembled constraints, then commits the resulting velocities
// back onto the bodies and writes impulses back for next step's warm start.
type VelocitySolver struct {
	delta DeltaVelBuffer
}

// Solve iterates params.NumVelocityIterations sweeps over store's joint and
// contact velocity constraints, joints first then contacts, seeded by one
// warm-start pass, then commits the accumulated per-body delta-velocities
// and writes impulses back into the manifolds and joint edges for next step.
func (s *VelocitySolver) Solve(params *IntegrationParameters, bodies BodyAccessor, islandID int, store *ConstraintStore) {
	// +1 reserves the ground slot groundSlot points every out-of-island
	// static body at during assembly, so it never aliases a dynamic body's
	// own offset-0 slot (see mjLambdaOf).
	s.delta.Reset(bodies.ActiveBodyCount(islandID) + 1)

	for i := range store.JointVelocity {
		store.JointVelocity[i].Warmstart(s.delta)
	}
	for i := range store.ContactVelocity {
		store.ContactVelocity[i].Warmstart(s.delta)
	}

	for iter := 0; iter < params.NumVelocityIterations; iter++ {
		for i := range store.JointVelocity {
			store.JointVelocity[i].Solve(s.delta)
		}
		for i := range store.ContactVelocity {
			store.ContactVelocity[i].Solve(s.delta)
		}
	}

	bodies.ForEachActiveIslandBody(islandID, func(slot int, rb *actor.RigidBody) {
		d := s.delta[slot]
		rb.Velocity = rb.Velocity.Add(d.Linear)
		rb.AngularVelocity = rb.AngularVelocity.Add(rb.InverseInertiaSqrtWorld().Mul3x1(d.Angular))
	})

	for i := range store.JointVelocity {
		store.JointVelocity[i].WritebackImpulses()
	}
	for i := range store.ContactVelocity {
		store.ContactVelocity[i].WritebackImpulses()
	}
}
