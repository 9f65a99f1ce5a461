package solver

import (
	"github.com/akmonengine/islet/geometry"
	"github.com/akmonengine/islet/joint"
)

// ConstraintStore holds one island's assembled constraints for a single
// step, reused (not reallocated) across steps the way DeltaVelBuffer is.
type ConstraintStore struct {
	ContactVelocity []ContactVelocityConstraint
	ContactPosition []ContactPositionConstraint
	JointVelocity   []JointVelocityConstraint
	JointPosition   []JointPositionConstraint
}

// Reset truncates every slice to zero length without releasing their
// backing arrays, so repeated steps over a stable island settle into zero
// allocations.
func (s *ConstraintStore) Reset() {
	s.ContactVelocity = s.ContactVelocity[:0]
	s.ContactPosition = s.ContactPosition[:0]
	s.JointVelocity = s.JointVelocity[:0]
	s.JointPosition = s.JointPosition[:0]
}

// Assemble rebuilds every constraint in the store from this step's
// manifolds and joint edges. groundSlot is the DeltaVelBuffer index any
// out-of-island (static) body's velocity rows should target instead of its
// meaningless ActiveSetOffset.
func (s *ConstraintStore) Assemble(params *IntegrationParameters, groundSlot int, manifolds []*geometry.ContactManifold, joints []*joint.Edge) {
	s.Reset()

	for manifoldID, m := range manifolds {
		GenerateContactVelocityConstraints(params, groundSlot, manifoldID, m, &s.ContactVelocity)
		GenerateContactPositionConstraints(m, &s.ContactPosition)
	}
	for _, j := range joints {
		GenerateJointVelocityConstraints(params, groundSlot, j, &s.JointVelocity)
		GenerateJointPositionConstraints(j, &s.JointPosition)
	}
}
