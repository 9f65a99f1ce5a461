// Package geometry holds the body-pair contact data produced by
// broad/narrow-phase collision detection and consumed by the solver
// package. It owns no solving logic, only the data model.
package geometry

import (
	"github.com/akmonengine/islet/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxManifoldPoints bounds how many solver contacts one velocity or
	// position constraint batch packs together.
	MaxManifoldPoints = 4

	// Dim is the dimensionality of the simulation. One normal plus Dim-1
	// tangent directions are solved per contact point.
	Dim = 3
)

// ContactImpulseCache is the per-contact-point side channel that survives
// across steps so the next step's assembly can warm-start from it.
type ContactImpulseCache struct {
	Impulse        float64
	TangentImpulse [Dim - 1]float64
}

// SolverContact is one point of a contact manifold, already linearized by
// narrow phase: world point, penetration distance (negative = overlapping),
// friction/restitution, a conveyor-belt style tangent velocity, and a
// bouncy-vs-resting policy flag.
type SolverContact struct {
	Point           mgl64.Vec3
	Dist            float64
	Friction        float64
	Restitution     float64
	TangentVelocity mgl64.Vec3
	IsBouncy        bool
	ContactID       uint8
	Data            ContactImpulseCache
}

// ContactManifold is a body-pair reference plus its solver contacts.
// RelativeDominance must be 0 for the scalar solver in this module — a
// nonzero value would route to a ground-constraint variant, which this
// module does not implement.
type ContactManifold struct {
	BodyA, BodyB        *actor.RigidBody
	Normal              mgl64.Vec3
	RelativeDominance   int
	Points              []SolverContact
	WarmstartMultiplier float64

	// ConstraintIndex lets a manifold locate its assembled constraints when
	// they are pre-sized rather than push-appended. Unused by the
	// push-append assembly path this package uses, but kept so a caller may
	// pre-size if it chooses to.
	ConstraintIndex int
}

// NumBatches returns how many MaxManifoldPoints-sized chunks this
// manifold's points split into.
func (m *ContactManifold) NumBatches() int {
	n := len(m.Points)
	if n == 0 {
		return 0
	}
	batches := n / MaxManifoldPoints
	if n%MaxManifoldPoints != 0 {
		batches++
	}
	return batches
}
