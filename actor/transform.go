package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform is a rigid body's pose: world position plus orientation.
// InverseRotation is kept alongside Rotation rather than computed on demand
// since RigidBody.Integrate, the solver's local/world anchor conversions,
// and SupportWorld all need it every step.
type Transform struct {
	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	InverseRotation mgl64.Quat
}

// NewTransform returns the identity transform: origin, no rotation.
func NewTransform() Transform {
	return Transform{
		Position:        mgl64.Vec3{0, 0, 0},
		Rotation:        mgl64.QuatIdent(),
		InverseRotation: mgl64.QuatIdent(),
	}
}
