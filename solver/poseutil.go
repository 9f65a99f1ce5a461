package solver

import (
	"github.com/akmonengine/islet/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// applyRotationCorrection nudges rb's orientation by a small-angle rotation
// vector, the position-pass equivalent of integrating an angular velocity
// over a unit step. It follows the same linearized quaternion update the
// teacher's rigid body integration uses for angular velocity: treat
// angularCorrection as a pure quaternion, add half of it to the current
// orientation, and renormalize.
func applyRotationCorrection(rb *actor.RigidBody, angularCorrection mgl64.Vec3) {
	if rb.BodyType == actor.BodyTypeStatic {
		return
	}
	if angularCorrection.Len() == 0 {
		return
	}

	qDelta := mgl64.Quat{W: 0, V: angularCorrection}
	rb.Transform.Rotation = rb.Transform.Rotation.Add(qDelta.Mul(rb.Transform.Rotation).Scale(0.5)).Normalize()
	rb.Transform.InverseRotation = rb.Transform.Rotation.Inverse()
}
