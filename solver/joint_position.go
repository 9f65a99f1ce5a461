package solver

import (
	"github.com/akmonengine/islet/joint"
	"github.com/go-gl/mathgl/mgl64"
)

// JointPositionConstraint is a joint edge's position-pass counterpart to
// ContactPositionConstraint: a direct non-linear Gauss-Seidel correction
// that pulls the anchor (and, for a hinge, the axis) back together, with no
// one-sided clamp since a joint error can be of either sign.
type JointPositionConstraint struct {
	Edge *joint.Edge
}

// GenerateJointPositionConstraints wraps edge for the position pass. Unlike
// the velocity pass, no Jacobian is cached ahead of time: Solve recomputes
// anchors fresh from the bodies' current transforms every call, exactly as
// ContactPositionConstraint.Solve does.
func GenerateJointPositionConstraints(edge *joint.Edge, out *[]JointPositionConstraint) {
	*out = append(*out, JointPositionConstraint{Edge: edge})
}

// Solve removes the joint's positional error: the point-to-point anchor gap
// for every joint, plus the hinge axis misalignment for a hinge.
func (c *JointPositionConstraint) Solve(params *IntegrationParameters) {
	edge := c.Edge
	rb1, rb2 := edge.BodyA, edge.BodyB
	im1, im2 := rb1.InverseMass(), rb2.InverseMass()
	if im1+im2 == 0 {
		return
	}
	iw1, iw2 := rb1.InverseInertiaSqrtWorld(), rb2.InverseInertiaSqrtWorld()

	var localAnchor1, localAnchor2 mgl64.Vec3
	switch edge.Kind {
	case joint.KindBall:
		localAnchor1, localAnchor2 = edge.Ball.LocalAnchorA, edge.Ball.LocalAnchorB
	case joint.KindHinge:
		localAnchor1, localAnchor2 = edge.Hinge.LocalAnchorA, edge.Hinge.LocalAnchorB
	}

	anchor1 := rb1.Transform.Rotation.Rotate(localAnchor1)
	anchor2 := rb2.Transform.Rotation.Rotate(localAnchor2)
	world1 := rb1.Transform.Position.Add(anchor1)
	world2 := rb2.Transform.Position.Add(anchor2)

	gap := world2.Sub(world1)
	if gap.Len() > 0 {
		axes := [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
		for _, axis := range axes {
			err := gap.Dot(axis)
			if err == 0 {
				continue
			}
			gcross1 := iw1.Mul3x1(anchor1.Cross(axis))
			gcross2 := iw2.Mul3x1(anchor2.Cross(axis))
			r := im1 + im2 + gcross1.Dot(gcross1) + gcross2.Dot(gcross2)
			if r <= 0 {
				continue
			}
			lambda := err / r

			correction := axis.Mul(lambda)
			rb1.Transform.Position = rb1.Transform.Position.Add(correction.Mul(im1))
			rb2.Transform.Position = rb2.Transform.Position.Sub(correction.Mul(im2))
			applyRotationCorrection(rb1, iw1.Mul3x1(gcross1.Mul(lambda)))
			applyRotationCorrection(rb2, iw2.Mul3x1(gcross2.Mul(-lambda)))

			anchor1 = rb1.Transform.Rotation.Rotate(localAnchor1)
			anchor2 = rb2.Transform.Rotation.Rotate(localAnchor2)
		}
	}

	if edge.Kind != joint.KindHinge {
		return
	}

	worldAxis1 := rb1.Transform.Rotation.Rotate(edge.Hinge.LocalAxisA)
	worldAxis2 := rb2.Transform.Rotation.Rotate(edge.Hinge.LocalAxisB)
	axisError := worldAxis1.Cross(worldAxis2)
	if axisError.Len() == 0 {
		return
	}

	t1, t2 := orthonormalBasisPair(worldAxis1)
	for _, t := range [2]mgl64.Vec3{t1, t2} {
		err := axisError.Dot(t)
		if err == 0 {
			continue
		}
		gcross1 := iw1.Mul3x1(t)
		gcross2 := iw2.Mul3x1(t)
		r := gcross1.Dot(t) + gcross2.Dot(t)
		if r <= 0 {
			continue
		}
		lambda := err / r

		applyRotationCorrection(rb1, iw1.Mul3x1(gcross1.Mul(lambda)))
		applyRotationCorrection(rb2, iw2.Mul3x1(gcross2.Mul(-lambda)))
	}
}
