package solver

import (
	"github.com/akmonengine/islet/actor"
	"github.com/akmonengine/islet/joint"
	"github.com/go-gl/mathgl/mgl64"
)

// jointRow is one bilateral, unbounded velocity constraint row: unlike a
// contact's VelocityConstraintElementPart, its impulse is never clamped to a
// half-space, since a joint may push or pull freely. LinDir is the world
// axis a point-to-point row acts along; AngDir is the world axis a
// pure-angular row acts along. Exactly one of the two is non-zero; the
// other's corresponding Jacobian terms are simply zero.
type jointRow struct {
	LinDir, AngDir   mgl64.Vec3
	Gcross1, Gcross2 mgl64.Vec3
	R, Rhs, Impulse  float64
}

// JointVelocityConstraint is one edge's assembled velocity rows: 3
// point-to-point rows for a ball joint (rows 0-2), plus 2 angular rows for a
// hinge (rows 3-4) that drive the two non-free angular degrees of freedom to
// zero relative angular velocity. Rows beyond NumRows are unused.
type JointVelocityConstraint struct {
	Edge                 *joint.Edge
	BodyA, BodyB         *actor.RigidBody
	MjLambda1, MjLambda2 int
	Im1, Im2             float64
	NumRows              int
	Rows                 [5]jointRow
}

// GenerateJointVelocityConstraints assembles edge into one JointVelocityConstraint,
// following the same gcross/R/Rhs shape as GenerateContactVelocityConstraints
// but with every row bilateral: no clamp, and the bias term (the
// Baumgarte-corrected position error) pulls the anchors and axes back
// together rather than only resolving penetration.
func GenerateJointVelocityConstraints(params *IntegrationParameters, groundSlot int, edge *joint.Edge, out *[]JointVelocityConstraint) {
	rb1, rb2 := edge.BodyA, edge.BodyB
	im1, im2 := rb1.InverseMass(), rb2.InverseMass()
	iw1, iw2 := rb1.InverseInertiaSqrtWorld(), rb2.InverseInertiaSqrtWorld()
	erpInvDt := params.VelocityBasedERPInvDt()

	c := JointVelocityConstraint{
		Edge:      edge,
		BodyA:     rb1,
		BodyB:     rb2,
		MjLambda1: mjLambdaOf(rb1, groundSlot),
		MjLambda2: mjLambdaOf(rb2, groundSlot),
		Im1:       im1,
		Im2:       im2,
	}

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
	posError := world2.Sub(world1)

	axes := [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i, axis := range axes {
		gcross1 := iw1.Mul3x1(anchor1.Cross(axis))
		gcross2 := iw2.Mul3x1(anchor2.Cross(axis))
		r := im1 + im2 + gcross1.Dot(gcross1) + gcross2.Dot(gcross2)

		relVel := rb2.Velocity.Add(rb2.AngularVelocity.Cross(anchor2)).
			Sub(rb1.Velocity.Add(rb1.AngularVelocity.Cross(anchor1))).Dot(axis)

		c.Rows[i] = jointRow{
			LinDir:  axis,
			Gcross1: gcross1,
			Gcross2: gcross2,
			R:       invOrZero(r),
			Rhs:     relVel + erpInvDt*posError.Dot(axis),
			Impulse: edge.ImpulseCache[i] * params.WarmstartCoeff,
		}
	}
	c.NumRows = 3

	if edge.Kind == joint.KindHinge {
		worldAxis1 := rb1.Transform.Rotation.Rotate(edge.Hinge.LocalAxisA)
		worldAxis2 := rb2.Transform.Rotation.Rotate(edge.Hinge.LocalAxisB)
		t1, t2 := orthonormalBasisPair(worldAxis1)

		axisError := worldAxis1.Cross(worldAxis2)

		for j, t := range [2]mgl64.Vec3{t1, t2} {
			gcross1 := iw1.Mul3x1(t)
			gcross2 := iw2.Mul3x1(t)
			r := gcross1.Dot(t) + gcross2.Dot(t)

			relAngVel := rb2.AngularVelocity.Sub(rb1.AngularVelocity).Dot(t)

			c.Rows[3+j] = jointRow{
				AngDir:  t,
				Gcross1: gcross1,
				Gcross2: gcross2,
				R:       invOrZero(r),
				Rhs:     relAngVel + erpInvDt*axisError.Dot(t),
				Impulse: edge.ImpulseCache[3+j] * params.WarmstartCoeff,
			}
		}
		c.NumRows = 5
	}

	*out = append(*out, c)
}

// orthonormalBasisPair is orthonormalBasis generalized to an arbitrary
// (non-unit-assuming-dir1) axis, used to build the two angular rows of a
// hinge perpendicular to its axis.
func orthonormalBasisPair(axis mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	n := axis.Normalize()
	basis := orthonormalBasis(n)
	return basis[0], basis[1]
}

func invOrZero(r float64) float64 {
	if r <= 0 {
		return 0
	}
	return 1.0 / r
}

// Warmstart primes delta's two bodies with this constraint's seeded
// impulses, mirroring ContactVelocityConstraint.Warmstart.
func (c *JointVelocityConstraint) Warmstart(delta DeltaVelBuffer) {
	var d1, d2 DeltaVel
	for i := 0; i < c.NumRows; i++ {
		row := &c.Rows[i]
		if row.Impulse == 0 {
			continue
		}
		d1.Linear = d1.Linear.Add(row.LinDir.Mul(-c.Im1 * row.Impulse))
		d1.Angular = d1.Angular.Add(row.Gcross1.Mul(row.Impulse))
		d2.Linear = d2.Linear.Add(row.LinDir.Mul(c.Im2 * row.Impulse))
		d2.Angular = d2.Angular.Add(row.Gcross2.Mul(-row.Impulse))
	}
	delta[c.MjLambda1].Linear = delta[c.MjLambda1].Linear.Add(d1.Linear)
	delta[c.MjLambda1].Angular = delta[c.MjLambda1].Angular.Add(d1.Angular)
	delta[c.MjLambda2].Linear = delta[c.MjLambda2].Linear.Add(d2.Linear)
	delta[c.MjLambda2].Angular = delta[c.MjLambda2].Angular.Add(d2.Angular)
}

// Solve runs one PGS sweep over this joint's rows: every row is bilateral,
// so the impulse update is never clamped, unlike a contact's non-penetration
// or friction rows.
func (c *JointVelocityConstraint) Solve(delta DeltaVelBuffer) {
	d1 := delta[c.MjLambda1]
	d2 := delta[c.MjLambda2]

	for i := 0; i < c.NumRows; i++ {
		row := &c.Rows[i]
		if row.R == 0 {
			continue
		}

		dimpulse := row.LinDir.Dot(d2.Linear) - row.LinDir.Dot(d1.Linear) +
			row.Gcross1.Dot(d1.Angular) - row.Gcross2.Dot(d2.Angular) + row.Rhs

		dLambda := -row.R * dimpulse
		row.Impulse += dLambda

		d1.Linear = d1.Linear.Add(row.LinDir.Mul(-c.Im1 * dLambda))
		d1.Angular = d1.Angular.Add(row.Gcross1.Mul(dLambda))
		d2.Linear = d2.Linear.Add(row.LinDir.Mul(c.Im2 * dLambda))
		d2.Angular = d2.Angular.Add(row.Gcross2.Mul(-dLambda))
	}

	delta[c.MjLambda1] = d1
	delta[c.MjLambda2] = d2
}

// WritebackImpulses persists the final accumulated impulses back onto the
// edge so the next step's assembly can warm-start from them.
func (c *JointVelocityConstraint) WritebackImpulses() {
	for i := 0; i < c.NumRows; i++ {
		c.Edge.ImpulseCache[i] = c.Rows[i].Impulse
	}
}
