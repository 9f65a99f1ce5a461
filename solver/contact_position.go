package solver

import (
	"github.com/akmonengine/islet/actor"
	"github.com/akmonengine/islet/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// ContactPositionConstraintPoint is one point's projection data for the
// position pass. The anchors are stored in each body's *local* frame at
// assembly time so Solve can re-derive the current world arm from the
// body's current orientation on every iteration, instead of freezing a
// world-space Jacobian the way the velocity pass does. InitialDist is the
// narrow-phase depth at assembly; since both anchors start out coincident
// in world space, Solve recovers the live separation by adding how far
// each anchor has since drifted along Normal.
type ContactPositionConstraintPoint struct {
	LocalAnchor1, LocalAnchor2     mgl64.Vec3
	InitialAnchor1, InitialAnchor2 mgl64.Vec3
	InitialDist                    float64
}

// ContactPositionConstraint is a manifold batch's position-pass
// counterpart to ContactVelocityConstraint. It caches no impulses — the
// position pass is a direct non-linear Gauss-Seidel correction of pose
// deltas. Its Normal is the manifold normal negated, so it points from
// BodyB toward BodyA and moving BodyA along it separates the pair.
type ContactPositionConstraint struct {
	BodyA, BodyB *actor.RigidBody
	Normal       mgl64.Vec3
	Points       [geometry.MaxManifoldPoints]ContactPositionConstraintPoint
	NumContacts  int
}

// GenerateContactPositionConstraints builds one ContactPositionConstraint
// per MaxManifoldPoints batch of manifold.Points, mirroring the batching in
// GenerateContactVelocityConstraints.
func GenerateContactPositionConstraints(manifold *geometry.ContactManifold, out *[]ContactPositionConstraint) {
	if manifold.RelativeDominance != 0 {
		panic("solver: manifold with nonzero relative dominance reached assembly")
	}
	if len(manifold.Points) == 0 {
		return
	}

	rb1, rb2 := manifold.BodyA, manifold.BodyB
	com1, com2 := rb1.WorldCOM(), rb2.WorldCOM()

	for start := 0; start < len(manifold.Points); start += geometry.MaxManifoldPoints {
		end := start + geometry.MaxManifoldPoints
		if end > len(manifold.Points) {
			end = len(manifold.Points)
		}
		chunk := manifold.Points[start:end]

		constraint := ContactPositionConstraint{
			BodyA:       rb1,
			BodyB:       rb2,
			Normal:      manifold.Normal.Mul(-1),
			NumContacts: len(chunk),
		}

		for k, point := range chunk {
			constraint.Points[k] = ContactPositionConstraintPoint{
				LocalAnchor1:   rb1.Transform.InverseRotation.Rotate(point.Point.Sub(com1)),
				LocalAnchor2:   rb2.Transform.InverseRotation.Rotate(point.Point.Sub(com2)),
				InitialAnchor1: point.Point,
				InitialAnchor2: point.Point,
				InitialDist:    point.Dist,
			}
		}

		*out = append(*out, constraint)
	}
}

// Solve runs one non-linear Gauss-Seidel position correction over every
// point of this constraint, clamping each contact's correction to
// params.MaxPositionCorrection and skipping points within
// params.AllowedPenetrationSlop.
func (c *ContactPositionConstraint) Solve(params *IntegrationParameters) {
	im1, im2 := c.BodyA.InverseMass(), c.BodyB.InverseMass()
	if im1+im2 == 0 {
		return
	}
	iw1, iw2 := c.BodyA.InverseInertiaSqrtWorld(), c.BodyB.InverseInertiaSqrtWorld()

	for i := 0; i < c.NumContacts; i++ {
		p := &c.Points[i]

		anchor1 := c.BodyA.Transform.Rotation.Rotate(p.LocalAnchor1)
		anchor2 := c.BodyB.Transform.Rotation.Rotate(p.LocalAnchor2)
		world1 := c.BodyA.Transform.Position.Add(anchor1)
		world2 := c.BodyB.Transform.Position.Add(anchor2)

		// The two anchors track the same material point at assembly time, so
		// the live separation is the assembly-time depth plus how far each
		// anchor has since moved along Normal.
		drift1 := world1.Sub(p.InitialAnchor1).Dot(c.Normal)
		drift2 := world2.Sub(p.InitialAnchor2).Dot(c.Normal)
		currentDist := p.InitialDist + drift1 - drift2
		penetration := -currentDist
		if penetration <= params.AllowedPenetrationSlop {
			continue
		}

		correction := penetration - params.AllowedPenetrationSlop
		if correction > params.MaxPositionCorrection {
			correction = params.MaxPositionCorrection
		}

		gcross1 := iw1.Mul3x1(anchor1.Cross(c.Normal))
		gcross2 := iw2.Mul3x1(anchor2.Cross(c.Normal))
		r := im1 + im2 + gcross1.Dot(gcross1) + gcross2.Dot(gcross2)
		if r <= 0 {
			continue
		}
		lambda := correction / r

		impulse := c.Normal.Mul(lambda)
		c.BodyA.Transform.Position = c.BodyA.Transform.Position.Add(impulse.Mul(im1))
		c.BodyB.Transform.Position = c.BodyB.Transform.Position.Sub(impulse.Mul(im2))

		applyRotationCorrection(c.BodyA, iw1.Mul3x1(gcross1.Mul(lambda)))
		applyRotationCorrection(c.BodyB, iw2.Mul3x1(gcross2.Mul(-lambda)))
	}
}
