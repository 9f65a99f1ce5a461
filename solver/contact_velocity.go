package solver

import (
	"github.com/akmonengine/islet/actor"
	"github.com/akmonengine/islet/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// mjLambdaOf returns the DeltaVelBuffer slot a velocity constraint row
// should target for rb: its island-assigned ActiveSetOffset for a dynamic
// body, or the shared reserved groundSlot for a static one (see
// IslandSolver.groundSlot).
func mjLambdaOf(rb *actor.RigidBody, groundSlot int) int {
	if rb.BodyType == actor.BodyTypeStatic {
		return groundSlot
	}
	return rb.ActiveSetOffset
}

// VelocityConstraintElementPart is one scalar row of a velocity constraint:
// the angular Jacobian terms for each body, the effective mass, the
// right-hand side, and the running accumulated impulse.
type VelocityConstraintElementPart struct {
	Gcross1 mgl64.Vec3
	Gcross2 mgl64.Vec3
	R       float64
	Rhs     float64
	Impulse float64
}

// ContactVelocityConstraintElement bundles one contact point's normal row
// plus its Dim-1 tangent rows. Limit is stored per element rather than once
// per constraint so manifolds with heterogeneous per-point friction still
// solve correctly.
type ContactVelocityConstraintElement struct {
	Normal  VelocityConstraintElementPart
	Tangent [geometry.Dim - 1]VelocityConstraintElementPart
	Limit   float64
}

// ContactVelocityConstraint is one MaxManifoldPoints-sized batch of a
// manifold's solver contacts.
type ContactVelocityConstraint struct {
	Manifold *geometry.ContactManifold
	Dir1     mgl64.Vec3 // non-penetration force direction for body 1 (-manifold normal)
	Im1      float64
	Im2      float64

	MjLambda1, MjLambda2 int
	ManifoldID           int
	ManifoldContactID    [geometry.MaxManifoldPoints]uint8
	NumContacts          int
	Elements             [geometry.MaxManifoldPoints]ContactVelocityConstraintElement
}

// orthonormalBasis builds two unit vectors orthogonal to n and to each
// other, used as the tangent directions for friction.
func orthonormalBasis(n mgl64.Vec3) [geometry.Dim - 1]mgl64.Vec3 {
	var t1 mgl64.Vec3
	if n.X() >= 0.57735 || n.X() <= -0.57735 {
		t1 = mgl64.Vec3{n.Y(), -n.X(), 0}.Normalize()
	} else {
		t1 = mgl64.Vec3{0, n.Z(), -n.Y()}.Normalize()
	}
	t2 := n.Cross(t1)
	return [geometry.Dim - 1]mgl64.Vec3{t1, t2}
}

// GenerateContactVelocityConstraints splits manifold.Points into
// MaxManifoldPoints-sized batches and appends one ContactVelocityConstraint
// per batch to out. manifold.RelativeDominance must be 0; a nonzero value is
// a programmer error, since dominance routing is out of scope here.
func GenerateContactVelocityConstraints(
	params *IntegrationParameters,
	groundSlot int,
	manifoldID int,
	manifold *geometry.ContactManifold,
	out *[]ContactVelocityConstraint,
) {
	if manifold.RelativeDominance != 0 {
		panic("solver: manifold with nonzero relative dominance reached assembly")
	}
	if len(manifold.Points) == 0 {
		return
	}

	invDt := params.InvDt()
	erpInvDt := params.VelocityBasedERPInvDt()

	rb1, rb2 := manifold.BodyA, manifold.BodyB
	mjLambda1, mjLambda2 := mjLambdaOf(rb1, groundSlot), mjLambdaOf(rb2, groundSlot)
	dir1 := manifold.Normal.Mul(-1)
	warmstartCoeff := manifold.WarmstartMultiplier * params.WarmstartCoeff

	im1, im2 := rb1.InverseMass(), rb2.InverseMass()
	iw1, iw2 := rb1.InverseInertiaSqrtWorld(), rb2.InverseInertiaSqrtWorld()
	com1, com2 := rb1.WorldCOM(), rb2.WorldCOM()

	for start := 0; start < len(manifold.Points); start += geometry.MaxManifoldPoints {
		end := start + geometry.MaxManifoldPoints
		if end > len(manifold.Points) {
			end = len(manifold.Points)
		}
		chunk := manifold.Points[start:end]
		if len(chunk) > geometry.MaxManifoldPoints {
			panic("solver: manifold batch exceeds MaxManifoldPoints")
		}

		constraint := ContactVelocityConstraint{
			Manifold:    manifold,
			Dir1:        dir1,
			Im1:         im1,
			Im2:         im2,
			MjLambda1:   mjLambda1,
			MjLambda2:   mjLambda2,
			ManifoldID:  manifoldID,
			NumContacts: len(chunk),
		}

		tangents1 := orthonormalBasis(dir1)

		for k, point := range chunk {
			dp1 := point.Point.Sub(com1)
			dp2 := point.Point.Sub(com2)

			vel1 := rb1.Velocity.Add(rb1.AngularVelocity.Cross(dp1))
			vel2 := rb2.Velocity.Add(rb2.AngularVelocity.Cross(dp2))

			constraint.ManifoldContactID[k] = point.ContactID
			constraint.Elements[k].Limit = point.Friction

			// Normal part.
			{
				gcross1 := iw1.Mul3x1(dp1.Cross(dir1))
				gcross2 := iw2.Mul3x1(dp2.Cross(dir1.Mul(-1)))
				r := 1.0 / (im1 + im2 + gcross1.Dot(gcross1) + gcross2.Dot(gcross2))

				var bounce, rest float64
				if point.IsBouncy {
					bounce = 1
				} else {
					rest = 1
				}

				rhs := (1 + bounce*point.Restitution) * vel1.Sub(vel2).Dot(dir1)
				rhs += maxf(point.Dist, 0) * invDt
				rhs *= bounce + rest*params.VelocitySolveFraction
				rhs += rest * erpInvDt * minf(point.Dist, 0)

				constraint.Elements[k].Normal = VelocityConstraintElementPart{
					Gcross1: gcross1,
					Gcross2: gcross2,
					R:       r,
					Rhs:     rhs,
					Impulse: point.Data.Impulse * warmstartCoeff,
				}
			}

			// Tangent parts.
			for j := 0; j < geometry.Dim-1; j++ {
				t := tangents1[j]
				gcross1 := iw1.Mul3x1(dp1.Cross(t))
				gcross2 := iw2.Mul3x1(dp2.Cross(t.Mul(-1)))
				r := 1.0 / (im1 + im2 + gcross1.Dot(gcross1) + gcross2.Dot(gcross2))
				rhs := vel1.Sub(vel2).Add(point.TangentVelocity).Dot(t)

				constraint.Elements[k].Tangent[j] = VelocityConstraintElementPart{
					Gcross1: gcross1,
					Gcross2: gcross2,
					R:       r,
					Rhs:     rhs,
					Impulse: point.Data.TangentImpulse[j] * warmstartCoeff,
				}
			}
		}

		*out = append(*out, constraint)
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Warmstart primes delta's two bodies with this constraint's seeded
// impulses, exactly as one PGS step would apply them.
func (c *ContactVelocityConstraint) Warmstart(delta DeltaVelBuffer) {
	var d1, d2 DeltaVel
	tangents1 := orthonormalBasis(c.Dir1)

	for i := 0; i < c.NumContacts; i++ {
		elt := &c.Elements[i].Normal
		d1.Linear = d1.Linear.Add(c.Dir1.Mul(c.Im1 * elt.Impulse))
		d1.Angular = d1.Angular.Add(elt.Gcross1.Mul(elt.Impulse))
		d2.Linear = d2.Linear.Add(c.Dir1.Mul(-c.Im2 * elt.Impulse))
		d2.Angular = d2.Angular.Add(elt.Gcross2.Mul(elt.Impulse))

		for j := 0; j < geometry.Dim-1; j++ {
			t := c.Elements[i].Tangent[j]
			d1.Linear = d1.Linear.Add(tangents1[j].Mul(c.Im1 * t.Impulse))
			d1.Angular = d1.Angular.Add(t.Gcross1.Mul(t.Impulse))
			d2.Linear = d2.Linear.Add(tangents1[j].Mul(-c.Im2 * t.Impulse))
			d2.Angular = d2.Angular.Add(t.Gcross2.Mul(t.Impulse))
		}
	}

	delta[c.MjLambda1].Linear = delta[c.MjLambda1].Linear.Add(d1.Linear)
	delta[c.MjLambda1].Angular = delta[c.MjLambda1].Angular.Add(d1.Angular)
	delta[c.MjLambda2].Linear = delta[c.MjLambda2].Linear.Add(d2.Linear)
	delta[c.MjLambda2].Angular = delta[c.MjLambda2].Angular.Add(d2.Angular)
}

// Solve runs one PGS sweep over this constraint's contacts: friction first,
// then non-penetration. The sign convention on gcross2 is intentional —
// gcross2 was built from dp2 x (-dir1) at assembly, so its contribution
// here is added, not subtracted.
func (c *ContactVelocityConstraint) Solve(delta DeltaVelBuffer) {
	d1 := delta[c.MjLambda1]
	d2 := delta[c.MjLambda2]
	tangents1 := orthonormalBasis(c.Dir1)

	// Friction sub-iteration.
	for i := 0; i < c.NumContacts; i++ {
		normalImpulse := c.Elements[i].Normal.Impulse
		limit := c.Elements[i].Limit * normalImpulse

		for j := 0; j < geometry.Dim-1; j++ {
			t := &c.Elements[i].Tangent[j]
			dimpulse := tangents1[j].Dot(d1.Linear) + t.Gcross1.Dot(d1.Angular) -
				tangents1[j].Dot(d2.Linear) + t.Gcross2.Dot(d2.Angular) + t.Rhs

			newImpulse := clamp(t.Impulse-t.R*dimpulse, -limit, limit)
			dLambda := newImpulse - t.Impulse
			t.Impulse = newImpulse

			d1.Linear = d1.Linear.Add(tangents1[j].Mul(c.Im1 * dLambda))
			d1.Angular = d1.Angular.Add(t.Gcross1.Mul(dLambda))
			d2.Linear = d2.Linear.Add(tangents1[j].Mul(-c.Im2 * dLambda))
			d2.Angular = d2.Angular.Add(t.Gcross2.Mul(dLambda))
		}
	}

	// Non-penetration sub-iteration.
	for i := 0; i < c.NumContacts; i++ {
		elt := &c.Elements[i].Normal
		dimpulse := c.Dir1.Dot(d1.Linear) + elt.Gcross1.Dot(d1.Angular) -
			c.Dir1.Dot(d2.Linear) + elt.Gcross2.Dot(d2.Angular) + elt.Rhs

		newImpulse := maxf(elt.Impulse-elt.R*dimpulse, 0)
		dLambda := newImpulse - elt.Impulse
		elt.Impulse = newImpulse

		d1.Linear = d1.Linear.Add(c.Dir1.Mul(c.Im1 * dLambda))
		d1.Angular = d1.Angular.Add(elt.Gcross1.Mul(dLambda))
		d2.Linear = d2.Linear.Add(c.Dir1.Mul(-c.Im2 * dLambda))
		d2.Angular = d2.Angular.Add(elt.Gcross2.Mul(dLambda))
	}

	delta[c.MjLambda1] = d1
	delta[c.MjLambda2] = d2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WritebackImpulses persists the final accumulated impulses into the
// manifold's solver contacts so the next step's assembly can warm-start
// from them.
func (c *ContactVelocityConstraint) WritebackImpulses() {
	for k := 0; k < c.NumContacts; k++ {
		contactID := c.ManifoldContactID[k]
		point := &c.Manifold.Points[contactID]
		point.Data.Impulse = c.Elements[k].Normal.Impulse
		for j := 0; j < geometry.Dim-1; j++ {
			point.Data.TangentImpulse[j] = c.Elements[k].Tangent[j].Impulse
		}
	}
}
