package collision

import (
	"log/slog"
	"math"

	"github.com/akmonengine/islet/actor"
	"github.com/akmonengine/islet/epa"
	"github.com/akmonengine/islet/geometry"
	"github.com/akmonengine/islet/gjk"
)

// restitutionVelocityThreshold is the minimum closing speed along the
// contact normal below which a contact is treated as resting rather than
// bouncy, avoiding restitution-driven jitter on near-stationary stacks.
const restitutionVelocityThreshold = 1.0

// NarrowPhase runs GJK/EPA on every broad-phase pair and, for the ones that
// overlap, builds the solver-ready contact manifold. Pairs that fail EPA
// convergence are logged and dropped rather than aborting the whole step.
func NarrowPhase(pairs []Pair) []*geometry.ContactManifold {
	manifolds := make([]*geometry.ContactManifold, 0, len(pairs))

	for _, pair := range pairs {
		simplex := gjk.SimplexPool.Get().(*gjk.Simplex)
		simplex.Reset()

		collides := gjk.GJK(pair.BodyA, pair.BodyB, simplex)
		if !collides {
			gjk.SimplexPool.Put(simplex)
			continue
		}

		result, err := epa.EPA(pair.BodyA, pair.BodyB, simplex)
		gjk.SimplexPool.Put(simplex)
		if err != nil {
			slog.Warn("collision: EPA failed to converge, dropping pair", "error", err)
			continue
		}

		manifold := buildManifold(pair.BodyA, pair.BodyB, result)
		if manifold != nil {
			manifolds = append(manifolds, manifold)
		}
	}

	return manifolds
}

func buildManifold(a, b *actor.RigidBody, result epa.Result) *geometry.ContactManifold {
	points := epa.GenerateManifold(a, b, result.Normal, result.Penetration)
	if len(points) == 0 {
		return nil
	}

	friction := computeFriction(a.Material, b.Material)
	restitution := computeRestitution(a.Material, b.Material)

	for i := range points {
		arm1 := points[i].Point.Sub(a.WorldCOM())
		arm2 := points[i].Point.Sub(b.WorldCOM())
		vel1 := a.Velocity.Add(a.AngularVelocity.Cross(arm1))
		vel2 := b.Velocity.Add(b.AngularVelocity.Cross(arm2))
		closingVelocity := vel1.Sub(vel2).Dot(result.Normal)

		points[i].Friction = friction
		points[i].Restitution = restitution
		points[i].IsBouncy = closingVelocity > restitutionVelocityThreshold
	}

	return &geometry.ContactManifold{
		BodyA:               a,
		BodyB:               b,
		Normal:              result.Normal,
		RelativeDominance:   0,
		Points:              points,
		WarmstartMultiplier: 1.0,
	}
}

// computeRestitution averages the two materials' restitution.
func computeRestitution(matA, matB actor.Material) float64 {
	return (matA.Restitution + matB.Restitution) / 2.0
}

// computeFriction takes the geometric mean of the two materials' dynamic
// friction coefficients.
func computeFriction(matA, matB actor.Material) float64 {
	return math.Sqrt(matA.DynamicFriction * matB.DynamicFriction)
}
