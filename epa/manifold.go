package epa

import (
	"math"

	"github.com/akmonengine/islet/actor"
	"github.com/akmonengine/islet/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// maxBufferSize bounds the Sutherland-Hodgman clip buffers; it must be at
// least geometry.MaxManifoldPoints*2 to survive worst-case clipping against
// a quad reference face.
const maxBufferSize = 8

const (
	epsilonColinear = 1e-6
	epsilonDistance = 1e-6
	epsilonParallel = 1e-10
)

// GenerateManifold builds the contact points for one overlapping pair, given
// the EPA-converged separating normal (pointing from a to b) and
// penetration depth. It clips the incident shape's contact face against the
// reference shape's contact face (Sutherland-Hodgman), falling back to a
// single deepest point when either feature degenerates to a point.
func GenerateManifold(a, b *actor.RigidBody, normal mgl64.Vec3, depth float64) []geometry.SolverContact {
	localNormalA := a.Transform.InverseRotation.Rotate(normal)
	localNormalB := b.Transform.InverseRotation.Rotate(normal.Mul(-1))

	localFeatureA := a.Shape.GetContactFeature(localNormalA)
	localFeatureB := b.Shape.GetContactFeature(localNormalB)

	worldFeatureA := toWorld(localFeatureA, a.Transform)
	worldFeatureB := toWorld(localFeatureB, b.Transform)

	var incident, reference []mgl64.Vec3
	if len(worldFeatureB) <= len(worldFeatureA) {
		incident, reference = worldFeatureB, worldFeatureA
	} else {
		incident, reference = worldFeatureA, worldFeatureB
	}

	if len(incident) == 1 {
		return []geometry.SolverContact{{Point: incident[0], Dist: -depth}}
	}

	clipped := clipIncidentAgainstReference(incident, reference, normal)
	points := clipAgainstReferencePlane(clipped, reference, normal, depth)

	if len(points) == 0 {
		return []geometry.SolverContact{{Point: b.SupportWorld(normal.Mul(-1)), Dist: -depth}}
	}
	if len(points) > geometry.MaxManifoldPoints {
		points = reduceToExtremePoints(points, normal)
	}

	for i := range points {
		points[i].ContactID = uint8(i)
	}
	return points
}

func toWorld(local []mgl64.Vec3, t actor.Transform) []mgl64.Vec3 {
	world := make([]mgl64.Vec3, len(local))
	for i, p := range local {
		world[i] = t.Position.Add(t.Rotation.Rotate(p))
	}
	return world
}

// clipIncidentAgainstReference clips the incident polygon against each side
// plane of the reference polygon's edges.
func clipIncidentAgainstReference(incident, reference []mgl64.Vec3, normal mgl64.Vec3) []mgl64.Vec3 {
	if len(reference) < 2 {
		return incident
	}

	center := centroid(reference)
	current := incident

	for i := 0; i < len(reference); i++ {
		v1 := reference[i]
		v2 := reference[(i+1)%len(reference)]

		edge := v2.Sub(v1)
		edgeCrossNormal := edge.Cross(normal)
		if edgeCrossNormal.Len() < epsilonColinear {
			continue
		}
		clipNormal := edgeCrossNormal.Normalize()
		if center.Sub(v1).Dot(clipNormal) < 0 {
			clipNormal = clipNormal.Mul(-1)
		}

		current = clipPolygonAgainstPlane(current, v1, clipNormal)
		if len(current) == 0 {
			break
		}
	}

	return current
}

func clipPolygonAgainstPlane(input []mgl64.Vec3, planePoint, planeNormal mgl64.Vec3) []mgl64.Vec3 {
	if len(input) == 0 {
		return nil
	}

	output := make([]mgl64.Vec3, 0, len(input)+1)
	for i := 0; i < len(input); i++ {
		current := input[i]
		next := input[(i+1)%len(input)]

		currentDist := current.Sub(planePoint).Dot(planeNormal)
		nextDist := next.Sub(planePoint).Dot(planeNormal)

		if currentDist >= -epsilonDistance {
			output = append(output, current)
			if nextDist < -epsilonDistance {
				output = append(output, lineIntersectPlane(current, next, planePoint, planeNormal))
			}
		} else if nextDist >= -epsilonDistance {
			output = append(output, lineIntersectPlane(current, next, planePoint, planeNormal))
		}

		if len(output) >= maxBufferSize {
			break
		}
	}
	return output
}

// clipAgainstReferencePlane keeps only the points of clipped that lie at or
// below the reference polygon's own plane, each stamped with the shared
// penetration depth so the solver's warm-start assembly can rediscover it
// next step via anchor drift.
func clipAgainstReferencePlane(clipped, reference []mgl64.Vec3, normal mgl64.Vec3, depth float64) []geometry.SolverContact {
	if len(reference) < 3 {
		points := make([]geometry.SolverContact, len(clipped))
		for i, p := range clipped {
			points[i] = geometry.SolverContact{Point: p, Dist: -depth}
		}
		return points
	}

	edge1 := reference[1].Sub(reference[0])
	edge2 := reference[2].Sub(reference[0])
	refNormal := edge1.Cross(edge2).Normalize()
	if refNormal.Dot(normal) < 0 {
		refNormal = refNormal.Mul(-1)
	}
	offset := reference[0].Dot(refNormal)

	var points []geometry.SolverContact
	for _, p := range clipped {
		if p.Dot(refNormal)-offset <= 0 {
			points = append(points, geometry.SolverContact{Point: p, Dist: -depth})
		}
	}
	return points
}

// reduceToExtremePoints keeps the 4 points with extreme coordinates along
// the two tangent axes of normal, matching the classic box2d/bullet
// manifold-reduction heuristic.
func reduceToExtremePoints(points []geometry.SolverContact, normal mgl64.Vec3) []geometry.SolverContact {
	t1, t2 := tangentBasis(normal)

	minX, maxX, minY, maxY := 0, 0, 0, 0
	minXv, maxXv := math.Inf(1), math.Inf(-1)
	minYv, maxYv := math.Inf(1), math.Inf(-1)

	for i, p := range points {
		x := p.Point.Dot(t1)
		y := p.Point.Dot(t2)
		if x < minXv {
			minXv, minX = x, i
		}
		if x > maxXv {
			maxXv, maxX = x, i
		}
		if y < minYv {
			minYv, minY = y, i
		}
		if y > maxYv {
			maxYv, maxY = y, i
		}
	}

	seen := map[int]bool{}
	var reduced []geometry.SolverContact
	for _, idx := range [4]int{minX, maxX, minY, maxY} {
		if !seen[idx] {
			seen[idx] = true
			reduced = append(reduced, points[idx])
		}
	}
	return reduced
}

func centroid(points []mgl64.Vec3) mgl64.Vec3 {
	if len(points) == 0 {
		return mgl64.Vec3{}
	}
	var sum mgl64.Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}

func lineIntersectPlane(p1, p2, planePoint, planeNormal mgl64.Vec3) mgl64.Vec3 {
	dir := p2.Sub(p1)
	dist := p1.Sub(planePoint).Dot(planeNormal)
	denom := dir.Dot(planeNormal)
	if math.Abs(denom) < epsilonParallel {
		return p1
	}
	t := -dist / denom
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return p1.Add(dir.Mul(t))
}

func tangentBasis(normal mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	t1 := mgl64.Vec3{1, 0, 0}
	if math.Abs(normal.X()) > 0.9 {
		t1 = mgl64.Vec3{0, 1, 0}
	}
	t1 = t1.Sub(normal.Mul(t1.Dot(normal))).Normalize()
	t2 := normal.Cross(t1).Normalize()
	return t1, t2
}
