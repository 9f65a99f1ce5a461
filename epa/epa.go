// Package epa implements the Expanding Polytope Algorithm for computing
// penetration depth, contact normal, and contact manifold once gjk.GJK has
// found an overlap.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on 3D Game Objects" (2001)
package epa

import (
	"fmt"
	"math"
	"sync"

	"github.com/akmonengine/islet/actor"
	"github.com/akmonengine/islet/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// EPAMaxIterations limits polytope expansion to prevent infinite loops.
	EPAMaxIterations = 32

	// EPAConvergenceTolerance is the minimum improvement in support distance
	// below which the closest face is accepted as final.
	EPAConvergenceTolerance = 0.001

	// EPAMinFaceDistance is the minimum face distance before a face is
	// treated as degenerate and discarded.
	EPAMinFaceDistance = 0.0001

	// NormalSnapThreshold clamps near-zero normal components to exactly
	// zero, which stabilizes axis-aligned contacts (box resting on ground).
	NormalSnapThreshold = 1e-8

	// DegeneratePenetrationEstimate is the fallback penetration depth used
	// when GJK returns an incomplete simplex.
	DegeneratePenetrationEstimate = 0.01

	polytopeInitialCapacity = 16
)

var builderPool = sync.Pool{
	New: func() interface{} {
		return &PolytopeBuilder{
			faces:          make([]Face, 0, polytopeInitialCapacity),
			uniquePoints:   make([]mgl64.Vec3, 0, polytopeInitialCapacity),
			edges:          make([]EdgeEntry, 0, polytopeInitialCapacity),
			visibleIndices: make([]int, 0, polytopeInitialCapacity),
		}
	},
}

// Result is the normal and penetration depth EPA converged on, ready for
// manifold generation. The normal points from a toward b.
type Result struct {
	Normal      mgl64.Vec3
	Penetration float64
}

// EPA computes the separating normal and penetration depth of a and b,
// given the tetrahedron GJK left its simplex in.
func EPA(a, b *actor.RigidBody, simplex *gjk.Simplex) (Result, error) {
	if simplex.Count < 4 {
		return handleDegenerateSimplex(simplex), nil
	}

	builder := builderPool.Get().(*PolytopeBuilder)
	defer builderPool.Put(builder)
	builder.Reset()

	if err := builder.BuildInitialFaces(simplex); err != nil {
		return Result{}, err
	}

	for i := 0; i < EPAMaxIterations; i++ {
		if len(builder.faces) == 0 {
			return Result{}, fmt.Errorf("epa: polytope collapsed to zero faces")
		}

		closestIndex := builder.FindClosestFaceIndex()
		closest := builder.faces[closestIndex]

		if closest.Distance < EPAMinFaceDistance {
			builder.faces = append(builder.faces[:closestIndex], builder.faces[closestIndex+1:]...)
			continue
		}

		support := gjk.MinkowskiSupport(a, b, closest.Normal)
		distance := support.Dot(closest.Normal)

		if distance-closest.Distance < EPAConvergenceTolerance {
			normal := orientNormal(a, b, closest.Normal)
			return Result{Normal: normal, Penetration: closest.Distance}, nil
		}

		if err := builder.AddPointAndRebuildFaces(support, closestIndex); err != nil {
			return Result{}, err
		}
	}

	return Result{}, fmt.Errorf("epa: failed to converge after %d iterations", EPAMaxIterations)
}

// orientNormal makes a contact normal involving a plane point from a toward
// b: along the plane's own normal when a is the plane, against it when b is
// the plane, since an infinite plane's Minkowski difference doesn't
// otherwise constrain which side EPA converges on.
func orientNormal(a, b *actor.RigidBody, normal mgl64.Vec3) mgl64.Vec3 {
	if plane, ok := a.Shape.(*actor.Plane); ok {
		worldNormal := a.Transform.Rotation.Rotate(plane.Normal)
		if normal.Dot(worldNormal) < 0 {
			normal = normal.Mul(-1)
		}
	}
	if plane, ok := b.Shape.(*actor.Plane); ok {
		worldNormal := b.Transform.Rotation.Rotate(plane.Normal)
		if normal.Dot(worldNormal) > 0 {
			normal = normal.Mul(-1)
		}
	}
	return snapNormalToAxis(normal)
}

func handleDegenerateSimplex(simplex *gjk.Simplex) Result {
	if simplex.Count >= 2 {
		a, b := simplex.Points[0], simplex.Points[1]
		distA, distB := a.Len(), b.Len()
		if distA < distB {
			return Result{Normal: a.Normalize(), Penetration: distA}
		}
		return Result{Normal: b.Normalize(), Penetration: distB}
	}

	if simplex.Count == 1 {
		p := simplex.Points[0]
		if p.Len() < NormalSnapThreshold {
			return Result{Normal: mgl64.Vec3{0, 1, 0}, Penetration: DegeneratePenetrationEstimate}
		}
		return Result{Normal: p.Normalize(), Penetration: DegeneratePenetrationEstimate}
	}

	return Result{Normal: mgl64.Vec3{0, 1, 0}, Penetration: DegeneratePenetrationEstimate}
}

// snapNormalToAxis clamps near-zero components of normal to exactly zero
// and renormalizes, stabilizing tangent directions on axis-aligned contacts.
func snapNormalToAxis(normal mgl64.Vec3) mgl64.Vec3 {
	x, y, z := normal[0], normal[1], normal[2]
	if math.Abs(x) < NormalSnapThreshold {
		x = 0
	}
	if math.Abs(y) < NormalSnapThreshold {
		y = 0
	}
	if math.Abs(z) < NormalSnapThreshold {
		z = 0
	}
	clamped := mgl64.Vec3{x, y, z}
	length := clamped.Len()
	if length < 1e-8 {
		return mgl64.Vec3{0, 1, 0}
	}
	return clamped.Mul(1.0 / length)
}

