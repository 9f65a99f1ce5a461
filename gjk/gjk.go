// Package gjk implements Gilbert-Johnson-Keerthi convex overlap testing,
// the narrow-phase test collision.NarrowPhase runs on every broad-phase
// pair before handing a confirmed overlap to epa for penetration depth and
// a contact manifold.
package gjk

import (
	"sync"

	"github.com/akmonengine/islet/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Simplex holds the 1-4 points GJK has accumulated so far in the Minkowski
// difference A-B. On a confirmed collision it usually ends as a tetrahedron
// (4 points) enclosing the origin, which epa.EPA expands from directly; a
// degenerate overlap (the first support point at the origin, or the origin
// on a segment) ends with 1 or 2 points, which epa.EPA handles separately.
type Simplex struct {
	Points [4]mgl64.Vec3
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

// SimplexPool lets collision.NarrowPhase reuse one Simplex per broad-phase
// pair per step instead of allocating one every call.
var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex{}
	},
}

// MinkowskiSupport returns the Minkowski-difference support point of a and b
// along direction: a's own extreme point minus b's extreme point in the
// opposite direction. This is the only query GJK needs from either body, so
// any convex actor.Shape works without exposing its geometry.
func MinkowskiSupport(a, b *actor.RigidBody, direction mgl64.Vec3) mgl64.Vec3 {
	supportA := a.SupportWorld(direction)
	supportB := b.SupportWorld(direction.Mul(-1))
	return supportA.Sub(supportB)
}

// GJK reports whether a and b overlap, building simplex toward the origin
// of their Minkowski difference as it goes. A true result usually leaves
// simplex as a tetrahedron ready for EPA (see Simplex for the degenerate
// cases); a false result means the early-exit test
// proved separation before the simplex could close around the origin.
func GJK(a, b *actor.RigidBody, simplex *Simplex) bool {
	direction := b.Transform.Position.Sub(a.Transform.Position)
	if direction.LenSqr() < 1e-8 {
		direction = mgl64.Vec3{1, 0, 0}
	}

	simplex.Points[0] = MinkowskiSupport(a, b, direction)
	simplex.Count = 1

	direction = simplex.Points[0].Mul(-1)
	if direction.LenSqr() < 1e-16 {
		return true
	}

	const maxIterations = 32
	for i := 0; i < maxIterations; i++ {
		newPoint := MinkowskiSupport(a, b, direction)

		// newPoint didn't pass the origin along direction: the Minkowski
		// difference can't reach it, so the shapes are separated.
		if newPoint.Dot(direction) <= 0 {
			return false
		}

		simplex.Points[simplex.Count] = newPoint
		simplex.Count++

		if containsOrigin(simplex, &direction) {
			return true
		}
	}

	return false
}

// containsOrigin reduces simplex to whichever sub-feature is closest to the
// origin and points direction at it, reporting true once a tetrahedron is
// found to enclose the origin or the origin is found on a segment.
func containsOrigin(simplex *Simplex, direction *mgl64.Vec3) bool {
	switch simplex.Count {
	case 2:
		return line(simplex, direction)
	case 3:
		return triangle(simplex, direction)
	case 4:
		return tetrahedron(simplex, direction)
	}
	return false
}

// line resolves the 2-point simplex case by testing the Voronoi regions of
// segment AB. It returns true only when the origin lies on the segment
// itself (including a degenerate segment whose points coincide at the
// origin); an origin on AB's line but past B reduces the simplex to B.
func line(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[1]
	b := simplex.Points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	if ab.LenSqr() < 1e-8 {
		if ao.LenSqr() < 1e-8 {
			return true
		}
		simplex.Points[0] = a
		simplex.Count = 1
		*direction = ao
		return false
	}

	if ab.Dot(ao) <= 0 {
		simplex.Points[0] = a
		simplex.Count = 1
		*direction = ao
		return false
	}

	abPerp := ab.Cross(ao).Cross(ab)
	if abPerp.LenSqr() < 1e-8 {
		bo := b.Mul(-1)
		if ab.Dot(bo) > 0 {
			simplex.Points[0] = b
			simplex.Count = 1
			*direction = bo
			return false
		}
		return true
	}

	*direction = abPerp
	return false
}

// triangle resolves the 3-point simplex case across its edge and face
// regions, falling back to line for a degenerate (collinear) triangle.
// Outside that fallback it never reports overlap, since a triangle cannot
// enclose the origin in 3D.
func triangle(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[2]
	b := simplex.Points[1]
	c := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	abc := ab.Cross(ac)

	if abc.LenSqr() < 1e-10 {
		simplex.Points[0] = b
		simplex.Points[1] = a
		simplex.Count = 2
		return line(simplex, direction)
	}

	abPerp := ab.Cross(abc)
	if abPerp.Dot(ao) > 0 {
		simplex.Points[0] = b
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = ab.Cross(ao).Cross(ab)
		return false
	}

	acPerp := abc.Cross(ac)
	if acPerp.Dot(ao) > 0 {
		simplex.Points[0] = c
		simplex.Points[1] = a
		simplex.Count = 2
		*direction = ac.Cross(ao).Cross(ac)
		return false
	}

	if abc.Dot(ao) > 0 {
		*direction = abc
	} else {
		simplex.Points[0] = a
		simplex.Points[1] = c
		simplex.Points[2] = b
		simplex.Count = 3
		*direction = abc.Mul(-1)
	}

	return false
}

// tetrahedron resolves the 4-point simplex case, the one that reports an
// enclosed origin: it checks the origin against all three new faces
// sharing the most recent point, reducing to triangle on whichever face the
// origin is outside of, and falling back to triangle on a degenerate
// (flat) tetrahedron.
func tetrahedron(simplex *Simplex, direction *mgl64.Vec3) bool {
	a := simplex.Points[3]
	b := simplex.Points[2]
	c := simplex.Points[1]
	d := simplex.Points[0]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	// Face normals point away from the vertex opposite each face.
	abc := ab.Cross(ac)
	if abc.Dot(ad) > 0 {
		abc = abc.Mul(-1)
	}

	acd := ac.Cross(ad)
	if acd.Dot(ab) > 0 {
		acd = acd.Mul(-1)
	}

	adb := ad.Cross(ab)
	if adb.Dot(ac) > 0 {
		adb = adb.Mul(-1)
	}

	if abc.LenSqr() < 1e-10 || acd.LenSqr() < 1e-10 || adb.LenSqr() < 1e-10 {
		simplex.Points[0] = c
		simplex.Points[1] = b
		simplex.Points[2] = a
		simplex.Count = 3
		return triangle(simplex, direction)
	}

	if abc.Dot(ao) > 0 {
		simplex.Points[0] = c
		simplex.Points[1] = b
		simplex.Points[2] = a
		simplex.Count = 3
		return triangle(simplex, direction)
	}

	if acd.Dot(ao) > 0 {
		simplex.Points[0] = d
		simplex.Points[1] = c
		simplex.Points[2] = a
		simplex.Count = 3
		return triangle(simplex, direction)
	}

	if adb.Dot(ao) > 0 {
		simplex.Points[0] = b
		simplex.Points[1] = d
		simplex.Points[2] = a
		simplex.Count = 3
		return triangle(simplex, direction)
	}

	return true
}
