package actor

import "github.com/go-gl/mathgl/mgl64"

// AABB is a world-space axis-aligned bounding box, recomputed by
// RigidBody.Integrate every step and tested by collision.BroadPhase and
// collision.SpatialGrid before either commits to a narrow-phase GJK/EPA
// pair.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint reports whether point lies within the box on all 3 axes.
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps reports whether a and other intersect on all 3 axes.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}
