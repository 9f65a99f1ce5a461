package epa

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Face is one triangular face of the polytope PolytopeBuilder expands
// during EPA: 3 vertices, an outward normal, and the face plane's distance
// from the origin, which drives which face to expand from next.
type Face struct {
	Points   [3]mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// compareVec3 orders two vectors lexicographically by x, then y, then z.
// PolytopeBuilder.findBoundaryEdges uses it to normalize an edge's vertex
// order so two faces sharing an edge produce the same key regardless of
// winding.
func compareVec3(a, b mgl64.Vec3) int {
	if a[0] != b[0] {
		if a[0] < b[0] {
			return -1
		}
		return 1
	}
	if a[1] != b[1] {
		if a[1] < b[1] {
			return -1
		}
		return 1
	}
	if a[2] != b[2] {
		if a[2] < b[2] {
			return -1
		}
		return 1
	}
	return 0
}
