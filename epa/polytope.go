package epa

import (
	"fmt"
	"math"
	"sync"

	"github.com/akmonengine/islet/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// PolytopeBuilder expands the GJK termination simplex into the polytope EPA
// walks to find penetration depth and normal, reusing its buffers across
// calls so a step's worth of narrow-phase pairs allocates nothing.
type PolytopeBuilder struct {
	faces []Face

	// uniquePoints is a sorted dedup buffer calculateCentroid rebuilds each
	// call via binary search, not an incrementally maintained set.
	uniquePoints []mgl64.Vec3

	// edges counts each candidate edge's occurrences across the visible
	// region; an edge occurring once is a boundary edge, twice is interior.
	edges []EdgeEntry

	visibleIndices []int
	tempFace       Face
}

// EdgeEntry is one candidate edge with its occurrence count across the
// visible faces being removed. A and B are normalized (A <= B
// lexicographically) so two faces sharing an edge hash to the same entry
// regardless of winding.
type EdgeEntry struct {
	A, B  mgl64.Vec3
	Count int
}

var polytopeBuilderPool = sync.Pool{
	New: func() interface{} {
		return &PolytopeBuilder{
			faces:          make([]Face, 0, polytopeInitialCapacity),
			uniquePoints:   make([]mgl64.Vec3, 0, polytopeInitialCapacity),
			edges:          make([]EdgeEntry, 0, polytopeInitialCapacity),
			visibleIndices: make([]int, 0, polytopeInitialCapacity),
		}
	},
}

// Reset clears a pooled builder's buffers for reuse without reallocating.
func (b *PolytopeBuilder) Reset() {
	b.faces = b.faces[:0]
	b.uniquePoints = b.uniquePoints[:0]
	b.edges = b.edges[:0]
	b.visibleIndices = b.visibleIndices[:0]
}

// BuildInitialFaces turns GJK's terminating tetrahedron into the polytope's
// 4 starting faces, discarding any whose area is too small to trust and
// falling back to keeping all 4 if filtering would leave fewer than 3.
func (b *PolytopeBuilder) BuildInitialFaces(simplex *gjk.Simplex) error {
	if simplex.Count != 4 {
		return fmt.Errorf("invalid simplex count: %d (expected 4)", simplex.Count)
	}

	p0, p1, p2, p3 := simplex.Points[0], simplex.Points[1], simplex.Points[2], simplex.Points[3]

	candidateFaces := [4]Face{
		b.createFaceOutward(p0, p1, p2, p3),
		b.createFaceOutward(p0, p2, p3, p1),
		b.createFaceOutward(p0, p3, p1, p2),
		b.createFaceOutward(p1, p3, p2, p0),
	}

	for i := 0; i < 4; i++ {
		if candidateFaces[i].Distance >= EPAMinFaceDistance {
			b.faces = append(b.faces, candidateFaces[i])
		}
	}

	if len(b.faces) < 3 {
		b.faces = b.faces[:0]
		for i := 0; i < 4; i++ {
			b.faces = append(b.faces, candidateFaces[i])
		}
	}

	return nil
}

// createFaceOutward builds the triangle p0-p1-p2, orienting its normal away
// from oppositePoint (the tetrahedron vertex not on this face, or the
// polytope centroid when expanding) and clamping its origin distance to
// EPAMinFaceDistance to keep a degenerate or near-origin face from stalling
// FindClosestFaceIndex.
func (b *PolytopeBuilder) createFaceOutward(p0, p1, p2, oppositePoint mgl64.Vec3) Face {
	var face Face
	face.Points = [3]mgl64.Vec3{p0, p1, p2}

	edge1 := p1.Sub(p0)
	edge2 := p2.Sub(p0)
	normal := edge1.Cross(edge2)

	normalLength := math.Sqrt(normal.Dot(normal))
	if normalLength < 1e-8 {
		face.Normal = mgl64.Vec3{0, 1, 0}
		face.Distance = EPAMinFaceDistance
		return face
	}
	normal = normal.Mul(1.0 / normalLength)

	toOpposite := oppositePoint.Sub(p0)
	if normal.Dot(toOpposite) > 0 {
		normal = normal.Mul(-1)
	}

	distance := p0.Dot(normal)
	if distance < 0 {
		normal = normal.Mul(-1)
		distance = -distance
	}
	if distance < EPAMinFaceDistance {
		distance = EPAMinFaceDistance
	}

	face.Normal = snapNormalToAxis(normal)
	face.Distance = distance

	return face
}

// FindClosestFaceIndex returns the face nearest the origin, the one EPA
// expands from next; -1 if the polytope is empty.
func (b *PolytopeBuilder) FindClosestFaceIndex() int {
	if len(b.faces) == 0 {
		return -1
	}

	closestIndex := 0
	minDistance := b.faces[0].Distance

	for i := 1; i < len(b.faces); i++ {
		if b.faces[i].Distance < minDistance {
			closestIndex = i
			minDistance = b.faces[i].Distance
		}
	}

	return closestIndex
}

// calculateCentroid averages every distinct vertex across the current
// faces, used as addBoundaryFaces' orientation reference when the polytope
// has no single "opposite vertex" left to orient a new face against.
func (b *PolytopeBuilder) calculateCentroid() mgl64.Vec3 {
	b.uniquePoints = b.uniquePoints[:0]

	for i := 0; i < len(b.faces); i++ {
		face := &b.faces[i]
		for j := 0; j < 3; j++ {
			point := face.Points[j]

			insertIdx := b.findPointInsertionIndex(point)
			if insertIdx < len(b.uniquePoints) && vec3Equal(b.uniquePoints[insertIdx], point) {
				continue
			}

			if cap(b.uniquePoints) == len(b.uniquePoints) {
				newCap := len(b.uniquePoints) * 2
				if newCap == 0 {
					newCap = polytopeInitialCapacity
				}
				newPoints := make([]mgl64.Vec3, len(b.uniquePoints), newCap)
				copy(newPoints, b.uniquePoints)
				b.uniquePoints = newPoints
			}

			b.uniquePoints = append(b.uniquePoints, mgl64.Vec3{})
			copy(b.uniquePoints[insertIdx+1:], b.uniquePoints[insertIdx:])
			b.uniquePoints[insertIdx] = point
		}
	}

	if len(b.uniquePoints) == 0 {
		return mgl64.Vec3{0, 0, 0}
	}

	sum := mgl64.Vec3{0, 0, 0}
	for i := 0; i < len(b.uniquePoints); i++ {
		sum = sum.Add(b.uniquePoints[i])
	}

	return sum.Mul(1.0 / float64(len(b.uniquePoints)))
}

// findPointInsertionIndex binary-searches uniquePoints (sorted by
// compareVec3) for point's insertion slot.
func (b *PolytopeBuilder) findPointInsertionIndex(point mgl64.Vec3) int {
	left, right := 0, len(b.uniquePoints)

	for left < right {
		mid := (left + right) / 2
		cmp := compareVec3(b.uniquePoints[mid], point)

		if cmp < 0 {
			left = mid + 1
		} else {
			right = mid
		}
	}

	return left
}

// findBoundaryEdges collects the edges of every visible face and keeps only
// the ones that appear once: an edge shared by two visible faces is
// interior to the region being peeled off and must not get a new face.
func (b *PolytopeBuilder) findBoundaryEdges() error {
	b.edges = b.edges[:0]

	for i := 0; i < len(b.visibleIndices); i++ {
		faceIdx := b.visibleIndices[i]
		face := &b.faces[faceIdx]

		edges := [3][2]mgl64.Vec3{
			{face.Points[0], face.Points[1]},
			{face.Points[1], face.Points[2]},
			{face.Points[2], face.Points[0]},
		}

		for _, edge := range edges {
			edgeA, edgeB := edge[0], edge[1]
			if compareVec3(edgeA, edgeB) > 0 {
				edgeA, edgeB = edgeB, edgeA
			}

			edgeIdx := b.findEdgeIndex(edgeA, edgeB)
			if edgeIdx >= 0 {
				b.edges[edgeIdx].Count++
			} else {
				b.edges = append(b.edges, EdgeEntry{
					A:     edgeA,
					B:     edgeB,
					Count: 1,
				})
			}
		}
	}

	return nil
}

// findEdgeIndex linear-scans b.edges for (edgeA, edgeB); a visible region
// rarely has more than a few dozen candidate edges, so this beats the
// bookkeeping a map would need.
func (b *PolytopeBuilder) findEdgeIndex(edgeA, edgeB mgl64.Vec3) int {
	for i := 0; i < len(b.edges); i++ {
		edge := &b.edges[i]
		if vec3Equal(edge.A, edgeA) && vec3Equal(edge.B, edgeB) {
			return i
		}
	}
	return -1
}

// findVisibleFaces marks every face the support point lies in front of
// (on the outward-normal side) as part of the region AddPointAndRebuildFaces
// is about to peel off and replace.
func (b *PolytopeBuilder) findVisibleFaces(support mgl64.Vec3) {
	b.visibleIndices = b.visibleIndices[:0]

	for i := 0; i < len(b.faces); i++ {
		face := &b.faces[i]
		toSupport := support.Sub(face.Points[0])

		if toSupport.Dot(face.Normal) > 0 {
			b.visibleIndices = append(b.visibleIndices, i)
		}
	}
}

// removeVisibleFaces drops the faces in visibleIndices via swap-with-last,
// processing indices highest-first so an earlier swap never invalidates a
// later index still pending removal.
func (b *PolytopeBuilder) removeVisibleFaces() {
	for i := 0; i < len(b.visibleIndices)-1; i++ {
		for j := i + 1; j < len(b.visibleIndices); j++ {
			if b.visibleIndices[i] < b.visibleIndices[j] {
				b.visibleIndices[i], b.visibleIndices[j] = b.visibleIndices[j], b.visibleIndices[i]
			}
		}
	}

	for i := 0; i < len(b.visibleIndices); i++ {
		idx := b.visibleIndices[i]

		if idx < len(b.faces) {
			b.faces[idx] = b.faces[len(b.faces)-1]
			b.faces = b.faces[:len(b.faces)-1]
		}
	}
}

// addBoundaryFaces cones each boundary edge found by findBoundaryEdges to
// the new support point, re-closing the polytope around it.
func (b *PolytopeBuilder) addBoundaryFaces(support mgl64.Vec3, centroid mgl64.Vec3) error {
	for i := 0; i < len(b.edges); i++ {
		edge := &b.edges[i]
		if edge.Count != 1 {
			continue
		}

		newFace := b.createFaceOutward(edge.A, edge.B, support, centroid)
		b.faces = append(b.faces, newFace)
	}

	return nil
}

// AddPointAndRebuildFaces is one EPA expansion step: peel off the faces
// visible from support, find the boundary of the hole they leave, and cone
// that boundary to support to close the polytope back up. closestIndex is
// used as a last-resort visible set if support would otherwise see every
// face (a polytope can't shrink to nothing).
func (b *PolytopeBuilder) AddPointAndRebuildFaces(support mgl64.Vec3, closestIndex int) error {
	centroid := b.calculateCentroid()

	b.findVisibleFaces(support)
	if len(b.visibleIndices) >= len(b.faces) {
		b.visibleIndices = b.visibleIndices[:0]
		b.visibleIndices = append(b.visibleIndices, closestIndex)
	}

	if err := b.findBoundaryEdges(); err != nil {
		return err
	}

	b.removeVisibleFaces()

	if err := b.addBoundaryFaces(support, centroid); err != nil {
		return err
	}

	if len(b.faces) == 0 {
		b.faces = append(b.faces, Face{
			Points:   [3]mgl64.Vec3{support, support, support},
			Normal:   mgl64.Vec3{0, 1, 0},
			Distance: EPAMinFaceDistance,
		})
	}

	return nil
}

// GetClosestFace returns the face FindClosestFaceIndex picks, or nil for an
// empty polytope.
func (b *PolytopeBuilder) GetClosestFace() *Face {
	if len(b.faces) == 0 {
		return nil
	}
	idx := b.FindClosestFaceIndex()
	return &b.faces[idx]
}

// vec3Equal is exact equality, not tolerance-based: point dedup only needs
// to catch literal duplicates produced by shared tetrahedron vertices.
func vec3Equal(a, b mgl64.Vec3) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}
