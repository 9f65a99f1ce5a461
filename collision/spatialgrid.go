package collision

import (
	"math"
	"sort"

	"github.com/akmonengine/islet/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// cellKey is a cell's integer coordinates in the uniform grid.
type cellKey struct {
	X, Y, Z int
}

type cell struct {
	bodyIndices []int
}

// SpatialGrid is a uniform-hash broad phase, an alternative to BroadPhase's
// O(n^2) scan for scenes with many bodies clustered into local
// neighborhoods. A channel-based parallel variant was considered and
// dropped: broad-phase pair finding is not on the per-island hot path this
// module optimizes for.
type SpatialGrid struct {
	cellSize float64
	cells    []cell
	cellMask int
}

// NewSpatialGrid builds a grid with cellSize-sized cells hashed into a
// numCells-slot table (rounded up to the next power of two).
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

func (sg *SpatialGrid) clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

func (sg *SpatialGrid) insert(bodyIndex int, body *actor.RigidBody) {
	aabb := body.Shape.GetAABB()
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				idx := sg.hashCell(cellKey{x, y, z})
				sg.cells[idx].bodyIndices = append(sg.cells[idx].bodyIndices, bodyIndex)
			}
		}
	}
}

func (sg *SpatialGrid) sortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
}

// BroadPhase rebuilds the grid from bodies and returns every pair of
// bodies that share at least one cell and whose AABBs overlap, each pair
// reported once with the lower body index as BodyA. An infinite plane
// always pairs with whatever else shares its cell, since a plane's AABB
// already spans the whole grid along its tangent axes.
func (sg *SpatialGrid) BroadPhase(bodies []*actor.RigidBody) []Pair {
	sg.clear()
	for i, b := range bodies {
		sg.insert(i, b)
	}
	sg.sortCells()

	pairs := make([]Pair, 0, len(bodies)/2)
	for bodyIdx, bodyA := range bodies {
		seen := make(map[int]bool)
		minCell := sg.worldToCell(bodyA.Shape.GetAABB().Min)
		maxCell := sg.worldToCell(bodyA.Shape.GetAABB().Max)

		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				for z := minCell.Z; z <= maxCell.Z; z++ {
					idx := sg.hashCell(cellKey{x, y, z})

					for _, otherIdx := range sg.cells[idx].bodyIndices {
						if otherIdx <= bodyIdx || seen[otherIdx] {
							continue
						}
						seen[otherIdx] = true

						bodyB := bodies[otherIdx]
						if bodyA.BodyType == actor.BodyTypeStatic && bodyB.BodyType == actor.BodyTypeStatic {
							continue
						}
						if bodyA.IsSleeping && bodyB.IsSleeping {
							continue
						}

						if bodyA.Shape.GetAABB().Overlaps(bodyB.Shape.GetAABB()) {
							pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB})
						}
					}
				}
			}
		}
	}

	return pairs
}

func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) cellKey {
	return cellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

func (sg *SpatialGrid) hashCell(key cellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}
