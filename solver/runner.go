package solver

import (
	"sync"

	"github.com/akmonengine/islet/geometry"
	"github.com/akmonengine/islet/joint"
	"github.com/go-gl/mathgl/mgl64"
)

// IslandRunner drives every island of a step concurrently, one goroutine
// per island and one IslandSolver per goroutine: each unit of work is
// already its own island, so the chunk size is always 1 and the wait group
// simply counts islands.
type IslandRunner struct {
	Counters Counters
}

// Run solves concurrently every island id from 0 upward that has at least
// one active body (the numbering PartitionIslands produces), plus any other
// island id keyed in manifoldsByIsland/jointsByIsland. An island with
// neither manifolds nor joints still goes through SolveIsland, so its
// bodies are integrated. bodies must tolerate concurrent
// ForEachActiveIslandBody/ActiveBodyCount calls across distinct island ids.
// RigidBody.Mutex is not used here: islands share no dynamic body, while a
// static body such as the ground plane may be referenced by several islands.
func (r *IslandRunner) Run(
	params *IntegrationParameters,
	gravity mgl64.Vec3,
	bodies BodyAccessor,
	manifoldsByIsland map[int][]*geometry.ContactManifold,
	jointsByIsland map[int][]*joint.Edge,
) {
	islandIDs := make([]int, 0, len(manifoldsByIsland)+len(jointsByIsland))
	seen := make(map[int]bool)
	for id := 0; bodies.ActiveBodyCount(id) > 0; id++ {
		seen[id] = true
		islandIDs = append(islandIDs, id)
	}
	for id := range manifoldsByIsland {
		if !seen[id] {
			seen[id] = true
			islandIDs = append(islandIDs, id)
		}
	}
	for id := range jointsByIsland {
		if !seen[id] {
			seen[id] = true
			islandIDs = append(islandIDs, id)
		}
	}

	var wg sync.WaitGroup
	perIslandCounters := make([]Counters, len(islandIDs))

	for i, islandID := range islandIDs {
		wg.Add(1)
		go func(i, islandID int) {
			defer wg.Done()
			solver := New()
			solver.SolveIsland(islandID, &perIslandCounters[i], params, gravity, bodies, manifoldsByIsland[islandID], jointsByIsland[islandID])
		}(i, islandID)
	}
	wg.Wait()

	r.Counters.Reset()
	for i := range perIslandCounters {
		r.Counters.VelocityAssembly.total += perIslandCounters[i].VelocityAssembly.Total()
		r.Counters.Integration.total += perIslandCounters[i].Integration.Total()
		r.Counters.VelocityResolution.total += perIslandCounters[i].VelocityResolution.Total()
		r.Counters.PositionResolution.total += perIslandCounters[i].PositionResolution.Total()
	}
}
