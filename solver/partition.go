package solver

import (
	"github.com/akmonengine/islet/actor"
	"github.com/akmonengine/islet/geometry"
	"github.com/akmonengine/islet/joint"
)

// PartitionIslands unions bodies connected by a manifold or joint edge via
// union-find, then builds one BodySet island per connected component of
// dynamic bodies. Static bodies never merge two islands together, since
// they cannot transmit a velocity constraint between the dynamic bodies
// touching them.
//
// It returns the populated BodySet plus, for each island id, the
// manifolds and joints that touch one of that island's dynamic bodies (a
// static endpoint belongs to no island) — ready to pass to
// IslandSolver.SolveIsland.
func PartitionIslands(bodies []*actor.RigidBody, manifolds []*geometry.ContactManifold, joints []*joint.Edge) (
	set *BodySet, manifoldsByIsland map[int][]*geometry.ContactManifold, jointsByIsland map[int][]*joint.Edge,
) {
	parent := make(map[*actor.RigidBody]*actor.RigidBody, len(bodies))
	var find func(*actor.RigidBody) *actor.RigidBody
	find = func(b *actor.RigidBody) *actor.RigidBody {
		root := b
		for parent[root] != root {
			root = parent[root]
		}
		for parent[b] != root {
			parent[b], b = root, parent[b]
		}
		return root
	}
	union := func(a, b *actor.RigidBody) {
		if a.BodyType == actor.BodyTypeStatic || b.BodyType == actor.BodyTypeStatic {
			return
		}
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for _, b := range bodies {
		parent[b] = b
	}
	for _, m := range manifolds {
		union(m.BodyA, m.BodyB)
	}
	for _, j := range joints {
		union(j.BodyA, j.BodyB)
	}

	islandOf := make(map[*actor.RigidBody]int, len(bodies))
	nextID := 0
	set = NewBodySet()
	for _, b := range bodies {
		if b.BodyType == actor.BodyTypeStatic {
			continue
		}
		root := find(b)
		id, ok := islandOf[root]
		if !ok {
			id = nextID
			nextID++
			islandOf[root] = id
		}
		islandOf[b] = id
		set.AddToIsland(id, b)
	}

	islandOfDynamic := func(a, b *actor.RigidBody) (int, bool) {
		if id, ok := islandOf[a]; ok {
			return id, true
		}
		if id, ok := islandOf[b]; ok {
			return id, true
		}
		return 0, false
	}

	manifoldsByIsland = make(map[int][]*geometry.ContactManifold)
	for _, m := range manifolds {
		if id, ok := islandOfDynamic(m.BodyA, m.BodyB); ok {
			manifoldsByIsland[id] = append(manifoldsByIsland[id], m)
		}
	}
	jointsByIsland = make(map[int][]*joint.Edge)
	for _, j := range joints {
		if id, ok := islandOfDynamic(j.BodyA, j.BodyB); ok {
			jointsByIsland[id] = append(jointsByIsland[id], j)
		}
	}

	return set, manifoldsByIsland, jointsByIsland
}
