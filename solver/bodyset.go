package solver

import "github.com/akmonengine/islet/actor"

// BodyAccessor is the bodies-store interface the island solver consumes:
// indexed access plus an iterator over one island's active bodies that the
// store promises to invoke exactly once per body.
type BodyAccessor interface {
	ForEachActiveIslandBody(islandID int, f func(slot int, rb *actor.RigidBody))
	ActiveBodyCount(islandID int) int
}

// BodySet is the minimal concrete BodyAccessor used by tests and the demo
// command. It groups bodies into islands by explicit assignment
// (AddToIsland) or via PartitionIslands, and assigns each body's
// ActiveSetOffset when the island is built.
type BodySet struct {
	islands map[int][]*actor.RigidBody
}

// NewBodySet returns an empty set.
func NewBodySet() *BodySet {
	return &BodySet{islands: make(map[int][]*actor.RigidBody)}
}

// AddToIsland assigns rb to islandID and gives it the next free
// ActiveSetOffset within that island.
func (s *BodySet) AddToIsland(islandID int, rb *actor.RigidBody) {
	bodies := s.islands[islandID]
	rb.ActiveSetOffset = len(bodies)
	s.islands[islandID] = append(bodies, rb)
}

// ActiveBodyCount returns how many bodies were assigned to islandID.
func (s *BodySet) ActiveBodyCount(islandID int) int {
	return len(s.islands[islandID])
}

// ForEachActiveIslandBody invokes f once per body of islandID, in
// ActiveSetOffset order.
func (s *BodySet) ForEachActiveIslandBody(islandID int, f func(slot int, rb *actor.RigidBody)) {
	for _, rb := range s.islands[islandID] {
		f(rb.ActiveSetOffset, rb)
	}
}
