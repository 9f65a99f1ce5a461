package solver

import (
	"github.com/akmonengine/islet/actor"
	"github.com/akmonengine/islet/geometry"
	"github.com/akmonengine/islet/joint"
	"github.com/go-gl/mathgl/mgl64"
)

// islandPhase names one step of an island's state machine: assembly builds
// the constraint store, integration advances bodies under gravity and
// accumulated forces, velocity resolution runs the PGS velocity pass, and
// position resolution runs the NGS position pass before the island returns
// to idle.
type islandPhase int

const (
	phaseIdle islandPhase = iota
	phaseAssembled
	phaseIntegrated
	phaseVelocitySolved
	phasePositionSolved
)

// IslandSolver drives one island's full step: assemble, integrate, solve
// velocity, solve position, every phase bracketed by Counters so a caller
// can see where the time in a step went.
type IslandSolver struct {
	store    ConstraintStore
	velocity VelocitySolver
	position PositionSolver
	phase    islandPhase
}

// New returns an IslandSolver ready to drive one island. A fresh
// IslandSolver per island lets IslandRunner give each goroutine its own
// ConstraintStore and DeltaVelBuffer without sharing mutable state across
// islands.
func New() *IslandSolver {
	return &IslandSolver{}
}

// SolveIsland runs bodies in islandID through one full step. Every phase's
// Resume/Pause pair is deferred immediately after Resume so a panicking
// constraint (e.g. a malformed manifold) still leaves the counters in a
// consistent paused state. An island with no manifolds and no joints skips
// assembly and both PGS passes entirely; integration still runs, since a
// free body in an otherwise empty island still needs to move under gravity.
func (s *IslandSolver) SolveIsland(
	islandID int,
	counters *Counters,
	params *IntegrationParameters,
	gravity mgl64.Vec3,
	bodies BodyAccessor,
	manifolds []*geometry.ContactManifold,
	joints []*joint.Edge,
) {
	if len(manifolds) == 0 && len(joints) == 0 {
		s.integrate(counters, params, gravity, islandID, bodies)
		s.phase = phaseIdle
		return
	}

	s.assemble(counters, params, islandID, bodies, manifolds, joints)
	s.integrate(counters, params, gravity, islandID, bodies)
	s.solveVelocity(counters, params, bodies, islandID)
	s.solvePosition(counters, params)
	s.phase = phaseIdle
}

// groundSlot returns the DeltaVelBuffer index reserved for bodies outside
// islandID's active set — static (and future kinematic) bodies a manifold
// or joint edge references. Those bodies are never added to a BodySet, so
// their ActiveSetOffset is meaningless for this island; reading it directly
// would alias whatever dynamic body happens to hold slot 0, corrupting that
// body's delta-velocity update in ContactVelocityConstraint.Solve. Computing the
// slot functionally (rather than writing it onto the shared body) also
// keeps this race-free when IslandRunner solves islands concurrently and
// the same static body — e.g. the ground plane — is touched by several of
// them at once.
func groundSlot(islandID int, bodies BodyAccessor) int {
	return bodies.ActiveBodyCount(islandID)
}

func (s *IslandSolver) assemble(counters *Counters, params *IntegrationParameters, islandID int, bodies BodyAccessor, manifolds []*geometry.ContactManifold, joints []*joint.Edge) {
	counters.VelocityAssembly.Resume()
	defer counters.VelocityAssembly.Pause()

	s.store.Assemble(params, groundSlot(islandID, bodies), manifolds, joints)
	s.phase = phaseAssembled
}

func (s *IslandSolver) integrate(counters *Counters, params *IntegrationParameters, gravity mgl64.Vec3, islandID int, bodies BodyAccessor) {
	counters.Integration.Resume()
	defer counters.Integration.Pause()

	bodies.ForEachActiveIslandBody(islandID, func(_ int, rb *actor.RigidBody) {
		rb.Integrate(params.Dt, gravity)
	})
	s.phase = phaseIntegrated
}

func (s *IslandSolver) solveVelocity(counters *Counters, params *IntegrationParameters, bodies BodyAccessor, islandID int) {
	counters.VelocityResolution.Resume()
	defer counters.VelocityResolution.Pause()

	s.velocity.Solve(params, bodies, islandID, &s.store)
	s.phase = phaseVelocitySolved
}

func (s *IslandSolver) solvePosition(counters *Counters, params *IntegrationParameters) {
	counters.PositionResolution.Resume()
	defer counters.PositionResolution.Pause()

	s.position.Solve(params, &s.store)
	s.phase = phasePositionSolved
}
