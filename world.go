// Package islet ties the actor/geometry/joint/collision/solver packages
// into a runnable simulation: World.Step is the top-level driver that
// advances every body by running collision detection, island partitioning,
// and the PGS/NGS island solver once per substep.
package islet

import (
	"log/slog"

	"github.com/akmonengine/islet/actor"
	"github.com/akmonengine/islet/collision"
	"github.com/akmonengine/islet/geometry"
	"github.com/akmonengine/islet/joint"
	"github.com/akmonengine/islet/solver"
	"github.com/go-gl/mathgl/mgl64"
)

// World owns every body and joint edge in one simulation and advances them
// by calling collision detection, island partitioning, and the island
// solver once per substep.
type World struct {
	Bodies []*actor.RigidBody
	Joints []*joint.Edge

	Gravity  mgl64.Vec3
	Params   solver.IntegrationParameters
	Substeps int

	// Grid, if non-nil, replaces collision.BroadPhase with the
	// spatial-hash broad phase for scenes with many bodies.
	Grid *collision.SpatialGrid

	Runner solver.IslandRunner
	Events Events
}

// NewWorld returns a World ready to accept bodies and joints, with its
// event bookkeeping initialized.
func NewWorld(gravity mgl64.Vec3, params solver.IntegrationParameters, substeps int) *World {
	return &World{
		Gravity:  gravity,
		Params:   params,
		Substeps: max(1, substeps),
		Events:   NewEvents(),
	}
}

// AddBody adds a rigid body to the world.
func (w *World) AddBody(body *actor.RigidBody) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a rigid body and forgets its event history.
func (w *World) RemoveBody(body *actor.RigidBody) {
	for i, b := range w.Bodies {
		if b == body {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			break
		}
	}
	w.Events.forgetBody(body)
}

// AddJoint adds a joint edge to the world.
func (w *World) AddJoint(edge *joint.Edge) {
	w.Joints = append(w.Joints, edge)
}

// Step advances the world by dt, split into w.Substeps equal sub-intervals
// of detect collision -> partition into islands -> per-island
// assemble/integrate/solve. Collision detection runs against each
// substep's pre-integration transforms; IslandSolver.SolveIsland performs
// the actual position/velocity integration once the constraints referencing
// those transforms are assembled.
func (w *World) Step(dt float64) {
	h := dt / float64(w.Substeps)
	if w.Params.Dt != h {
		w.Params.Dt = h
	}

	for i := 0; i < w.Substeps; i++ {
		manifolds := w.detectCollision()
		manifolds = w.Events.recordManifolds(manifolds)

		bodySet, manifoldsByIsland, jointsByIsland := solver.PartitionIslands(w.Bodies, manifolds, w.Joints)
		w.Runner.Run(&w.Params, w.Gravity, bodySet, manifoldsByIsland, jointsByIsland)

		for _, body := range w.Bodies {
			body.TrySleep(h, 0.5, 0.05)
		}
	}

	w.Events.processSleepEvents(w.Bodies)
	w.Events.flush()
}

func (w *World) detectCollision() []*geometry.ContactManifold {
	var pairs []collision.Pair
	if w.Grid != nil {
		pairs = w.Grid.BroadPhase(w.Bodies)
	} else {
		pairs = collision.BroadPhase(w.Bodies)
	}

	manifolds := collision.NarrowPhase(pairs)
	slog.Debug("islet: step narrow phase", "pairs", len(pairs), "manifolds", len(manifolds))
	return manifolds
}
