// Package joint describes the bilateral kinematic constraints the solver
// resolves alongside contacts: point-to-point (ball) and axis-aligned
// (hinge) joints between two rigid bodies. It is deliberately small — how
// edges are indexed per island lives in the solver package; this package
// only describes one edge's kinematics.
//
// The ball and hinge flavors are grounded on gazed-vu's PBD joint
// constraints (positional_Constraint, hinge_Joint_Constraint in
// physics/pbd.go), re-expressed as the anchor/axis descriptors the solver
// package turns into velocity and position constraint rows.
package joint

import (
	"github.com/akmonengine/islet/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Kind identifies which concrete joint flavor an Edge carries.
type Kind int

const (
	KindBall Kind = iota
	KindHinge
)

// Ball is a point-to-point joint: the anchor on BodyA must coincide with
// the anchor on BodyB in world space. It removes all 3 relative linear
// degrees of freedom at the anchor and none of the angular ones.
type Ball struct {
	LocalAnchorA, LocalAnchorB mgl64.Vec3
}

// Hinge is a revolute joint: in addition to the Ball constraint at its
// anchor, it locks the 2 angular degrees of freedom perpendicular to its
// axis, leaving exactly one free rotational degree of freedom about that
// axis. Limited, when true, additionally bounds that rotation to
// [LowerLimit, UpperLimit] radians (radians measured from the joint's rest
// pose); this module does not implement the limit row — see DESIGN.md.
type Hinge struct {
	LocalAnchorA, LocalAnchorB mgl64.Vec3
	LocalAxisA, LocalAxisB     mgl64.Vec3
	Limited                    bool
	LowerLimit, UpperLimit     float64
}

// Edge is one joint connecting two bodies, analogous to a ContactManifold
// but for a bilateral constraint instead of a unilateral one. Exactly one
// of Ball/Hinge is meaningful, selected by Kind.
type Edge struct {
	BodyA, BodyB *actor.RigidBody
	Kind         Kind
	Ball         Ball
	Hinge        Hinge

	// ImpulseCache persists the previous step's accumulated impulses for
	// warm-starting, mirroring geometry.ContactImpulseCache. Index 0..2 are
	// the point-to-point rows; 3..4 (hinge only) are the angular rows.
	ImpulseCache [5]float64
}

// NewBall builds a ball-joint edge anchored at the given local-space points.
func NewBall(bodyA, bodyB *actor.RigidBody, localAnchorA, localAnchorB mgl64.Vec3) *Edge {
	return &Edge{
		BodyA: bodyA,
		BodyB: bodyB,
		Kind:  KindBall,
		Ball:  Ball{LocalAnchorA: localAnchorA, LocalAnchorB: localAnchorB},
	}
}

// NewHinge builds an unlimited hinge-joint edge about the given local axes.
func NewHinge(bodyA, bodyB *actor.RigidBody, localAnchorA, localAnchorB, localAxisA, localAxisB mgl64.Vec3) *Edge {
	return &Edge{
		BodyA: bodyA,
		BodyB: bodyB,
		Kind:  KindHinge,
		Hinge: Hinge{
			LocalAnchorA: localAnchorA,
			LocalAnchorB: localAnchorB,
			LocalAxisA:   localAxisA.Normalize(),
			LocalAxisB:   localAxisB.Normalize(),
		},
	}
}
