package islet

import (
	"unsafe"

	"github.com/akmonengine/islet/actor"
	"github.com/akmonengine/islet/geometry"
)

// EventType identifies the kind of world-level notification carried by an
// Event.
type EventType uint8

const (
	TriggerEnter EventType = iota
	CollisionEnter
	TriggerStay
	CollisionStay
	TriggerExit
	CollisionExit
	OnSleep
	OnWake
)

// Event is implemented by every notification World.Events can emit.
type Event interface {
	Type() EventType
}

type TriggerEnterEvent struct{ BodyA, BodyB *actor.RigidBody }
type TriggerStayEvent struct{ BodyA, BodyB *actor.RigidBody }
type TriggerExitEvent struct{ BodyA, BodyB *actor.RigidBody }
type CollisionEnterEvent struct{ BodyA, BodyB *actor.RigidBody }
type CollisionStayEvent struct{ BodyA, BodyB *actor.RigidBody }
type CollisionExitEvent struct{ BodyA, BodyB *actor.RigidBody }
type SleepEvent struct{ Body *actor.RigidBody }
type WakeEvent struct{ Body *actor.RigidBody }

func (TriggerEnterEvent) Type() EventType   { return TriggerEnter }
func (TriggerStayEvent) Type() EventType    { return TriggerStay }
func (TriggerExitEvent) Type() EventType    { return TriggerExit }
func (CollisionEnterEvent) Type() EventType { return CollisionEnter }
func (CollisionStayEvent) Type() EventType  { return CollisionStay }
func (CollisionExitEvent) Type() EventType  { return CollisionExit }
func (SleepEvent) Type() EventType          { return OnSleep }
func (WakeEvent) Type() EventType           { return OnWake }

// EventListener is a callback subscribed to one EventType.
type EventListener func(event Event)

type pairKey struct {
	bodyA *actor.RigidBody
	bodyB *actor.RigidBody
}

// makePairKey normalizes a pair's ordering by pointer address so (A,B) and
// (B,A) hash identically.
func makePairKey(bodyA, bodyB *actor.RigidBody) pairKey {
	ptrA := uintptr(unsafe.Pointer(bodyA))
	ptrB := uintptr(unsafe.Pointer(bodyB))
	if ptrB < ptrA {
		bodyA, bodyB = bodyB, bodyA
	}
	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

// Events tracks manifold and sleep-state transitions across steps and
// turns them into Enter/Stay/Exit/Sleep/Wake notifications. It is the only
// source of TriggerEnter/Exit-style events in this module: the solver
// itself never inspects IsTrigger.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event

	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool

	sleepStates map[*actor.RigidBody]bool
}

// NewEvents returns an empty Events manager.
func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
		sleepStates:         make(map[*actor.RigidBody]bool),
	}
}

// Subscribe registers listener to be invoked whenever an event of
// eventType is flushed.
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordManifolds marks every manifold's pair active this step and strips
// out the trigger pairs so the solver never assembles a constraint for a
// sensor volume.
func (e *Events) recordManifolds(manifolds []*geometry.ContactManifold) []*geometry.ContactManifold {
	n := 0
	for _, m := range manifolds {
		pair := makePairKey(m.BodyA, m.BodyB)
		e.currentActivePairs[pair] = true

		if !m.BodyA.IsTrigger && !m.BodyB.IsTrigger {
			manifolds[n] = m
			n++
		}
	}
	return manifolds[:n]
}

func (e *Events) forgetBody(body *actor.RigidBody) {
	delete(e.sleepStates, body)
	for pair := range e.previousActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.previousActivePairs, pair)
		}
	}
}

func (e *Events) processCollisionEvents() {
	for pair := range e.currentActivePairs {
		if pair.bodyA.IsSleeping && pair.bodyB.IsSleeping {
			continue
		}

		isTrigger := pair.bodyA.IsTrigger || pair.bodyB.IsTrigger
		if e.previousActivePairs[pair] {
			if isTrigger {
				e.buffer = append(e.buffer, TriggerStayEvent{pair.bodyA, pair.bodyB})
			} else {
				e.buffer = append(e.buffer, CollisionStayEvent{pair.bodyA, pair.bodyB})
			}
		} else {
			if isTrigger {
				e.buffer = append(e.buffer, TriggerEnterEvent{pair.bodyA, pair.bodyB})
			} else {
				e.buffer = append(e.buffer, CollisionEnterEvent{pair.bodyA, pair.bodyB})
			}
		}
	}

	for pair := range e.previousActivePairs {
		if !e.currentActivePairs[pair] {
			isTrigger := pair.bodyA.IsTrigger || pair.bodyB.IsTrigger
			if isTrigger {
				e.buffer = append(e.buffer, TriggerExitEvent{pair.bodyA, pair.bodyB})
			} else {
				e.buffer = append(e.buffer, CollisionExitEvent{pair.bodyA, pair.bodyB})
			}
		}
	}

	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

func (e *Events) processSleepEvents(bodies []*actor.RigidBody) {
	for _, body := range bodies {
		trackedState, exists := e.sleepStates[body]
		if !exists {
			e.sleepStates[body] = body.IsSleeping
			continue
		}

		if !trackedState && body.IsSleeping {
			e.buffer = append(e.buffer, SleepEvent{Body: body})
			e.sleepStates[body] = true
		} else if trackedState && !body.IsSleeping {
			e.buffer = append(e.buffer, WakeEvent{Body: body})
			e.sleepStates[body] = false
		}
	}
}

// flush delivers every buffered event to its listeners and clears the
// buffer, meant to run once per World.Step (not per substep).
func (e *Events) flush() {
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
