package actor

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by forces, gravity, and collisions
	// They have finite mass and can move freely
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are immovable and have infinite mass
	// They are not affected by forces or gravity (e.g., ground, walls)
	BodyTypeStatic
)

type Material struct {
	Density     float64
	mass        float64
	Restitution float64 // 0 = no rebound, 1 = perfect restitution

	StaticFriction  float64
	DynamicFriction float64
	LinearDamping   float64 // 0.0 - 1.0, typical: 0.01
	AngularDamping  float64 // 0.0 - 1.0, typical: 0.05
}

func (material Material) GetMass() float64 {
	return material.mass
}

// RigidBody is the solver's view of a body: a compact record exposing
// inverse mass, the square-root inverse world inertia operator,
// linear/angular velocity, world center of mass, and the body's slot in its
// island's active set. Bodies are mutated in place by the solver, which
// never locks Mutex: the PGS inner loops operate on a private DeltaVel
// buffer, and each island's bodies are committed by that island's own
// goroutine.
type RigidBody struct {
	Transform Transform

	Velocity        mgl64.Vec3 // linear velocity (m/s)
	AngularVelocity mgl64.Vec3 // angular velocity (rad/s)

	// InertiaLocal is assumed diagonal: every shape in this package computes
	// inertia about its own principal axes, so InverseInertiaSqrtWorld can
	// take the square root element-wise instead of an eigendecomposition.
	InertiaLocal        mgl64.Mat3
	InverseInertiaLocal mgl64.Mat3

	accumulatedForce  mgl64.Vec3
	accumulatedTorque mgl64.Vec3

	IsSleeping bool
	SleepTimer float64

	Material Material
	BodyType BodyType

	// IsTrigger marks a body as a sensor volume: the world still reports
	// overlap events for it, but it never contributes a contact manifold
	// to the solver.
	IsTrigger bool

	Shape ShapeInterface

	// ActiveSetOffset is the body's 0-based slot within its island's active
	// set, assigned by whatever partitions bodies into islands. It indexes
	// the island-local DeltaVel buffer during one solve.
	ActiveSetOffset int

	Mutex sync.Mutex
}

// NewRigidBody creates a new rigid body with the given properties.
// density is used to calculate mass for dynamic bodies (ignored for static).
func NewRigidBody(transform Transform, shape ShapeInterface, bodyType BodyType, density float64) *RigidBody {
	rb := &RigidBody{
		Transform: transform,
		Shape:     shape,
		BodyType:  bodyType,
	}

	if bodyType == BodyTypeStatic {
		rb.Material = Material{
			Density: 0,
			mass:    math.Inf(1),
		}
	} else {
		rb.Material = Material{
			Density: density,
			mass:    shape.ComputeMass(density),
		}
	}

	rb.InertiaLocal = shape.ComputeInertia(rb.Material.mass)
	rb.InverseInertiaLocal = invertDiagonal(rb.InertiaLocal)
	rb.Shape.ComputeAABB(rb.Transform)

	return rb
}

// NewRigidBodyWithMaterial is NewRigidBody plus a caller-supplied material
// preset (e.g. one loaded from config.Tuning.Materials): mass and inertia
// are still derived from material.Density, but restitution, friction, and
// damping come from the preset instead of zero values.
func NewRigidBodyWithMaterial(transform Transform, shape ShapeInterface, bodyType BodyType, material Material) *RigidBody {
	rb := NewRigidBody(transform, shape, bodyType, material.Density)
	mass := rb.Material.mass
	material.mass = mass
	rb.Material = material
	return rb
}

// invertDiagonal inverts a diagonal 3x3 matrix entry-wise. A zero diagonal
// entry (e.g. a static body's zeroed inertia) maps to zero rather than Inf,
// matching a body that contributes no angular response.
func invertDiagonal(m mgl64.Mat3) mgl64.Mat3 {
	inv := func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		return 1.0 / x
	}
	return mgl64.Mat3{
		inv(m[0]), 0, 0,
		0, inv(m[4]), 0,
		0, 0, inv(m[8]),
	}
}

// InverseMass returns 0 for static bodies and 1/mass for dynamic ones.
func (rb *RigidBody) InverseMass() float64 {
	if rb.BodyType == BodyTypeStatic {
		return 0
	}
	return 1.0 / rb.Material.mass
}

// WorldCOM returns the world-space center of mass. Shapes in this package
// are defined with their center of mass at the body origin.
func (rb *RigidBody) WorldCOM() mgl64.Vec3 {
	return rb.Transform.Position
}

// InverseInertiaSqrtWorld returns Iw^-1/2, the operator used throughout the
// solver to build angular Jacobian terms (gcross1/gcross2).
// I_local is diagonal, so its matrix square root is the element-wise square
// root of the diagonal; rotating by R gives the world-space operator.
func (rb *RigidBody) InverseInertiaSqrtWorld() mgl64.Mat3 {
	if rb.BodyType == BodyTypeStatic {
		return mgl64.Mat3{}
	}

	sqrtLocal := mgl64.Mat3{
		math.Sqrt(rb.InverseInertiaLocal[0]), 0, 0,
		0, math.Sqrt(rb.InverseInertiaLocal[4]), 0,
		0, 0, math.Sqrt(rb.InverseInertiaLocal[8]),
	}

	r := rb.Transform.Rotation.Mat4().Mat3()
	return r.Mul3(sqrtLocal).Mul3(r.Transpose())
}

// GetInverseInertiaWorld returns the full Iw^-1 operator, used by the
// position solver's angular correction.
func (rb *RigidBody) GetInverseInertiaWorld() mgl64.Mat3 {
	if rb.BodyType == BodyTypeStatic {
		return mgl64.Mat3{}
	}
	r := rb.Transform.Rotation.Mat4().Mat3()
	return r.Mul3(rb.InverseInertiaLocal).Mul3(r.Transpose())
}

func (rb *RigidBody) TrySleep(dt, timeThreshold, velocityThreshold float64) {
	if rb.BodyType == BodyTypeStatic {
		return
	}
	if rb.Velocity.Len() < velocityThreshold && rb.AngularVelocity.Len() < velocityThreshold {
		rb.SleepTimer += dt
		if rb.SleepTimer >= timeThreshold {
			rb.Sleep()
		}
	} else {
		rb.Awake()
	}
}

func (rb *RigidBody) Sleep() {
	rb.IsSleeping = true
	rb.SleepTimer = 0.0
	rb.Velocity = mgl64.Vec3{}
	rb.AngularVelocity = mgl64.Vec3{}
	rb.ClearForces()
}

func (rb *RigidBody) Awake() {
	rb.IsSleeping = false
	rb.SleepTimer = 0.0
}

// Integrate advances the body by dt using a symplectic-Euler sequence:
// the position and rotation are moved using the velocities that were in
// effect at the start of the step, and only then are external forces
// applied to the velocities, so the velocity pass that follows works on
// post-force velocities paired with positions moved by the pre-force ones.
// IslandSolver.SolveIsland assembles its constraints before this call, from
// the pre-integration state.
func (rb *RigidBody) Integrate(dt float64, gravity mgl64.Vec3) {
	if rb.BodyType == BodyTypeStatic || rb.IsSleeping {
		return
	}

	rb.Transform.Position = rb.Transform.Position.Add(rb.Velocity.Mul(dt))

	omegaQuat := mgl64.Quat{V: rb.AngularVelocity, W: 0}
	qDot := omegaQuat.Mul(rb.Transform.Rotation).Scale(0.5)
	rb.Transform.Rotation = rb.Transform.Rotation.Add(qDot.Scale(dt)).Normalize()
	rb.Transform.InverseRotation = rb.Transform.Rotation.Inverse()

	invMass := rb.InverseMass()
	linearAccel := gravity.Add(rb.accumulatedForce.Mul(invMass))
	rb.Velocity = rb.Velocity.Add(linearAccel.Mul(dt))
	rb.Velocity = rb.Velocity.Mul(math.Exp(-rb.Material.LinearDamping * dt))

	angularAccel := rb.GetInverseInertiaWorld().Mul3x1(rb.accumulatedTorque)
	rb.AngularVelocity = rb.AngularVelocity.Add(angularAccel.Mul(dt))
	rb.AngularVelocity = rb.AngularVelocity.Mul(math.Exp(-rb.Material.AngularDamping * dt))

	rb.Shape.ComputeAABB(rb.Transform)
	rb.ClearForces()
}

// AddForce accumulates a force (in newtons) to be applied on the next Integrate.
func (rb *RigidBody) AddForce(force mgl64.Vec3) {
	if rb.BodyType != BodyTypeStatic {
		rb.Awake()
		rb.accumulatedForce = rb.accumulatedForce.Add(force)
	}
}

// AddTorque accumulates a torque (in newton-meters) to be applied on the next Integrate.
func (rb *RigidBody) AddTorque(torque mgl64.Vec3) {
	if rb.BodyType != BodyTypeStatic {
		rb.Awake()
		rb.accumulatedTorque = rb.accumulatedTorque.Add(torque)
	}
}

func (rb *RigidBody) ClearForces() {
	rb.accumulatedForce = mgl64.Vec3{}
	rb.accumulatedTorque = mgl64.Vec3{}
}

// SupportWorld maps a world-space direction through the body's inverse
// transform, queries the shape's local support point, and maps it back.
func (rb *RigidBody) SupportWorld(direction mgl64.Vec3) mgl64.Vec3 {
	localDirection := rb.Transform.InverseRotation.Rotate(direction)
	localSupport := rb.Shape.Support(localDirection)
	worldSupport := rb.Transform.Rotation.Rotate(localSupport)
	return rb.Transform.Position.Add(worldSupport)
}
