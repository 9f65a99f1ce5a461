// Package solver implements the constraint-based rigid-body island solver:
// contact and joint constraint assembly, warm starting, projected
// Gauss-Seidel velocity and position iteration, and the island driver that
// sequences them.
package solver

import "github.com/go-gl/mathgl/mgl64"

// DeltaVel is the per-body scratch accumulator: the change in linear and
// angular velocity produced by one solver pass, applied to the body only
// after every iteration completes.
type DeltaVel struct {
	Linear  mgl64.Vec3
	Angular mgl64.Vec3
}

// DeltaVelBuffer is the island-local buffer indexed by a body's
// ActiveSetOffset. It is owned by the IslandSolver and cleared (not
// reallocated) between steps.
type DeltaVelBuffer []DeltaVel

// NewDeltaVelBuffer allocates a zeroed buffer sized to an island's active
// body count.
func NewDeltaVelBuffer(size int) DeltaVelBuffer {
	return make(DeltaVelBuffer, size)
}

// Reset zeroes the buffer in place, growing it if the island's active body
// count increased since the last step.
func (b *DeltaVelBuffer) Reset(size int) {
	if cap(*b) < size {
		*b = make(DeltaVelBuffer, size)
		return
	}
	*b = (*b)[:size]
	for i := range *b {
		(*b)[i] = DeltaVel{}
	}
}
