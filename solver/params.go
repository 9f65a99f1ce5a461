package solver

// IntegrationParameters bundles the per-step tuning knobs consumed by
// constraint assembly and the two solver passes.
type IntegrationParameters struct {
	Dt float64

	// WarmstartCoeff scales cached impulses on reuse (the manifold-level
	// WarmstartMultiplier in geometry.ContactManifold further scales it per
	// manifold).
	WarmstartCoeff float64

	// VelocitySolveFraction dampens the non-bouncy (resting) contact RHS,
	// trading instantaneous correction for stability.
	VelocitySolveFraction float64

	// VelocityBasedERP is the fraction of penetration error fed back into
	// the velocity constraint's RHS per step for resting contacts.
	VelocityBasedERP float64

	NumVelocityIterations int
	NumPositionIterations int

	// MaxPositionCorrection caps how much penetration the position solver
	// may remove in a single iteration, preventing overshoot on deep
	// penetrations.
	MaxPositionCorrection float64

	// AllowedPenetrationSlop is the penetration depth below which the
	// position solver does not bother correcting.
	AllowedPenetrationSlop float64
}

// DefaultIntegrationParameters returns the values this module was validated
// against in solver/*_test.go.
func DefaultIntegrationParameters(dt float64) IntegrationParameters {
	return IntegrationParameters{
		Dt:                     dt,
		WarmstartCoeff:         1.0,
		VelocitySolveFraction:  1.0,
		VelocityBasedERP:       0.2,
		NumVelocityIterations:  4,
		NumPositionIterations:  2,
		MaxPositionCorrection:  0.2,
		AllowedPenetrationSlop: 0.005,
	}
}

// InvDt returns 1/dt, or 0 if dt is 0 (a paused simulation step).
func (p *IntegrationParameters) InvDt() float64 {
	if p.Dt == 0 {
		return 0
	}
	return 1.0 / p.Dt
}

// VelocityBasedERPInvDt returns the Baumgarte stabilization coefficient
// used directly as a velocity-space gain.
func (p *IntegrationParameters) VelocityBasedERPInvDt() float64 {
	return p.VelocityBasedERP * p.InvDt()
}
