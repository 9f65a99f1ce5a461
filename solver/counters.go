package solver

import "time"

// Phase accumulates wall-clock time across resume/pause brackets.
type Phase struct {
	total   time.Duration
	started time.Time
	running bool
}

// Resume starts (or resumes) timing this phase.
func (p *Phase) Resume() {
	if p.running {
		return
	}
	p.started = time.Now()
	p.running = true
}

// Pause stops timing this phase and folds the elapsed time into Total.
// Calling Pause on an already-paused phase is a no-op, so a deferred Pause
// after a Resume is always safe even on a panicking exit path.
func (p *Phase) Pause() {
	if !p.running {
		return
	}
	p.total += time.Since(p.started)
	p.running = false
}

// Total returns the accumulated duration across all resume/pause brackets
// since the last Reset.
func (p *Phase) Total() time.Duration {
	return p.total
}

func (p *Phase) reset() {
	p.total = 0
	p.running = false
}

// Counters brackets the four phases an island step passes through:
// assembly, integration, velocity resolution, position resolution.
type Counters struct {
	VelocityAssembly   Phase
	Integration        Phase
	VelocityResolution Phase
	PositionResolution Phase
}

// Reset zeroes every phase, typically called once per simulation step
// before solving each island.
func (c *Counters) Reset() {
	c.VelocityAssembly.reset()
	c.Integration.reset()
	c.VelocityResolution.reset()
	c.PositionResolution.reset()
}
