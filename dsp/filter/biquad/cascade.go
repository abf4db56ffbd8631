package biquad

import "sync/atomic"

// MaxStages is the number of sections a Cascade always holds.
const MaxStages = 4

// Cascade is a fixed bank of MaxStages sections of which the first Stages()
// are active. Inactive sections are skipped entirely: they are not evaluated
// and their delay registers are left alone. A section that becomes active
// again starts from zero state.
//
// The zero value is a passthrough cascade.
type Cascade struct {
	stages [MaxStages]Section
	active atomic.Int32
}

// Configure installs coeffs[i] into stage i for i < stages and makes exactly
// those stages active. stages is limited to [0, min(len(coeffs), MaxStages)].
func (c *Cascade) Configure(coeffs []*Coefficients, stages int) {
	stages = min(max(stages, 0), len(coeffs), MaxStages)

	prev := int(c.active.Load())
	for i := 0; i < stages; i++ {
		c.stages[i].SetCoefficients(coeffs[i])
		if i >= prev {
			c.stages[i].Reset()
		}
	}

	c.active.Store(int32(stages))
}

// Stages returns the number of active stages.
func (c *Cascade) Stages() int {
	return int(c.active.Load())
}

// Bypassed reports whether stage i is excluded from the signal path.
func (c *Cascade) Bypassed(i int) bool {
	return i < 0 || i >= c.Stages()
}

// Stage returns stage i for inspection.
func (c *Cascade) Stage(i int) *Section {
	return &c.stages[i]
}

// ProcessSample runs x through the active stages in order.
func (c *Cascade) ProcessSample(x float64) float64 {
	n := c.Stages()
	for i := 0; i < n; i++ {
		x = c.stages[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock filters buf in place through the active stages.
func (c *Cascade) ProcessBlock(buf []float64) {
	n := c.Stages()
	for i := 0; i < n; i++ {
		c.stages[i].ProcessBlock(buf)
	}
}

// Reset clears every stage, active or not.
func (c *Cascade) Reset() {
	for i := range c.stages {
		c.stages[i].Reset()
	}
}

// Magnitude returns the product of the active stages' linear magnitudes.
func (c *Cascade) Magnitude(freqHz, sampleRate float64) float64 {
	mag := 1.0
	n := c.Stages()
	for i := 0; i < n; i++ {
		mag *= c.stages[i].load().Magnitude(freqHz, sampleRate)
	}
	return mag
}
