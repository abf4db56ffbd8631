package eq

import (
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// Position identifies a band within a ChannelChain.
type Position int

const (
	PositionLowCut Position = iota
	PositionPeak
	PositionHighCut

	numPositions
)

func (p Position) String() string {
	switch p {
	case PositionLowCut:
		return "low cut"
	case PositionPeak:
		return "peak"
	case PositionHighCut:
		return "high cut"
	default:
		return "unknown"
	}
}

// ChannelChain runs low cut, peak and high cut in series on one channel.
// The zero value is a passthrough.
//
// Process, ProcessSample, Apply, Prepare and Reset belong to the audio
// goroutine. SetBypassed, Bypassed and Magnitude may be called from any
// goroutine: SetBypassed only flips atomic flags, and the state of a
// position leaving bypass is cleared by the next Process or ProcessSample.
type ChannelChain struct {
	lowCut  biquad.Cascade
	peak    biquad.Section
	highCut biquad.Cascade

	bypassed     [numPositions]atomic.Bool
	pendingReset [numPositions]atomic.Bool
}

// Apply installs a coefficient set and its bypass flags. A position leaving
// bypass starts from cleared state on the next Process.
func (c *ChannelChain) Apply(cc *ChainCoefficients) {
	if cc == nil {
		return
	}

	c.lowCut.Configure(cc.LowCut, len(cc.LowCut))
	c.peak.SetCoefficients(cc.Peak)
	c.highCut.Configure(cc.HighCut, len(cc.HighCut))

	for pos := PositionLowCut; pos < numPositions; pos++ {
		c.SetBypassed(pos, cc.Bypassed(pos))
	}
}

// SetBypassed sets the top-level bypass flag for pos. Re-enabling a
// position requests a reset of its state before the flag clears.
func (c *ChannelChain) SetBypassed(pos Position, bypassed bool) {
	if pos < 0 || pos >= numPositions {
		return
	}

	if bypassed {
		c.bypassed[pos].Store(true)
		return
	}

	if c.bypassed[pos].Load() {
		c.pendingReset[pos].Store(true)
	}

	c.bypassed[pos].Store(false)
}

// Bypassed reports the top-level bypass flag for pos.
func (c *ChannelChain) Bypassed(pos Position) bool {
	if pos < 0 || pos >= numPositions {
		return false
	}

	return c.bypassed[pos].Load()
}

// applyPendingResets clears the state of positions re-enabled since the
// last call.
func (c *ChannelChain) applyPendingResets() {
	for pos := PositionLowCut; pos < numPositions; pos++ {
		if c.pendingReset[pos].Load() && c.pendingReset[pos].Swap(false) {
			c.resetPosition(pos)
		}
	}
}

func (c *ChannelChain) resetPosition(pos Position) {
	switch pos {
	case PositionLowCut:
		c.lowCut.Reset()
	case PositionPeak:
		c.peak.Reset()
	case PositionHighCut:
		c.highCut.Reset()
	}
}

// Prepare clears all filter state ahead of streaming at a new rate or
// block size.
func (c *ChannelChain) Prepare(sampleRate float64, maxBlockSize int) {
	c.Reset()
}

// Reset clears all filter state. Coefficients and bypass flags are kept.
func (c *ChannelChain) Reset() {
	for pos := range c.pendingReset {
		c.pendingReset[pos].Store(false)
	}

	c.lowCut.Reset()
	c.peak.Reset()
	c.highCut.Reset()
}

// ProcessSample filters one sample.
func (c *ChannelChain) ProcessSample(x float64) float64 {
	c.applyPendingResets()

	if !c.bypassed[PositionLowCut].Load() {
		x = c.lowCut.ProcessSample(x)
	}

	if !c.bypassed[PositionPeak].Load() {
		x = c.peak.ProcessSample(x)
	}

	if !c.bypassed[PositionHighCut].Load() {
		x = c.highCut.ProcessSample(x)
	}

	return x
}

// Process filters buf in place. State carries over between calls.
func (c *ChannelChain) Process(buf []float64) {
	c.applyPendingResets()

	if len(buf) == 0 {
		return
	}

	if !c.bypassed[PositionLowCut].Load() {
		c.lowCut.ProcessBlock(buf)
	}

	if !c.bypassed[PositionPeak].Load() {
		c.peak.ProcessBlock(buf)
	}

	if !c.bypassed[PositionHighCut].Load() {
		c.highCut.ProcessBlock(buf)
	}
}

// Magnitude returns the linear gain of all non-bypassed stages at freqHz.
func (c *ChannelChain) Magnitude(freqHz, sampleRate float64) float64 {
	mag := 1.0

	if !c.bypassed[PositionLowCut].Load() {
		mag *= c.lowCut.Magnitude(freqHz, sampleRate)
	}

	if !c.bypassed[PositionPeak].Load() {
		coeffs := c.peak.Coefficients()
		mag *= coeffs.Magnitude(freqHz, sampleRate)
	}

	if !c.bypassed[PositionHighCut].Load() {
		mag *= c.highCut.Magnitude(freqHz, sampleRate)
	}

	return mag
}

// LowCut returns the low-cut cascade.
func (c *ChannelChain) LowCut() *biquad.Cascade { return &c.lowCut }

// Peak returns the peak section.
func (c *ChannelChain) Peak() *biquad.Section { return &c.peak }

// HighCut returns the high-cut cascade.
func (c *ChannelChain) HighCut() *biquad.Cascade { return &c.highCut }
