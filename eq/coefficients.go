package eq

import (
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

// maxDesignRatio keeps every designed frequency below Nyquist.
const maxDesignRatio = 0.49

// ChainCoefficients is the full result of one coefficient calculation. It
// is immutable once built and shared by pointer between both channels.
type ChainCoefficients struct {
	Parameters FilterParameters
	SampleRate float64

	Peak    *biquad.Coefficients
	LowCut  []*biquad.Coefficients
	HighCut []*biquad.Coefficients
}

// NewChainCoefficients clamps p and designs every stage at sampleRate.
// A non-positive sample rate yields identity stages.
func NewChainCoefficients(p FilterParameters, sampleRate float64) *ChainCoefficients {
	p = p.Clamp()

	limit := func(freq float64) float64 {
		if sampleRate > 0 {
			return min(freq, maxDesignRatio*sampleRate)
		}

		return freq
	}

	peak := design.Peak(limit(p.PeakFreq), p.PeakGainDB, p.PeakQuality, sampleRate)

	return &ChainCoefficients{
		Parameters: p,
		SampleRate: sampleRate,
		Peak:       &peak,
		LowCut:     pointers(design.ButterworthLowCut(limit(p.LowCutFreq), p.LowCutSlope.Stages(), sampleRate)),
		HighCut:    pointers(design.ButterworthHighCut(limit(p.HighCutFreq), p.HighCutSlope.Stages(), sampleRate)),
	}
}

func pointers(sections []biquad.Coefficients) []*biquad.Coefficients {
	out := make([]*biquad.Coefficients, len(sections))
	for i := range sections {
		out[i] = &sections[i]
	}

	return out
}

// LowCutStages returns the number of active low-cut sections.
func (c *ChainCoefficients) LowCutStages() int { return len(c.LowCut) }

// HighCutStages returns the number of active high-cut sections.
func (c *ChainCoefficients) HighCutStages() int { return len(c.HighCut) }

// Bypassed reports the top-level bypass flag for a position.
func (c *ChainCoefficients) Bypassed(pos Position) bool {
	switch pos {
	case PositionLowCut:
		return c.Parameters.LowCutBypassed
	case PositionPeak:
		return c.Parameters.PeakBypassed
	case PositionHighCut:
		return c.Parameters.HighCutBypassed
	default:
		return false
	}
}
