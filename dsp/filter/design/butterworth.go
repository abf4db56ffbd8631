package design

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// MaxCutStages is the steepest supported cut: 4 sections, 48 dB/octave.
const MaxCutStages = biquad.MaxStages

// ButterworthLowCut designs a high-pass Butterworth of order 2*stages as
// exactly stages second-order sections. stages outside [1, MaxCutStages]
// returns nil.
func ButterworthLowCut(freq float64, stages int, sampleRate float64) []biquad.Coefficients {
	return butterworthCascade(freq, stages, sampleRate, Highpass)
}

// ButterworthHighCut designs a low-pass Butterworth of order 2*stages as
// exactly stages second-order sections. stages outside [1, MaxCutStages]
// returns nil.
func ButterworthHighCut(freq float64, stages int, sampleRate float64) []biquad.Coefficients {
	return butterworthCascade(freq, stages, sampleRate, Lowpass)
}

func butterworthCascade(
	freq float64,
	stages int,
	sampleRate float64,
	section func(freq, q, sampleRate float64) biquad.Coefficients,
) []biquad.Coefficients {
	if stages < 1 || stages > MaxCutStages {
		return nil
	}

	order := 2 * stages
	sections := make([]biquad.Coefficients, 0, stages)

	// Lowest Q first keeps intermediate peaks small.
	for i := stages - 1; i >= 0; i-- {
		sections = append(sections, section(freq, butterworthQ(order, i), sampleRate))
	}

	return sections
}

// butterworthQ returns the quality factor of pole pair index for an
// even-order Butterworth prototype.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}

	return 1 / (2 * s)
}
