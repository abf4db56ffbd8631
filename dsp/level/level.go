// Package level measures signal levels: peak, RMS, crest factor and DC
// offset, in one pass over a buffer or streamed block by block.
package level

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// FloorDB is reported for silent signals.
const FloorDB = -144.0

// Stats holds the level of a signal.
type Stats struct {
	Length int
	DC     float64 // mean
	RMS    float64
	RMSdB  float64
	Peak   float64 // max |x|
	PeakdB float64
	Crest  float64 // peak / RMS, 0 for silence
}

// CrestdB returns the crest factor in dB.
func (s Stats) CrestdB() float64 {
	if s.Crest == 0 {
		return 0
	}

	return 20 * math.Log10(s.Crest)
}

func finish(n int, sum, sumSq, peak float64) Stats {
	if n == 0 {
		return Stats{RMSdB: FloorDB, PeakdB: FloorDB}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	return Stats{
		Length: n,
		DC:     sum / nf,
		RMS:    rms,
		RMSdB:  core.GainToDecibels(rms, FloorDB),
		Peak:   peak,
		PeakdB: core.GainToDecibels(peak, FloorDB),
		Crest:  crest,
	}
}

// Calculate measures signal in a single pass.
func Calculate(signal []float64) Stats {
	var m Meter
	m.Update(signal)

	return m.Result()
}

// RMS returns the root-mean-square of signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the largest absolute sample of signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		peak = max(peak, math.Abs(x))
	}

	return peak
}

// Meter accumulates Stats across blocks. The zero value is ready to use
// and Update does not allocate.
type Meter struct {
	n     int
	sum   float64
	comp  float64 // Kahan compensation for sum
	sumSq float64
	peak  float64
}

// Add adds one sample.
func (m *Meter) Add(x float64) {
	y := x - m.comp
	t := m.sum + y
	m.comp = (t - m.sum) - y
	m.sum = t

	m.sumSq += x * x
	m.peak = max(m.peak, math.Abs(x))
	m.n++
}

// Update adds a block of samples.
func (m *Meter) Update(samples []float64) {
	for _, x := range samples {
		m.Add(x)
	}
}

// Result returns the statistics of everything seen since the last Reset.
func (m *Meter) Result() Stats {
	return finish(m.n, m.sum, m.sumSq, m.peak)
}

// Reset clears the meter.
func (m *Meter) Reset() {
	*m = Meter{}
}
