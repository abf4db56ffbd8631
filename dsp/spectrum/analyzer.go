package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/window"
)

// FFTOrder selects the analyzer FFT size as a power of two.
type FFTOrder int

const (
	Order2048 FFTOrder = 11
	Order4096 FFTOrder = 12
	Order8192 FFTOrder = 13
)

// Size returns the FFT length for the order.
func (o FFTOrder) Size() int { return 1 << o }

// DefaultFloorDB is the lowest level the analyzer reports.
const DefaultFloorDB = -48.0

type analyzerConfig struct {
	order   FFTOrder
	window  window.Type
	floorDB float64
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*analyzerConfig)

// WithFFTOrder sets the FFT size. Orders outside [Order2048, Order8192]
// are ignored.
func WithFFTOrder(o FFTOrder) AnalyzerOption {
	return func(c *analyzerConfig) {
		if o >= Order2048 && o <= Order8192 {
			c.order = o
		}
	}
}

// WithWindow sets the analysis window.
func WithWindow(t window.Type) AnalyzerOption {
	return func(c *analyzerConfig) {
		c.window = t
	}
}

// WithFloorDB sets the lowest reported level. Non-negative or non-finite
// values are ignored.
func WithFloorDB(db float64) AnalyzerOption {
	return func(c *analyzerConfig) {
		if db < 0 && !math.IsInf(db, 0) {
			c.floorDB = db
		}
	}
}

// Analyzer turns a rolling mono frame into dB magnitudes per FFT bin.
// It is not safe for concurrent use; it belongs to the UI side.
type Analyzer struct {
	sampleRate float64
	fftSize    int
	floorDB    float64

	plan   *algofft.Plan[complex128]
	window []float64

	frame  []float64
	in     []complex128
	out    []complex128
	re, im []float64
	mag    []float64
	db     []float64
	block  []float64
}

// NewAnalyzer builds an analyzer for the given sample rate.
func NewAnalyzer(sampleRate float64, opts ...AnalyzerOption) (*Analyzer, error) {
	if !core.ValidSampleRate(sampleRate) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	cfg := analyzerConfig{
		order:   Order2048,
		window:  window.TypeBlackmanHarris4Term,
		floorDB: DefaultFloorDB,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := cfg.order.Size()

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum init fft plan: %w", err)
	}

	bins := n/2 + 1

	a := &Analyzer{
		sampleRate: sampleRate,
		fftSize:    n,
		floorDB:    cfg.floorDB,
		plan:       plan,
		window:     window.Generate(cfg.window, n, window.WithPeriodic()),
		frame:      make([]float64, n),
		in:         make([]complex128, n),
		out:        make([]complex128, n),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mag:        make([]float64, bins),
		db:         make([]float64, bins),
	}

	for i := range a.db {
		a.db[i] = a.floorDB
	}

	return a, nil
}

// FFTSize returns the transform length.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// SampleRate returns the rate bins are labelled against.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// FloorDB returns the lowest reported level.
func (a *Analyzer) FloorDB() float64 { return a.floorDB }

// BinWidth returns the spacing between bins in Hz.
func (a *Analyzer) BinWidth() float64 { return a.sampleRate / float64(a.fftSize) }

// Push shifts block into the end of the rolling frame.
func (a *Analyzer) Push(block []float64) {
	n := len(block)
	if n >= a.fftSize {
		copy(a.frame, block[n-a.fftSize:])
		return
	}

	copy(a.frame, a.frame[n:])
	copy(a.frame[a.fftSize-n:], block)
}

// Drain pops every complete block from fifo into the frame and returns how
// many blocks were consumed.
func (a *Analyzer) Drain(fifo *SampleFIFO) int {
	if fifo == nil {
		return 0
	}

	a.block = core.EnsureLen(a.block, fifo.BlockSize())

	count := 0
	for fifo.Pop(a.block) {
		a.Push(a.block)
		count++
	}

	return count
}

// Compute transforms the current frame and returns one dB value per bin
// from DC to Nyquist, normalised by the FFT size and floored at FloorDB.
// The returned slice is reused by the next call.
func (a *Analyzer) Compute() ([]float64, error) {
	for i, x := range a.frame {
		a.in[i] = complex(x*a.window[i], 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return nil, fmt.Errorf("spectrum forward fft: %w", err)
	}

	for i := range a.re {
		a.re[i] = real(a.out[i])
		a.im[i] = imag(a.out[i])
	}

	MagnitudeFromParts(a.mag, a.re, a.im)

	norm := 1 / float64(a.fftSize)
	for i, m := range a.mag {
		a.db[i] = core.GainToDecibels(m*norm, a.floorDB)
	}

	return a.db, nil
}

// Reset clears the rolling frame.
func (a *Analyzer) Reset() {
	core.Zero(a.frame)

	for i := range a.db {
		a.db[i] = a.floorDB
	}
}
