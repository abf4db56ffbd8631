// Package signal provides streaming test sources for driving the equalizer:
// a phase-continuous sine and seeded white and pink noise.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Source fills dst with the next len(dst) samples.
type Source interface {
	Fill(dst []float64)
}

// Generator creates deterministic sources from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine returns a phase-continuous sine source.
func (g *Generator) Sine(freqHz, amplitude float64) (*Sine, error) {
	if freqHz < 0 || freqHz > g.cfg.SampleRate/2 || math.IsNaN(freqHz) {
		return nil, fmt.Errorf("sine frequency must be in [0, %g]: %f", g.cfg.SampleRate/2, freqHz)
	}
	return &Sine{
		amplitude: amplitude,
		step:      2 * math.Pi * freqHz / g.cfg.SampleRate,
	}, nil
}

// WhiteNoise returns a white noise source in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64) (*Noise, error) {
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	return &Noise{amplitude: amplitude, rng: rand.New(rand.NewSource(g.seed))}, nil
}

// PinkNoise returns a -3 dB/octave noise source peaking near amplitude.
func (g *Generator) PinkNoise(amplitude float64) (*Noise, error) {
	n, err := g.WhiteNoise(amplitude)
	if err != nil {
		return nil, err
	}
	n.pink = true
	return n, nil
}

// Sine is a streaming sine oscillator.
type Sine struct {
	amplitude float64
	step      float64
	phase     float64
}

// Fill writes the next samples into dst.
func (s *Sine) Fill(dst []float64) {
	for i := range dst {
		dst[i] = s.amplitude * math.Sin(s.phase)
		s.phase += s.step
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}
}

// Reset restarts the oscillator at zero phase.
func (s *Sine) Reset() {
	s.phase = 0
}

// Noise is a streaming white or pink noise source.
type Noise struct {
	amplitude  float64
	rng        *rand.Rand
	pink       bool
	b0, b1, b2 float64
}

// pinkScale keeps the filtered sum roughly within [-1, 1].
const pinkScale = 0.25

// Fill writes the next samples into dst.
func (n *Noise) Fill(dst []float64) {
	for i := range dst {
		white := n.rng.Float64()*2 - 1
		if !n.pink {
			dst[i] = white * n.amplitude
			continue
		}

		n.b0 = 0.99765*n.b0 + white*0.0990460
		n.b1 = 0.96300*n.b1 + white*0.2965164
		n.b2 = 0.57000*n.b2 + white*1.0526913
		pink := n.b0 + n.b1 + n.b2 + white*0.1848
		dst[i] = core.Clamp(pink*pinkScale, -1, 1) * n.amplitude
	}
}
