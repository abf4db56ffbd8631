package eq

import (
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/spectrum"
	"github.com/cwbudde/algo-eq/internal/snapshot"
)

// Channel selects one side of the stereo pair.
type Channel int

const (
	Left Channel = iota
	Right

	numChannels
)

// responseFloorDB bounds MagnitudeAt for stages with a true zero.
const responseFloorDB = -100.0

// Processor is a stereo equalizer with identical settings on both channels.
//
// Three contexts use it. The control context calls Prepare,
// UpdateParameters and Reset. The audio context calls ProcessBlock. The
// display context calls RefreshUI, ResponseCurve, MagnitudeAt and drains the
// analyzer FIFOs. Prepare and Reset must not overlap ProcessBlock.
//
// A Processor must be created with New. Before Prepare, ProcessBlock leaves
// audio untouched; so does a zero-value Processor.
type Processor struct {
	cfg config

	chains [numChannels]ChannelChain

	store   *snapshot.Store[*ChainCoefficients]
	audio   *snapshot.Consumer[*ChainCoefficients]
	display *snapshot.Consumer[*ChainCoefficients]

	prepared atomic.Bool
	fifos    [numChannels]atomic.Pointer[spectrum.SampleFIFO]

	// audio context only
	analyzerOn bool

	// display context only
	mirror     ChannelChain
	mirrorRate float64
}

// New returns an unprepared processor holding the default parameters.
func New(opts ...Option) *Processor {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := &Processor{cfg: cfg}
	p.store = snapshot.NewStore(NewChainCoefficients(Defaults(), cfg.SampleRate))
	p.audio = p.store.NewConsumer()
	p.display = p.store.NewConsumer()

	return p
}

// Prepare readies the processor for streaming at sampleRate with blocks of
// at most maxBlockSize samples. It clears all filter state, recomputes the
// coefficients for the new rate and allocates the analyzer FIFOs. On error
// the processor is left unprepared and ProcessBlock passes audio through
// until a later Prepare succeeds.
func (p *Processor) Prepare(sampleRate float64, maxBlockSize int) error {
	if !core.ValidSampleRate(sampleRate) {
		p.prepared.Store(false)
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if maxBlockSize <= 0 {
		p.prepared.Store(false)
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, maxBlockSize)
	}

	for ch := range p.chains {
		p.chains[ch].Prepare(sampleRate, maxBlockSize)

		fifo, err := spectrum.NewSampleFIFO(p.cfg.analyzerBlockSize, p.cfg.fifoCapacity)
		if err != nil {
			p.prepared.Store(false)
			return fmt.Errorf("eq: analyzer fifo: %w", err)
		}

		p.fifos[ch].Store(fifo)
	}

	p.cfg.SampleRate = sampleRate
	p.cfg.BlockSize = maxBlockSize
	p.store.Publish(NewChainCoefficients(p.store.Load().Parameters, sampleRate))
	p.prepared.Store(true)

	return nil
}

// UpdateParameters publishes a new parameter set. Out-of-range values are
// clamped; NaN or Inf values are rejected with ErrInvalidParameters and
// nothing is published. The audio context picks the change up at its next
// block.
func (p *Processor) UpdateParameters(params FilterParameters) error {
	if err := params.checkFinite(); err != nil {
		return err
	}

	p.store.Publish(NewChainCoefficients(params, p.store.Load().SampleRate))

	return nil
}

// UpdateCoefficients computes coefficients for params once and installs the
// same pointers into both channels immediately. Use it from the audio
// context or while audio is stopped; UpdateParameters is the cross-context
// path.
func (p *Processor) UpdateCoefficients(params FilterParameters) {
	p.apply(NewChainCoefficients(params, p.store.Load().SampleRate))
}

func (p *Processor) apply(cc *ChainCoefficients) {
	for ch := range p.chains {
		p.chains[ch].Apply(cc)
	}

	p.analyzerOn = cc.Parameters.AnalyzerEnabled
}

// ProcessBlock filters left and right in place. A pending parameter publish
// is installed first. Only min(len(left), len(right)) samples are touched.
func (p *Processor) ProcessBlock(left, right []float64) {
	if !p.prepared.Load() {
		return
	}

	if cc, ok := p.audio.ConsumeIfDirty(); ok {
		p.apply(cc)
	}

	n := min(len(left), len(right))
	left, right = left[:n], right[:n]

	p.chains[Left].Process(left)
	p.chains[Right].Process(right)

	if p.analyzerOn {
		p.fifos[Left].Load().Push(left)
		p.fifos[Right].Load().Push(right)
	}
}

// Reset clears the filter state of both channels.
func (p *Processor) Reset() {
	for ch := range p.chains {
		p.chains[ch].Reset()
	}
}

// Parameters returns the most recently published parameters.
func (p *Processor) Parameters() FilterParameters {
	return p.store.Load().Parameters
}

// SampleRate returns the rate coefficients are currently designed for.
func (p *Processor) SampleRate() float64 {
	return p.store.Load().SampleRate
}

// MaxBlockSize returns the block size given to the last Prepare.
func (p *Processor) MaxBlockSize() int {
	return p.cfg.BlockSize
}

// Prepared reports whether Prepare has succeeded.
func (p *Processor) Prepared() bool {
	return p.prepared.Load()
}

// TailLength returns how long output continues after input stops, in
// seconds. The filters are treated as having no tail.
func (p *Processor) TailLength() float64 {
	return 0
}

// Chain returns the audio-side chain of ch, or nil for an unknown channel.
// From other goroutines only SetBypassed, Bypassed and Magnitude may be
// called on it.
func (p *Processor) Chain(ch Channel) *ChannelChain {
	if ch < 0 || ch >= numChannels {
		return nil
	}

	return &p.chains[ch]
}

// AnalyzerFIFO returns the analyzer feed of ch. It is nil before Prepare.
func (p *Processor) AnalyzerFIFO(ch Channel) *spectrum.SampleFIFO {
	if ch < 0 || ch >= numChannels {
		return nil
	}

	return p.fifos[ch].Load()
}

// RefreshUI brings the display-side chain up to date and reports whether
// anything was published since the last call. Display context only.
func (p *Processor) RefreshUI() bool {
	cc, ok := p.display.ConsumeIfDirty()
	if !ok {
		return false
	}

	p.mirror.Apply(cc)
	p.mirrorRate = cc.SampleRate

	return true
}

// ResponseCurve samples the current magnitude response across width
// columns. Display context only.
func (p *Processor) ResponseCurve(width int) iter.Seq[Point] {
	p.RefreshUI()

	return ResponseCurve(&p.mirror, p.mirrorRate, width)
}

// ResponseCurveIn samples the current magnitude response into area.
// Display context only.
func (p *Processor) ResponseCurveIn(area Area) iter.Seq[Point] {
	p.RefreshUI()

	return ResponseCurveIn(&p.mirror, p.mirrorRate, area)
}

// MagnitudeAt returns the current response at freqHz in dB. Display context
// only.
func (p *Processor) MagnitudeAt(freqHz float64) float64 {
	p.RefreshUI()

	return core.GainToDecibels(p.mirror.Magnitude(freqHz, p.mirrorRate), responseFloorDB)
}
