package biquad

import (
	"sync/atomic"

	archregistry "github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"

	_ "github.com/cwbudde/algo-eq/dsp/filter/biquad/internal/arch/generic" // register generic kernel
)

// Coefficients holds the transfer function of one second-order section.
// a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
//
// Once installed into a [Section] a Coefficients value must not be modified;
// install a new one instead.
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

var identity = Coefficients{B0: 1}

// Identity returns passthrough coefficients.
func Identity() Coefficients { return identity }

// IsIdentity reports whether c passes the signal through unchanged.
func (c *Coefficients) IsIdentity() bool {
	return *c == identity
}

// Section is a single biquad stage. The zero value is a passthrough.
//
// Processing and Reset must run on one goroutine. SetCoefficients may be
// called from any goroutine; a block in flight finishes with the
// coefficients it loaded.
type Section struct {
	coeffs atomic.Pointer[Coefficients]

	d0, d1 float64
}

var processBlockImpl = selectKernel()

func selectKernel() archregistry.ProcessBlockFn {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil || entry.ProcessBlock == nil {
		panic("biquad: no ProcessBlock kernel registered")
	}

	return entry.ProcessBlock
}

// NewSection returns a Section using a private copy of c and zero state.
func NewSection(c Coefficients) *Section {
	s := &Section{}
	s.SetCoefficients(&c)
	return s
}

// SetCoefficients installs c. A nil c installs the identity.
func (s *Section) SetCoefficients(c *Coefficients) {
	if c == nil {
		c = &identity
	}
	s.coeffs.Store(c)
}

// Coefficients returns a copy of the installed coefficients.
func (s *Section) Coefficients() Coefficients {
	return *s.load()
}

func (s *Section) load() *Coefficients {
	if c := s.coeffs.Load(); c != nil {
		return c
	}
	return &identity
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	c := s.load()

	y := c.B0*x + s.d0
	s.d0 = c.B1*x - c.A1*y + s.d1
	s.d1 = c.B2*x - c.A2*y

	return y
}

// ProcessBlock filters buf in place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	c := s.load()

	s.d0, s.d1 = processBlockImpl(archregistry.Coefficients{
		B0: c.B0,
		B1: c.B1,
		B2: c.B2,
		A1: c.A1,
		A2: c.A2,
	}, s.d0, s.d1, buf)
}

// Reset clears the delay registers.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the delay registers [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}
