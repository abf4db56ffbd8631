package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-eq/internal/testutil"
)

func TestGoertzel_MatchesDirectDFT(t *testing.T) {
	sampleRate := 48000.0
	freq0 := 1000.0
	sig := testutil.DeterministicSine(freq0, sampleRate, 1.0, 1024)

	g, err := NewGoertzel(freq0, sampleRate)
	if err != nil {
		t.Fatalf("NewGoertzel: %v", err)
	}

	g.ProcessBlock(sig)

	var dft complex128

	for n, x := range sig {
		angle := -2 * math.Pi * freq0 / sampleRate * float64(n)
		dft += complex(x, 0) * cmplx.Exp(complex(0, angle))
	}

	want := real(dft)*real(dft) + imag(dft)*imag(dft)
	if got := g.Power(); math.Abs(got-want) > 1e-7*want {
		t.Fatalf("Power = %v, want %v", got, want)
	}
}

func TestGoertzel_StreamsAcrossBlocks(t *testing.T) {
	sig := testutil.DeterministicSine(440, 48000, 0.7, 4800)

	whole, _ := NewGoertzel(440, 48000)
	whole.ProcessBlock(sig)

	split, _ := NewGoertzel(440, 48000)
	for start := 0; start < len(sig); start += 100 {
		split.ProcessBlock(sig[start : start+100])
	}

	if math.Abs(whole.Power()-split.Power()) > 1e-9*whole.Power() {
		t.Fatalf("split power %v, whole %v", split.Power(), whole.Power())
	}
}

func TestToneAmplitude_WholeCycles(t *testing.T) {
	// 1 kHz at 48 kHz: 960 samples are exactly 20 cycles.
	for _, amp := range []float64{1, 0.5, 0.125} {
		sig := testutil.DeterministicSine(1000, 48000, amp, 960)

		got, err := ToneAmplitude(sig, 1000, 48000)
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(got-amp) > 1e-9 {
			t.Fatalf("amplitude = %v, want %v", got, amp)
		}
	}
}

func TestGoertzel_Reset(t *testing.T) {
	g, _ := NewGoertzel(1000, 48000)
	g.ProcessBlock([]float64{1})

	if g.Power() == 0 {
		t.Fatal("power should be non-zero after processing")
	}

	g.Reset()

	if g.Power() != 0 || g.Amplitude() != 0 {
		t.Fatal("state not cleared by Reset")
	}
}

func TestGoertzel_DC(t *testing.T) {
	g, _ := NewGoertzel(0, 48000)
	g.ProcessBlock(testutil.DC(1.0, 100))

	if pwr := g.Power(); math.Abs(pwr-10000) > 1e-9 {
		t.Fatalf("DC power = %v, want 10000", pwr)
	}
}

func TestNewGoertzel_Errors(t *testing.T) {
	if _, err := NewGoertzel(1000, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("zero rate: err = %v", err)
	}

	if _, err := NewGoertzel(-1, 48000); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("negative frequency: err = %v", err)
	}

	if _, err := NewGoertzel(24001, 48000); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("above nyquist: err = %v", err)
	}

	if _, err := ToneAmplitude(nil, 1000, math.NaN()); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("nan rate: err = %v", err)
	}
}
