package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

const sr = 48000.0

func magDB(c biquad.Coefficients, f float64) float64 {
	return c.MagnitudeDB(f, sr)
}

func cascadeDB(cs []biquad.Coefficients, f float64) float64 {
	db := 0.0
	for i := range cs {
		db += cs[i].MagnitudeDB(f, sr)
	}

	return db
}

func assertFiniteCoefficients(t *testing.T, c biquad.Coefficients) {
	t.Helper()

	for i, v := range []float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("coef[%d] invalid: %v (%+v)", i, v, c)
		}
	}
}

func assertStableSection(t *testing.T, c biquad.Coefficients) {
	t.Helper()
	assertFiniteCoefficients(t, c)

	if !c.IsStable() {
		t.Fatalf("unstable section: %+v", c)
	}
}

func TestBiquadDesigners_BasicResponseShape(t *testing.T) {
	lp := Lowpass(1000, defaultQ, sr)
	if !(magDB(lp, 100) > magDB(lp, 10000)) {
		t.Fatal("lowpass shape check failed")
	}

	hp := Highpass(1000, defaultQ, sr)
	if !(magDB(hp, 10000) > magDB(hp, 100)) {
		t.Fatal("highpass shape check failed")
	}

	for _, c := range []biquad.Coefficients{lp, hp} {
		assertStableSection(t, c)
	}
}

func TestPeak_CentreGainMatchesRequest(t *testing.T) {
	for _, gain := range []float64{-24, -6, -0.5, 0.5, 6, 24} {
		for _, q := range []float64{0.1, 1, 4, 10} {
			c := Peak(750, gain, q, sr)
			assertStableSection(t, c)

			// Rounding in the RBJ design reaches ~1e-8 dB at extreme gain and Q.
			if got := magDB(c, 750); math.Abs(got-gain) > 1e-6 {
				t.Fatalf("gain=%v q=%v: centre=%.12f dB", gain, q, got)
			}
		}
	}
}

func TestPeak_FarFromCentreIsNearUnity(t *testing.T) {
	c := Peak(1000, 12, 4, sr)

	for _, f := range []float64{20, 20000} {
		if got := magDB(c, f); math.Abs(got) > 0.2 {
			t.Fatalf("%v Hz: %.3f dB, want ~0", f, got)
		}
	}
}

func TestPeak_ZeroGainIsFlat(t *testing.T) {
	c := Peak(1000, 0, 1, sr)

	for _, f := range []float64{20, 100, 1000, 5000, 20000} {
		if got := magDB(c, f); math.Abs(got) > 1e-9 {
			t.Fatalf("%v Hz: %.12f dB, want 0", f, got)
		}
	}
}

func TestDesigners_DegenerateInputYieldsIdentity(t *testing.T) {
	cases := []struct {
		name string
		c    biquad.Coefficients
	}{
		{"zero rate", Peak(1000, 6, 1, 0)},
		{"negative rate", Lowpass(1000, 1, -1)},
		{"nan rate", Highpass(1000, 1, math.NaN())},
		{"zero freq", Peak(0, 6, 1, sr)},
		{"at nyquist", Lowpass(sr/2, 1, sr)},
		{"above nyquist", Highpass(sr, 1, sr)},
		{"nan gain", Peak(1000, math.NaN(), 1, sr)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.c.IsIdentity() {
				t.Fatalf("got %+v, want identity", tc.c)
			}
		})
	}
}

func TestDesigners_NonPositiveQFallsBack(t *testing.T) {
	got := Lowpass(1000, 0, sr)
	want := Lowpass(1000, defaultQ, sr)

	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestButterworth_SectionCountPerSlope(t *testing.T) {
	for stages := 1; stages <= MaxCutStages; stages++ {
		lc := ButterworthLowCut(100, stages, sr)
		hc := ButterworthHighCut(10000, stages, sr)

		if len(lc) != stages || len(hc) != stages {
			t.Fatalf("stages=%d: got %d low-cut / %d high-cut sections", stages, len(lc), len(hc))
		}

		for i := range lc {
			assertStableSection(t, lc[i])
			assertStableSection(t, hc[i])
		}
	}
}

func TestButterworth_OutOfRangeStages(t *testing.T) {
	for _, stages := range []int{-1, 0, MaxCutStages + 1} {
		if got := ButterworthLowCut(100, stages, sr); got != nil {
			t.Fatalf("stages=%d: got %d sections, want nil", stages, len(got))
		}
	}
}

func TestButterworth_CutoffIsMinus3dB(t *testing.T) {
	for stages := 1; stages <= MaxCutStages; stages++ {
		lc := ButterworthLowCut(1000, stages, sr)
		hc := ButterworthHighCut(1000, stages, sr)

		for name, cs := range map[string][]biquad.Coefficients{"low cut": lc, "high cut": hc} {
			if got := cascadeDB(cs, 1000); math.Abs(got+3.0103) > 0.01 {
				t.Fatalf("%s stages=%d: %.4f dB at cutoff, want -3.01", name, stages, got)
			}
		}
	}
}

func TestButterworth_SlopeSteepensWithStages(t *testing.T) {
	prev := 0.0

	for stages := 1; stages <= MaxCutStages; stages++ {
		lc := ButterworthLowCut(1000, stages, sr)

		// One octave and a bit below cutoff.
		got := cascadeDB(lc, 250)
		if got >= prev {
			t.Fatalf("stages=%d: %.2f dB at 250 Hz, not below %.2f", stages, got, prev)
		}

		want := -24 * float64(stages)
		if math.Abs(got-want) > 3 {
			t.Fatalf("stages=%d: %.2f dB two octaves down, want ~%.0f", stages, got, want)
		}

		prev = got
	}
}

func TestButterworth_PassbandIsFlat(t *testing.T) {
	lc := ButterworthLowCut(20, MaxCutStages, sr)
	hc := ButterworthHighCut(20000, MaxCutStages, sr)

	if got := cascadeDB(lc, 1000); math.Abs(got) > 1e-3 {
		t.Fatalf("low cut passband: %.6f dB", got)
	}

	if got := cascadeDB(hc, 1000); math.Abs(got) > 1e-3 {
		t.Fatalf("high cut passband: %.6f dB", got)
	}
}

func TestButterworthQ_SecondOrder(t *testing.T) {
	if got := butterworthQ(2, 0); math.Abs(got-defaultQ) > 1e-12 {
		t.Fatalf("got %v, want 1/sqrt(2)", got)
	}
}
