package eq

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/core"
)

func collect(t *testing.T, chain *ChannelChain, sampleRate float64, area Area) []Point {
	t.Helper()

	var pts []Point
	for pt := range ResponseCurveIn(chain, sampleRate, area) {
		pts = append(pts, pt)
	}

	return pts
}

func TestResponseCurve_FlatChainSitsOnCentreLine(t *testing.T) {
	var chain ChannelChain

	n := 0
	for pt := range ResponseCurve(&chain, 48000, 200) {
		if pt.X != float64(n) {
			t.Fatalf("point %d has X=%v", n, pt.X)
		}

		if pt.DB != 0 || pt.Y != 0.5 {
			t.Fatalf("point %d = %+v, want 0 dB at y=0.5", n, pt)
		}

		n++
	}

	if n != 200 {
		t.Fatalf("got %d points, want 200", n)
	}
}

func TestResponseCurveIn_MapsIntoArea(t *testing.T) {
	p := Defaults()
	p.PeakFreq = 1000
	p.PeakGainDB = 24
	p.PeakQuality = 0.1
	p.LowCutBypassed = true
	p.HighCutBypassed = true

	var chain ChannelChain
	chain.Apply(NewChainCoefficients(p, 48000))

	area := Area{X: 30, Y: 10, Width: 300, Height: 120}
	pts := collect(t, &chain, 48000, area)

	if len(pts) != 300 {
		t.Fatalf("got %d points, want 300", len(pts))
	}

	if pts[0].X != area.X || pts[len(pts)-1].X != area.X+299 {
		t.Fatalf("x range %v..%v", pts[0].X, pts[len(pts)-1].X)
	}

	// Find the column nearest 1 kHz: +24 dB maps to the top edge.
	col := int(math.Round(area.Width * core.MapFromLog10(1000, MinFrequency, MaxFrequency)))
	if got := pts[col]; got.DB < 23.9 || math.Abs(got.Y-area.Y) > 0.2 {
		t.Fatalf("column %d = %+v, want +24 dB at y=%v", col, got, area.Y)
	}

	for _, pt := range pts {
		want := core.MapRange(pt.DB, MinResponseDB, MaxResponseDB, area.Bottom(), area.Y)
		if math.Abs(pt.Y-want) > 1e-12 {
			t.Fatalf("point %+v not on gain axis", pt)
		}
	}
}

func TestResponseCurve_CutsPullEdgesDown(t *testing.T) {
	p := Defaults()
	p.LowCutFreq = 200
	p.LowCutSlope = Slope48
	p.HighCutFreq = 5000
	p.HighCutSlope = Slope48

	var chain ChannelChain
	chain.Apply(NewChainCoefficients(p, 48000))

	pts := collect(t, &chain, 48000, Area{Width: 100, Height: 1})

	if pts[0].DB > -80 || pts[len(pts)-1].DB > -40 {
		t.Fatalf("edges at %.1f / %.1f dB, want deep attenuation", pts[0].DB, pts[len(pts)-1].DB)
	}

	if pts[0].Y <= 1 {
		t.Fatalf("attenuation below -24 dB should map under the area, got y=%v", pts[0].Y)
	}
}

func TestResponseCurve_RestartableAndStoppable(t *testing.T) {
	var chain ChannelChain
	chain.Apply(NewChainCoefficients(activeParams(), 48000))

	seq := ResponseCurve(&chain, 48000, 64)

	first := make([]Point, 0, 64)
	for pt := range seq {
		first = append(first, pt)
	}

	i := 0
	for pt := range seq {
		if pt != first[i] {
			t.Fatalf("second pass differs at %d", i)
		}
		i++
	}

	count := 0
	for range seq {
		count++
		if count == 3 {
			break
		}
	}

	if count != 3 {
		t.Fatalf("early stop yielded %d points", count)
	}
}

func TestResponseCurve_EmptyInputs(t *testing.T) {
	for range ResponseCurve(nil, 48000, 10) {
		t.Fatal("nil chain yielded a point")
	}

	var chain ChannelChain
	for range ResponseCurve(&chain, 48000, 0) {
		t.Fatal("zero width yielded a point")
	}
}

func TestResponseCurve_DoesNotTouchChainState(t *testing.T) {
	var chain ChannelChain
	chain.Apply(NewChainCoefficients(activeParams(), 48000))
	chain.Process([]float64{1, 0.5, -0.25})

	before := chain.Peak().State()

	for range ResponseCurve(&chain, 48000, 50) {
	}

	if chain.Peak().State() != before {
		t.Fatal("response sampling changed filter state")
	}
}

func TestAxisHelpers(t *testing.T) {
	area := Area{X: 10, Y: 0, Width: 300, Height: 100}

	for _, f := range GridFrequencies() {
		x := XForFrequency(area, f)
		if got := FrequencyAtX(area, x); math.Abs(got-f) > 1e-9*f {
			t.Fatalf("%v Hz -> x=%v -> %v Hz", f, x, got)
		}
	}

	if got := YForGain(area, 24); got != 0 {
		t.Fatalf("+24 dB at y=%v, want 0", got)
	}

	if got := YForGain(area, -24); got != 100 {
		t.Fatalf("-24 dB at y=%v, want 100", got)
	}

	if got := FrequencyAtX(Area{}, 5); got != MinFrequency {
		t.Fatalf("empty area frequency = %v", got)
	}
}
