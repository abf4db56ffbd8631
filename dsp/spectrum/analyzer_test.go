package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/window"
	"github.com/cwbudde/algo-eq/internal/testutil"
)

func TestNewAnalyzer_Defaults(t *testing.T) {
	a, err := NewAnalyzer(48000)
	if err != nil {
		t.Fatal(err)
	}

	if a.FFTSize() != 2048 {
		t.Fatalf("fft size = %d, want 2048", a.FFTSize())
	}

	if a.FloorDB() != DefaultFloorDB {
		t.Fatalf("floor = %v, want %v", a.FloorDB(), DefaultFloorDB)
	}

	if _, err := NewAnalyzer(0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("zero rate: err = %v", err)
	}
}

func TestAnalyzerOptions(t *testing.T) {
	a, err := NewAnalyzer(48000, WithFFTOrder(Order4096), WithFloorDB(-96), WithWindow(window.TypeHann))
	if err != nil {
		t.Fatal(err)
	}

	if a.FFTSize() != 4096 || a.FloorDB() != -96 {
		t.Fatalf("size=%d floor=%v", a.FFTSize(), a.FloorDB())
	}

	// Out-of-range values fall back to defaults.
	a, _ = NewAnalyzer(48000, WithFFTOrder(3), WithFloorDB(6))
	if a.FFTSize() != 2048 || a.FloorDB() != DefaultFloorDB {
		t.Fatalf("size=%d floor=%v", a.FFTSize(), a.FloorDB())
	}
}

func TestAnalyzer_SilenceSitsOnFloor(t *testing.T) {
	a, _ := NewAnalyzer(48000)

	bins, err := a.Compute()
	if err != nil {
		t.Fatal(err)
	}

	if len(bins) != 1025 {
		t.Fatalf("bins = %d, want 1025", len(bins))
	}

	for i, db := range bins {
		if db != DefaultFloorDB {
			t.Fatalf("bin %d = %v, want floor", i, db)
		}
	}
}

func TestAnalyzer_SinePeakBin(t *testing.T) {
	const (
		sampleRate = 48000.0
		bin        = 64
	)

	a, _ := NewAnalyzer(sampleRate)
	freq := bin * a.BinWidth()

	a.Push(testutil.DeterministicSine(freq, sampleRate, 1, a.FFTSize()))

	bins, err := a.Compute()
	if err != nil {
		t.Fatal(err)
	}

	peak := 0
	for i := range bins {
		if bins[i] > bins[peak] {
			peak = i
		}
	}

	if peak != bin {
		t.Fatalf("peak bin = %d, want %d", peak, bin)
	}

	// A bin-centred unit sine reads as half the window's coherent gain.
	want := 20 * math.Log10(window.Info(window.TypeBlackmanHarris4Term).CoherentGain/2)
	if math.Abs(bins[peak]-want) > 0.05 {
		t.Fatalf("peak level = %.3f dB, want %.3f", bins[peak], want)
	}
}

func TestAnalyzer_DrainFeedsFrame(t *testing.T) {
	a, _ := NewAnalyzer(48000)
	fifo, _ := NewSampleFIFO(512, 8)

	sig := testutil.DeterministicSine(1500, 48000, 1, 2048)
	fifo.Push(sig)

	if n := a.Drain(fifo); n != 4 {
		t.Fatalf("drained %d blocks, want 4", n)
	}

	direct, _ := NewAnalyzer(48000)
	direct.Push(sig)

	got, _ := a.Compute()
	want, _ := direct.Compute()
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)

	if a.Drain(nil) != 0 {
		t.Fatal("nil fifo drained blocks")
	}
}

func TestAnalyzer_PushShiftsFrame(t *testing.T) {
	a, _ := NewAnalyzer(48000)
	a.Push([]float64{1, 2})
	a.Push([]float64{3})

	n := a.FFTSize()
	if a.frame[n-3] != 1 || a.frame[n-2] != 2 || a.frame[n-1] != 3 {
		t.Fatalf("tail = %v", a.frame[n-3:])
	}

	a.Reset()

	if a.frame[n-1] != 0 {
		t.Fatal("Reset kept samples")
	}
}
