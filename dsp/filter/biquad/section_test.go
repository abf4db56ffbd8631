package biquad

import (
	"math"
	"sync"
	"testing"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// lowpassish is a stable section used throughout the tests.
func lowpassish() Coefficients {
	return Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
}

func TestZeroSectionIsPassthrough(t *testing.T) {
	var s Section
	for i, x := range []float64{1, 0, -1, 0.5, 0.25} {
		if y := s.ProcessSample(x); y != x {
			t.Errorf("sample %d: got %v, want %v", i, y, x)
		}
	}

	buf := []float64{0.3, -0.7, 1}
	s.ProcessBlock(buf)
	if buf[0] != 0.3 || buf[1] != -0.7 || buf[2] != 1 {
		t.Fatalf("block passthrough changed samples: %v", buf)
	}

	c := s.Coefficients()
	if !c.IsIdentity() {
		t.Fatalf("zero section coefficients = %+v, want identity", c)
	}
}

func TestProcessSample_DFIIT(t *testing.T) {
	// Hand-traced with x = [1, 0, 0, 0]:
	//
	// n=0: y=0.25         d0=0.55    d1=0.24
	// n=1: y=0.55         d0=0.35    d1=-0.022
	// n=2: y=0.35         d0=0.048   d1=-0.014
	// n=3: y=0.048
	s := NewSection(lowpassish())

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Errorf("sample %d: got %.15f, want %.15f", i, y, w)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 8, 33} {
		input := make([]float64, n)
		for i := range input {
			input[i] = math.Sin(float64(i) * 0.37)
		}

		ref := NewSection(lowpassish())
		want := make([]float64, n)
		for i, x := range input {
			want[i] = ref.ProcessSample(x)
		}

		s := NewSection(lowpassish())
		got := append([]float64(nil), input...)
		s.ProcessBlock(got)

		for i := range got {
			if !almostEqual(got[i], want[i], eps) {
				t.Fatalf("n=%d sample %d: block=%.15f, sample=%.15f", n, i, got[i], want[i])
			}
		}
		if s.State() != ref.State() {
			t.Fatalf("n=%d: state mismatch block=%v sample=%v", n, s.State(), ref.State())
		}
	}
}

func TestProcessBlock_StreamsAcrossCalls(t *testing.T) {
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}

	whole := NewSection(lowpassish())
	a := append([]float64(nil), input...)
	whole.ProcessBlock(a)

	split := NewSection(lowpassish())
	b := append([]float64(nil), input...)
	split.ProcessBlock(b[:3])
	split.ProcessBlock(b[3:])

	for i := range a {
		if !almostEqual(a[i], b[i], eps) {
			t.Fatalf("sample %d: whole=%v split=%v", i, a[i], b[i])
		}
	}
}

func TestReset(t *testing.T) {
	s := NewSection(lowpassish())
	s.ProcessSample(1)
	if s.State() == [2]float64{} {
		t.Fatal("state should be non-zero after processing")
	}
	s.Reset()
	if s.State() != [2]float64{} {
		t.Fatalf("state after Reset = %v", s.State())
	}
}

func TestSetCoefficients_NilInstallsIdentity(t *testing.T) {
	s := NewSection(lowpassish())
	s.SetCoefficients(nil)
	c := s.Coefficients()
	if !c.IsIdentity() {
		t.Fatalf("got %+v, want identity", c)
	}
}

func TestNewSection_CopiesCoefficients(t *testing.T) {
	c := lowpassish()
	s := NewSection(c)
	c.B0 = 99
	if got := s.Coefficients(); got.B0 != 0.25 {
		t.Fatalf("section observed caller mutation: B0=%v", got.B0)
	}
}

func TestSetCoefficients_ConcurrentSwapNeverTears(t *testing.T) {
	a := &Coefficients{B0: 1, B1: 1, B2: 1, A1: 0, A2: 0}
	b := &Coefficients{B0: 2, B1: 2, B2: 2, A1: 0, A2: 0}

	var s Section
	s.SetCoefficients(a)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			if i%2 == 0 {
				s.SetCoefficients(b)
			} else {
				s.SetCoefficients(a)
			}
		}
	}()

	for i := 0; i < 2000; i++ {
		c := s.Coefficients()
		if c.B0 != c.B1 || c.B1 != c.B2 {
			t.Fatalf("torn coefficients observed: %+v", c)
		}
	}
	wg.Wait()
}

func BenchmarkSectionProcessBlock(b *testing.B) {
	s := NewSection(lowpassish())
	buf := make([]float64, 512)
	for i := range buf {
		buf[i] = math.Sin(float64(i) * 0.01)
	}

	b.SetBytes(int64(len(buf) * 8))
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		s.ProcessBlock(buf)
	}
}
