package testutil

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// MagnitudeResponseDB returns the magnitude of an impulse response in dB for
// bins 0..N/2, where N is len(ir) rounded up to a power of two. Zero
// magnitudes are reported as -300 dB.
func MagnitudeResponseDB(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, fmt.Errorf("impulse response must not be empty")
	}

	n := 1
	for n < len(ir) {
		n <<= 1
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fft plan %d: %w", n, err)
	}

	in := make([]complex128, n)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("forward fft: %w", err)
	}

	db := make([]float64, n/2+1)
	for k := range db {
		m := cmplx.Abs(out[k])
		if m <= 0 {
			db[k] = -300
			continue
		}
		db[k] = 20 * math.Log10(m)
	}

	return db, nil
}

// BinFrequency returns the centre frequency of bin k for an n-point FFT.
func BinFrequency(k, n int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(n)
}
