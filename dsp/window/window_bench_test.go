package window

import (
	"strconv"
	"testing"
)

// Analyzer frame sizes.
var benchSizes = []int{2048, 4096, 8192}

func BenchmarkGenerate(b *testing.B) {
	for _, n := range benchSizes {
		for _, tc := range []struct {
			name string
			typ  Type
			opts []Option
		}{
			{"hann", TypeHann, nil},
			{"blackman-harris", TypeBlackmanHarris4Term, []Option{WithPeriodic()}},
			{"kaiser", TypeKaiser, []Option{WithAlpha(8.6)}},
		} {
			b.Run(tc.name+"/"+strconv.Itoa(n), func(b *testing.B) {
				b.ReportAllocs()

				for b.Loop() {
					_ = Generate(tc.typ, n, tc.opts...)
				}
			})
		}
	}
}

func BenchmarkApplyCoefficientsInPlace(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			coeffs := Generate(TypeBlackmanHarris4Term, n, WithPeriodic())
			frame := make([]float64, n)

			b.ReportAllocs()

			for b.Loop() {
				_ = ApplyCoefficientsInPlace(frame, coeffs)
			}
		})
	}
}
