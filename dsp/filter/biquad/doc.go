// Package biquad provides the second-order IIR runtime used by the equalizer.
//
// A [Section] runs Direct Form II Transposed with its own delay registers and
// an atomically swappable [Coefficients] handle, so coefficient updates never
// tear. A [Cascade] holds exactly [MaxStages] sections and runs only the
// leading active ones, which is how cut-filter slopes are selected.
//
// Coefficient design lives in dsp/filter/design.
package biquad
