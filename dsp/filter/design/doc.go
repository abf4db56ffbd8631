// Package design computes biquad coefficients for the equalizer bands.
//
// [Peak] is the RBJ peaking (bell) filter. [ButterworthLowCut] and
// [ButterworthHighCut] decompose an even-order Butterworth high-pass or
// low-pass into second-order sections, one per 12 dB/octave of slope.
//
// All designers are pure. Degenerate input (non-positive sample rate,
// frequency outside (0, Nyquist)) yields identity coefficients instead of
// NaNs; range checking is the caller's job.
package design
