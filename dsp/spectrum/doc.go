// Package spectrum implements the analyzer behind the response display.
//
// The audio thread pushes samples into a [SampleFIFO]. The UI side drains it
// into an [Analyzer], which windows the latest FFT-sized frame, runs a forward
// FFT and converts the bins to dB. A [PathGenerator] maps those bins onto a
// logarithmic frequency axis for drawing. [Goertzel] measures single tones
// when a full FFT is not needed.
package spectrum
