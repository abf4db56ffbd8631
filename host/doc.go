// Package host connects an eq.Processor to real audio.
//
// Streamer adapts the processor to a gopxl/beep pipeline, ProcessWAV runs a
// WAV file through it, and Player (not built with the headless tag) sends a
// test source through it to the default output device via oto.
package host
