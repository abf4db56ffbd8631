// Package core holds the small numeric helpers and processor options shared
// by the equalizer packages: clamping, dB conversions, range mapping and the
// logarithmic frequency axis.
package core
