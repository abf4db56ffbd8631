package spectrum

import "errors"

var (
	// ErrInvalidSampleRate is returned for non-positive or non-finite sample rates.
	ErrInvalidSampleRate = errors.New("spectrum: invalid sample rate")
	// ErrInvalidFrequency is returned for a tone frequency outside [0, Nyquist].
	ErrInvalidFrequency = errors.New("spectrum: invalid frequency")
	// ErrInvalidBlockSize is returned for a non-positive FIFO block size or capacity.
	ErrInvalidBlockSize = errors.New("spectrum: invalid block size")
)
