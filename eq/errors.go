package eq

import "errors"

var (
	// ErrInvalidSampleRate is returned by Prepare for non-positive or
	// non-finite sample rates.
	ErrInvalidSampleRate = errors.New("eq: invalid sample rate")
	// ErrInvalidBlockSize is returned by Prepare for a non-positive block size.
	ErrInvalidBlockSize = errors.New("eq: invalid block size")
	// ErrInvalidParameters reports non-finite or out-of-range parameters.
	ErrInvalidParameters = errors.New("eq: invalid parameters")
)
