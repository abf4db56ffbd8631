package host

import (
	"github.com/gopxl/beep/v2"

	"github.com/cwbudde/algo-eq/eq"
)

// Streamer filters a beep stream through an eq.Processor. The processor
// must already be prepared; Stream hands it at most MaxBlockSize frames per
// call to ProcessBlock.
type Streamer struct {
	src  beep.Streamer
	proc *eq.Processor

	left, right []float64
}

var _ beep.Streamer = (*Streamer)(nil)

// NewStreamer wraps src. Scratch buffers are sized from proc.MaxBlockSize.
func NewStreamer(src beep.Streamer, proc *eq.Processor) *Streamer {
	n := max(proc.MaxBlockSize(), 1)

	return &Streamer{
		src:   src,
		proc:  proc,
		left:  make([]float64, n),
		right: make([]float64, n),
	}
}

// Stream pulls frames from the source and filters them in place.
func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.src.Stream(samples)
	s.process(samples[:n])

	return n, ok
}

// Err returns the source error.
func (s *Streamer) Err() error {
	return s.src.Err()
}

func (s *Streamer) process(frames [][2]float64) {
	block := len(s.left)

	for off := 0; off < len(frames); off += block {
		chunk := frames[off:min(off+block, len(frames))]
		left := s.left[:len(chunk)]
		right := s.right[:len(chunk)]

		for i, f := range chunk {
			left[i] = f[0]
			right[i] = f[1]
		}

		s.proc.ProcessBlock(left, right)

		for i := range chunk {
			chunk[i] = [2]float64{left[i], right[i]}
		}
	}
}
