package spectrum

import (
	"fmt"
	"sync/atomic"
)

// SampleFIFO moves fixed-size sample blocks from one producer (the audio
// thread) to one consumer (the UI) without locks.
//
// Push accumulates samples into a staging block owned by the producer. A
// full block is committed into the ring by advancing the write index. When
// the ring is full the completed block is dropped; the producer never waits.
type SampleFIFO struct {
	blockSize int
	blocks    [][]float64

	// producer-owned
	staging []float64
	fill    int

	write   atomic.Uint64
	read    atomic.Uint64
	dropped atomic.Uint64
}

// NewSampleFIFO allocates a FIFO holding up to capacity blocks of blockSize
// samples.
func NewSampleFIFO(blockSize, capacity int) (*SampleFIFO, error) {
	if blockSize <= 0 || capacity <= 0 {
		return nil, fmt.Errorf("%w: block size %d, capacity %d", ErrInvalidBlockSize, blockSize, capacity)
	}

	f := &SampleFIFO{
		blockSize: blockSize,
		blocks:    make([][]float64, capacity),
		staging:   make([]float64, blockSize),
	}

	for i := range f.blocks {
		f.blocks[i] = make([]float64, blockSize)
	}

	return f, nil
}

// BlockSize returns the number of samples per block.
func (f *SampleFIFO) BlockSize() int { return f.blockSize }

// Capacity returns the number of blocks the ring can hold.
func (f *SampleFIFO) Capacity() int { return len(f.blocks) }

// Push appends samples. Producer side only.
func (f *SampleFIFO) Push(samples []float64) {
	for len(samples) > 0 {
		n := copy(f.staging[f.fill:], samples)
		f.fill += n
		samples = samples[n:]

		if f.fill < f.blockSize {
			return
		}

		f.fill = 0
		f.commit()
	}
}

func (f *SampleFIFO) commit() {
	w := f.write.Load()
	if w-f.read.Load() >= uint64(len(f.blocks)) {
		f.dropped.Add(1)
		return
	}

	copy(f.blocks[w%uint64(len(f.blocks))], f.staging)
	f.write.Store(w + 1)
}

// Available returns the number of complete blocks ready to pop.
func (f *SampleFIFO) Available() int {
	return int(f.write.Load() - f.read.Load())
}

// Pop copies the oldest complete block into dst and reports whether one was
// available. dst must hold at least BlockSize samples. Consumer side only.
func (f *SampleFIFO) Pop(dst []float64) bool {
	r := f.read.Load()
	if r == f.write.Load() {
		return false
	}

	copy(dst, f.blocks[r%uint64(len(f.blocks))])
	f.read.Store(r + 1)

	return true
}

// Dropped returns how many completed blocks were discarded because the ring
// was full.
func (f *SampleFIFO) Dropped() uint64 {
	return f.dropped.Load()
}
