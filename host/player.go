//go:build !headless

package host

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-eq/dsp/signal"
	"github.com/cwbudde/algo-eq/eq"
)

const bytesPerFrame = 2 * 4 // stereo float32

// Player plays a mono test source through an eq.Processor on the default
// output device. oto calls Read from its own goroutine, which is the audio
// context of the processor.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	proc   *eq.Processor
	source atomic.Pointer[sourceBox]

	left, right []float64

	started bool
	mu      sync.Mutex // setup and control only
	logf    Logf
}

type sourceBox struct{ src signal.Source }

// NewPlayer opens an output stream at proc's sample rate. proc must be
// prepared; its MaxBlockSize bounds the chunk handed to ProcessBlock.
func NewPlayer(proc *eq.Processor, src signal.Source, opts ...Option) (*Player, error) {
	cfg := applyOptions(opts)

	if !proc.Prepared() {
		return nil, ErrNotPrepared
	}

	op := &oto.NewContextOptions{
		SampleRate:   int(proc.SampleRate()),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio output: %w", err)
	}
	<-ready

	n := max(proc.MaxBlockSize(), 1)
	p := &Player{
		ctx:   ctx,
		proc:  proc,
		left:  make([]float64, n),
		right: make([]float64, n),
		logf:  cfg.logf,
	}
	p.SetSource(src)
	p.player = ctx.NewPlayer(p)

	cfg.logf("player: %d Hz, block %d", op.SampleRate, n)

	return p, nil
}

// SetSource swaps the signal played. A nil source plays silence.
func (p *Player) SetSource(src signal.Source) {
	p.source.Store(&sourceBox{src: src})
}

// Read renders len(b)/8 stereo float32 frames. It does not allocate.
func (p *Player) Read(b []byte) (int, error) {
	frames := len(b) / bytesPerFrame
	block := len(p.left)

	var src signal.Source
	if box := p.source.Load(); box != nil {
		src = box.src
	}

	for off := 0; off < frames; off += block {
		n := min(block, frames-off)
		left := p.left[:n]
		right := p.right[:n]

		if src == nil {
			clear(left)
		} else {
			src.Fill(left)
		}

		copy(right, left)
		p.proc.ProcessBlock(left, right)

		out := b[off*bytesPerFrame:]
		for i := range n {
			binary.LittleEndian.PutUint32(out[i*bytesPerFrame:], math.Float32bits(float32(left[i])))
			binary.LittleEndian.PutUint32(out[i*bytesPerFrame+4:], math.Float32bits(float32(right[i])))
		}
	}

	return frames * bytesPerFrame, nil
}

// Start begins playback.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
		p.logf("player: started")
	}
}

// Close stops playback and releases the output stream.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}

	err := p.player.Close()
	p.player = nil
	p.started = false
	p.logf("player: closed")

	return err
}
