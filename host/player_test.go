//go:build !headless

package host

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/signal"
	"github.com/cwbudde/algo-eq/eq"
)

// newTestPlayer builds a Player without opening an output device.
func newTestPlayer(t *testing.T, proc *eq.Processor, src signal.Source) *Player {
	t.Helper()

	n := proc.MaxBlockSize()
	p := &Player{
		proc:  proc,
		left:  make([]float64, n),
		right: make([]float64, n),
		logf:  func(string, ...any) {},
	}
	p.SetSource(src)

	return p
}

func frameAt(b []byte, i int) (float32, float32) {
	l := math.Float32frombits(binary.LittleEndian.Uint32(b[i*bytesPerFrame:]))
	r := math.Float32frombits(binary.LittleEndian.Uint32(b[i*bytesPerFrame+4:]))

	return l, r
}

func TestPlayer_ReadRendersBothChannels(t *testing.T) {
	const sampleRate = 48000.0

	params := eq.Defaults()
	params.PeakFreq = 1000
	params.PeakGainDB = -12

	proc := preparedProcessor(t, sampleRate, 128, params)

	sine, err := signal.NewGenerator(core.WithSampleRate(sampleRate)).Sine(1000, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	p := newTestPlayer(t, proc, sine)

	// 4800 frames, not a multiple of the block size.
	buf := make([]byte, 4800*bytesPerFrame)

	for range 10 {
		n, err := p.Read(buf)
		if err != nil || n != len(buf) {
			t.Fatalf("Read = (%d, %v)", n, err)
		}
	}

	peak := 0.0
	for i := range 4800 {
		l, r := frameAt(buf, i)
		if l != r {
			t.Fatalf("frame %d: left %v != right %v", i, l, r)
		}

		peak = max(peak, math.Abs(float64(l)))
	}

	want := 0.5 * math.Pow(10, -12.0/20)
	if math.Abs(peak-want) > 5e-3 {
		t.Fatalf("peak = %v, want about %v", peak, want)
	}
}

func TestPlayer_NilSourceIsSilent(t *testing.T) {
	proc := preparedProcessor(t, 44100, 64, eq.Defaults())
	p := newTestPlayer(t, proc, nil)

	buf := make([]byte, 100*bytesPerFrame+3)
	for i := range buf {
		buf[i] = 0xff
	}

	n, err := p.Read(buf)
	if err != nil {
		t.Fatal(err)
	}

	if n != 100*bytesPerFrame {
		t.Fatalf("n = %d, want %d", n, 100*bytesPerFrame)
	}

	for i := range 100 {
		if l, r := frameAt(buf, i); l != 0 || r != 0 {
			t.Fatalf("frame %d = (%v, %v), want silence", i, l, r)
		}
	}
}

func TestPlayer_ReadDoesNotAllocate(t *testing.T) {
	proc := preparedProcessor(t, 44100, 256, eq.Defaults())

	noise, err := signal.NewGenerator().WhiteNoise(0.1)
	if err != nil {
		t.Fatal(err)
	}

	p := newTestPlayer(t, proc, noise)
	buf := make([]byte, 1024*bytesPerFrame)

	allocs := testing.AllocsPerRun(20, func() {
		_, _ = p.Read(buf)
	})
	if allocs != 0 {
		t.Fatalf("Read allocated %v times per run", allocs)
	}
}

func TestNewPlayer_RequiresPreparedProcessor(t *testing.T) {
	if _, err := NewPlayer(eq.New(), nil); err != ErrNotPrepared {
		t.Fatalf("err = %v, want ErrNotPrepared", err)
	}
}
