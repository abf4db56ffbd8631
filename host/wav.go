package host

import (
	"context"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"

	"github.com/cwbudde/algo-eq/dsp/level"
	"github.com/cwbudde/algo-eq/eq"
)

// Report describes a processed file.
type Report struct {
	SampleRate int
	Frames     int
	In, Out    [2]level.Stats
}

// ProcessWAV decodes a WAV stream from in, filters it with params at the
// file's sample rate and encodes the result to out in the input format.
// Cancelling ctx stops the stream at the next chunk and returns ctx.Err.
func ProcessWAV(ctx context.Context, in io.Reader, out io.WriteSeeker, params eq.FilterParameters, opts ...Option) error {
	cfg := applyOptions(opts)

	src, format, err := wav.Decode(in)
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer src.Close()

	cfg.logf("wav: %d Hz, %d channels, %d bytes per sample, %d frames",
		format.SampleRate, format.NumChannels, format.Precision, src.Len())

	proc := eq.New()
	if err := proc.Prepare(float64(format.SampleRate), cfg.blockSize); err != nil {
		return fmt.Errorf("prepare equalizer: %w", err)
	}

	if err := proc.UpdateParameters(params); err != nil {
		return fmt.Errorf("update parameters: %w", err)
	}

	var inMeter, outMeter meterStreamer

	inMeter.src = src
	outMeter.src = NewStreamer(&inMeter, proc)

	stream := &cancelStreamer{ctx: ctx, src: &outMeter}
	if err := wav.Encode(out, stream, format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}

	if err := stream.Err(); err != nil {
		return err
	}

	r := Report{SampleRate: int(format.SampleRate), Frames: stream.frames}
	for ch := range r.In {
		r.In[ch] = inMeter.meters[ch].Result()
		r.Out[ch] = outMeter.meters[ch].Result()
		cfg.logf("wav: channel %d in peak %.1f dBFS rms %.1f dBFS, out peak %.1f dBFS rms %.1f dBFS",
			ch, r.In[ch].PeakdB, r.In[ch].RMSdB, r.Out[ch].PeakdB, r.Out[ch].RMSdB)
	}

	cfg.logf("wav: wrote %d frames", r.Frames)

	if cfg.report != nil {
		*cfg.report = r
	}

	return nil
}

// meterStreamer measures the frames passing through it.
type meterStreamer struct {
	src    beep.Streamer
	meters [2]level.Meter
}

func (m *meterStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := m.src.Stream(samples)
	for _, f := range samples[:n] {
		m.meters[0].Add(f[0])
		m.meters[1].Add(f[1])
	}

	return n, ok
}

func (m *meterStreamer) Err() error {
	return m.src.Err()
}

// cancelStreamer ends the stream once ctx is done.
type cancelStreamer struct {
	ctx    context.Context
	src    beep.Streamer
	err    error
	frames int
}

func (c *cancelStreamer) Stream(samples [][2]float64) (int, bool) {
	if c.err != nil {
		return 0, false
	}

	if err := c.ctx.Err(); err != nil {
		c.err = err
		return 0, false
	}

	n, ok := c.src.Stream(samples)
	c.frames += n

	return n, ok
}

func (c *cancelStreamer) Err() error {
	if c.err != nil {
		return c.err
	}

	return c.src.Err()
}
