package main

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/signal"
	"github.com/cwbudde/algo-eq/dsp/spectrum"
)

// PlayCmd plays a test source through the equalizer.
type PlayCmd struct {
	Source     string  `default:"pink" enum:"pink,white,sine" help:"Test source (pink, white, sine)"`
	Freq       float64 `default:"1000" help:"Sine frequency in Hz"`
	Amplitude  float64 `short:"a" default:"0.25" help:"Source amplitude"`
	Seed       int64   `default:"1" help:"Noise seed"`
	SampleRate float64 `name:"sample-rate" default:"48000" help:"Output sample rate in Hz"`
	BlockSize  int     `name:"block-size" default:"512" help:"Maximum samples per processing block"`
	FFTOrder   int     `name:"fft-order" default:"11" enum:"11,12,13" help:"Analyzer FFT order (11, 12 or 13)"`
	Window     string  `default:"blackman-harris" help:"Analyzer window, see the windows command"`
}

func (c *PlayCmd) analyzerOptions() ([]spectrum.AnalyzerOption, error) {
	t, err := windowByName(c.Window)
	if err != nil {
		return nil, err
	}

	return []spectrum.AnalyzerOption{
		spectrum.WithFFTOrder(spectrum.FFTOrder(c.FFTOrder)),
		spectrum.WithWindow(t),
	}, nil
}

func (c *PlayCmd) source() (signal.Source, error) {
	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(c.SampleRate)},
		signal.WithSeed(c.Seed),
	)

	switch c.Source {
	case "sine":
		return gen.Sine(c.Freq, c.Amplitude)
	case "white":
		return gen.WhiteNoise(c.Amplitude)
	case "pink":
		return gen.PinkNoise(c.Amplitude)
	default:
		return nil, fmt.Errorf("unknown source %q", c.Source)
	}
}
