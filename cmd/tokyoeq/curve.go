package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/signal"
	"github.com/cwbudde/algo-eq/dsp/spectrum"
	"github.com/cwbudde/algo-eq/eq"
	"github.com/cwbudde/algo-eq/internal/cli"
)

// CurveCmd prints the response table.
type CurveCmd struct {
	SampleRate float64 `name:"sample-rate" default:"48000" help:"Sample rate in Hz"`
	Points     int     `short:"n" default:"31" help:"Number of log-spaced frequencies"`
	Measure    bool    `short:"m" help:"Also measure each point by running a sine through the filter"`
}

const (
	measureAmplitude = 0.5
	measureSeconds   = 0.5
)

func (c *CurveCmd) Run(g *Globals) error {
	params, err := g.parameters()
	if err != nil {
		return err
	}

	proc := eq.New()
	if err := proc.Prepare(c.SampleRate, 1024); err != nil {
		return err
	}

	if err := proc.UpdateParameters(params); err != nil {
		return err
	}

	g.debugf("curve: %d points at %g Hz", c.Points, c.SampleRate)

	w := g.out()
	printParameters(w, proc.Parameters())
	fmt.Fprintln(w)

	return c.printTable(w, proc)
}

func printParameters(w io.Writer, params eq.FilterParameters) {
	values := params.Values()

	rows := make([][2]string, 0, len(values))
	for _, id := range eq.ParamIDs() {
		rows = append(rows, [2]string{string(id), eq.DisplayString(id, values[string(id)])})
	}

	cli.PrintKeyValues(w, rows)
}

// curveFrequencies spaces n points on the log10 display axis, both ends
// included.
func curveFrequencies(n int) []float64 {
	if n < 2 {
		return []float64{eq.MinFrequency}
	}

	freqs := make([]float64, n)
	for i := range freqs {
		freqs[i] = core.MapToLog10(float64(i)/float64(n-1), eq.MinFrequency, eq.MaxFrequency)
	}

	return freqs
}

func (c *CurveCmd) printTable(w io.Writer, proc *eq.Processor) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := "Frequency\tResponse [dB]\tGrid\t"
	if c.Measure {
		header = "Frequency\tResponse [dB]\tMeasured [dB]\tGrid\t"
	}

	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, f := range curveFrequencies(c.Points) {
		row := fmt.Sprintf("%s\t%+.2f\t", eq.DisplayString(eq.ParamPeakFreq, f), proc.MagnitudeAt(f))

		if c.Measure {
			db, err := measure(proc, f)
			if err != nil {
				return err
			}

			row += fmt.Sprintf("%+.2f\t", db)
		}

		row += gainBar(proc.MagnitudeAt(f)) + "\t"

		if _, err := fmt.Fprintln(tw, row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}

	return nil
}

// gainBar draws db as a bar around a centre mark, one cell per 3 dB.
func gainBar(db float64) string {
	const half = 8

	cells := int(math.Round(core.Clamp(db, eq.MinResponseDB, eq.MaxResponseDB) / 3))

	bar := []rune("        |        ")
	switch {
	case cells > 0:
		for i := 1; i <= cells; i++ {
			bar[half+i] = '+'
		}
	case cells < 0:
		for i := 1; i <= -cells; i++ {
			bar[half-i] = '-'
		}
	}

	return string(bar)
}

// measure runs a sine at freq through a fresh processor with the same
// parameters and returns the steady-state gain in dB.
func measure(ref *eq.Processor, freq float64) (float64, error) {
	sr := ref.SampleRate()
	n := int(sr * measureSeconds)

	proc := eq.New()
	if err := proc.Prepare(sr, n); err != nil {
		return 0, err
	}

	if err := proc.UpdateParameters(ref.Parameters()); err != nil {
		return 0, err
	}

	sine, err := signal.NewGenerator(core.WithSampleRate(sr)).Sine(freq, measureAmplitude)
	if err != nil {
		return 0, err
	}

	left := make([]float64, n)
	sine.Fill(left)

	right := make([]float64, n)
	copy(right, left)
	proc.ProcessBlock(left, right)

	// Skip the first half to let the transient settle.
	amp, err := spectrum.ToneAmplitude(left[n/2:], freq, sr)
	if err != nil {
		return 0, err
	}

	return core.GainToDecibels(amp/measureAmplitude, -120), nil
}
