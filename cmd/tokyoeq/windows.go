package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-eq/dsp/spectrum"
	"github.com/cwbudde/algo-eq/dsp/window"
)

// WindowsCmd prints the properties of the analyzer window functions.
type WindowsCmd struct {
	Order int     `default:"11" enum:"11,12,13" help:"FFT order of the analyzer (11, 12 or 13)"`
	Alpha float64 `default:"8.6" help:"Kaiser beta"`
}

type windowEntry struct {
	name string
	typ  window.Type
}

var windowTypes = []windowEntry{
	{"rectangular", window.TypeRectangular},
	{"hann", window.TypeHann},
	{"hamming", window.TypeHamming},
	{"blackman", window.TypeBlackman},
	{"blackman-harris", window.TypeBlackmanHarris4Term},
	{"flat-top", window.TypeFlatTop},
	{"kaiser", window.TypeKaiser},
}

func windowByName(name string) (window.Type, error) {
	for _, e := range windowTypes {
		if e.name == name {
			return e.typ, nil
		}
	}

	return 0, fmt.Errorf("unknown window %q", name)
}

func (c *WindowsCmd) Run(g *Globals) error {
	size := spectrum.FFTOrder(c.Order).Size()

	tw := tabwriter.NewWriter(g.out(), 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Name\tWindow\tSize\tCoherent Gain\tENBW [bins]\tSidelobe [dB]\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if _, err := fmt.Fprintf(tw, "----\t------\t----\t-------------\t-----------\t-------------\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, e := range windowTypes {
		t := e.typ
		info := window.Info(t)

		var opts []window.Option
		label := info.Name

		if t == window.TypeKaiser {
			opts = append(opts, window.WithAlpha(c.Alpha))
			label = fmt.Sprintf("%s (b=%.2f)", info.Name, c.Alpha)
		}

		coeffs := window.Generate(t, size, append(opts, window.WithPeriodic())...)

		cg, err := window.CoherentGain(coeffs)
		if err != nil {
			return fmt.Errorf("%s: %w", info.Name, err)
		}

		enbw, err := window.EquivalentNoiseBandwidth(coeffs)
		if err != nil {
			return fmt.Errorf("%s: %w", info.Name, err)
		}

		sidelobe := "-"
		if info.HighestSidelobe != 0 {
			sidelobe = fmt.Sprintf("%.1f", info.HighestSidelobe)
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%.6f\t%.4f\t%s\n", e.name, label, size, cg, enbw, sidelobe); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}

	return nil
}
