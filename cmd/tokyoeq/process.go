package main

import (
	"context"
	"fmt"
	"io"
	"os"
	ossignal "os/signal"

	"github.com/cwbudde/algo-eq/host"
	"github.com/cwbudde/algo-eq/internal/cli"
)

// ProcessCmd filters a WAV file.
type ProcessCmd struct {
	Input     string `arg:"" type:"existingfile" help:"Input WAV file"`
	Output    string `arg:"" type:"path" help:"Output WAV file"`
	BlockSize int    `name:"block-size" default:"512" help:"Maximum samples per processing block"`
}

func (c *ProcessCmd) Run(g *Globals) error {
	params, err := g.parameters()
	if err != nil {
		return err
	}

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	in, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	g.debugf("process: %s -> %s", c.Input, c.Output)

	var report host.Report

	err = host.ProcessWAV(ctx, in, out, params,
		host.WithBlockSize(c.BlockSize), host.WithLogf(g.debugf), host.WithReport(&report))
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}

	if err != nil {
		_ = os.Remove(c.Output)
		return err
	}

	printReport(g.out(), c.Input, c.Output, report)

	return nil
}

func printReport(w io.Writer, input, output string, r host.Report) {
	seconds := 0.0
	if r.SampleRate > 0 {
		seconds = float64(r.Frames) / float64(r.SampleRate)
	}

	rows := [][2]string{
		{"Input", input},
		{"Output", output},
		{"Duration", fmt.Sprintf("%.2f s at %d Hz", seconds, r.SampleRate)},
	}

	for ch, name := range []string{"Left", "Right"} {
		rows = append(rows,
			[2]string{name + " peak", fmt.Sprintf("%.1f -> %.1f dBFS", r.In[ch].PeakdB, r.Out[ch].PeakdB)},
			[2]string{name + " RMS", fmt.Sprintf("%.1f -> %.1f dBFS", r.In[ch].RMSdB, r.Out[ch].RMSdB)},
		)
	}

	cli.PrintKeyValues(w, rows)
}
