//go:build !headless

package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-eq/eq"
	"github.com/cwbudde/algo-eq/host"
	"github.com/cwbudde/algo-eq/internal/tui"
)

func (c *PlayCmd) Run(g *Globals) error {
	params, err := g.parameters()
	if err != nil {
		return err
	}

	src, err := c.source()
	if err != nil {
		return err
	}

	analyzerOpts, err := c.analyzerOptions()
	if err != nil {
		return err
	}

	proc := eq.New()
	if err := proc.Prepare(c.SampleRate, c.BlockSize); err != nil {
		return err
	}

	if err := proc.UpdateParameters(params); err != nil {
		return err
	}

	player, err := host.NewPlayer(proc, src, host.WithLogf(g.debugf))
	if err != nil {
		return err
	}
	defer player.Close()

	player.Start()

	p := tea.NewProgram(tui.NewModel(proc, g.debugf, analyzerOpts...), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	return nil
}
