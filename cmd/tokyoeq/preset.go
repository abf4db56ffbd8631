package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-eq/eq"
)

// PresetCmd prints or saves a parameter preset.
type PresetCmd struct {
	Defaults bool   `help:"Ignore --load and --set and print the defaults"`
	Output   string `short:"o" type:"path" help:"Write the preset to this file instead of stdout"`
}

func (c *PresetCmd) Run(g *Globals) error {
	params := eq.Defaults()

	if !c.Defaults {
		var err error
		if params, err = g.parameters(); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}

	data = append(data, '\n')

	if c.Output == "" {
		_, err = g.out().Write(data)
		return err
	}

	if err := os.WriteFile(c.Output, data, 0o644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}

	g.debugf("preset written to %s", c.Output)

	return nil
}
