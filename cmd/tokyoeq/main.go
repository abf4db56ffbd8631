// Command tokyoeq drives the three-band equalizer from the terminal.
//
// Usage:
//
//	tokyoeq [flags] <command>
//
// Examples:
//
//	tokyoeq curve --set "Peak Gain=6" --measure
//	tokyoeq process in.wav out.wav --load vocal.json
//	tokyoeq play --source pink
//	tokyoeq preset --set "LowCut Slope=3" > steep.json
//	tokyoeq windows
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-eq/eq"
	"github.com/cwbudde/algo-eq/internal/cli"
)

var version = "0.1.0"

// Globals are the flags shared by every command.
type Globals struct {
	Version  versionFlag        `short:"v" help:"Show version information"`
	DebugLog string             `name:"debug-log" type:"path" help:"Append debug messages to this file"`
	Load     string             `short:"l" type:"existingfile" help:"Load parameters from a JSON preset"`
	Set      map[string]float64 `short:"s" help:"Override a parameter by name, e.g. --set 'Peak Gain=6'"`

	stdout io.Writer                        `kong:"-"`
	logf   func(format string, args ...any) `kong:"-"`
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Curve   CurveCmd   `cmd:"" help:"Print the magnitude response and display grid"`
	Process ProcessCmd `cmd:"" help:"Filter a WAV file"`
	Play    PlayCmd    `cmd:"" help:"Play a test signal through the equalizer with a live control surface"`
	Preset  PresetCmd  `cmd:"" help:"Print parameters as a JSON preset"`
	Windows WindowsCmd `cmd:"" help:"List the analyzer window functions"`
}

type versionFlag bool

func (versionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(app.Stdout, vars["version"])
	app.Exit(0)

	return nil
}

func main() {
	var c CLI

	ctx := kong.Parse(&c,
		kong.Name("tokyoeq"),
		kong.Description("Three-band parametric equalizer"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	c.stdout = os.Stdout

	closeLog, err := c.openLog()
	if err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}

	err = ctx.Run(&c.Globals)
	closeLog()

	if err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// openLog installs the debug logger. Without --debug-log messages are
// dropped.
func (g *Globals) openLog() (func(), error) {
	g.logf = func(string, ...any) {}

	if g.DebugLog == "" {
		return func() {}, nil
	}

	f, err := os.OpenFile(g.DebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}

	logger := log.New(f, "tokyoeq ", log.LstdFlags|log.Lmicroseconds)
	g.logf = logger.Printf

	return func() { _ = f.Close() }, nil
}

// parameters resolves the defaults, the --load preset and the --set
// overrides, in that order.
func (g *Globals) parameters() (eq.FilterParameters, error) {
	params := eq.Defaults()

	if g.Load != "" {
		data, err := os.ReadFile(g.Load)
		if err != nil {
			return params, fmt.Errorf("read preset: %w", err)
		}

		if err := json.Unmarshal(data, &params); err != nil {
			return params, fmt.Errorf("parse preset %s: %w", g.Load, err)
		}

		g.debugf("loaded preset %s", g.Load)
	}

	if len(g.Set) == 0 {
		return params, nil
	}

	values := params.Values()

	keys := make([]string, 0, len(g.Set))
	for k := range g.Set {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if _, ok := values[k]; !ok {
			return params, fmt.Errorf("%w: unknown parameter %q (known: %s)", eq.ErrInvalidParameters, k, knownParameters())
		}

		values[k] = g.Set[k]
		g.debugf("set %s = %g", k, g.Set[k])
	}

	params = eq.FromValues(values)

	return params, nil
}

func (g *Globals) debugf(format string, args ...any) {
	if g.logf != nil {
		g.logf(format, args...)
	}
}

func (g *Globals) out() io.Writer {
	if g.stdout == nil {
		return os.Stdout
	}

	return g.stdout
}

func knownParameters() string {
	ids := eq.ParamIDs()

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}

	return strings.Join(names, ", ")
}
