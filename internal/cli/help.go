package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpDescStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(AccentColor).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ECE6A")).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2AC3DE")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Italic(true)
)

// StyledHelpPrinter returns a kong help printer that renders the selected
// command with lipgloss.
func StyledHelpPrinter(kong.HelpOptions) kong.HelpPrinter {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		node := ctx.Selected()
		if node == nil {
			node = ctx.Model.Node
		}

		sb.WriteString(TitleStyle.Render("tokyoeq"))
		sb.WriteString("\n")
		sb.WriteString(helpDescStyle.Render(ctx.Model.Help))
		sb.WriteString("\n")

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(node.Summary())
		sb.WriteString("\n")

		if cmds := commands(node); len(cmds) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Commands:"))
			sb.WriteString("\n")
			for _, c := range cmds {
				writeEntry(&sb, helpArgStyle.Render(c.name), c.help, "")
			}
		}

		if args := arguments(node); len(args) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Arguments:"))
			sb.WriteString("\n")
			for _, a := range args {
				writeEntry(&sb, helpArgStyle.Render(a.name), a.help, "")
			}
		}

		sb.WriteString("\n")
		sb.WriteString(helpSectionStyle.Render("Flags:"))
		sb.WriteString("\n")
		for _, f := range flags(node) {
			writeEntry(&sb, helpFlagStyle.Render(f.name), f.help, f.defaultVal)
		}

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())

		return nil
	}
}

type helpEntry struct {
	name       string
	help       string
	defaultVal string
}

func writeEntry(sb *strings.Builder, name, help, defaultVal string) {
	sb.WriteString("  ")
	sb.WriteString(name)

	if help != "" {
		sb.WriteString("  ")
		sb.WriteString(help)
	}

	if defaultVal != "" {
		sb.WriteString(" ")
		sb.WriteString(helpDefaultStyle.Render("(default: " + defaultVal + ")"))
	}

	sb.WriteString("\n")
}

func commands(node *kong.Node) []helpEntry {
	var out []helpEntry

	for _, child := range node.Children {
		if child.Hidden {
			continue
		}

		out = append(out, helpEntry{name: child.Name, help: child.Help})
	}

	return out
}

func arguments(node *kong.Node) []helpEntry {
	var out []helpEntry

	for _, arg := range node.Positional {
		out = append(out, helpEntry{name: arg.Summary(), help: arg.Help})
	}

	return out
}

func flags(node *kong.Node) []helpEntry {
	out := []helpEntry{{name: "-h, --help", help: "Show context-sensitive help."}}

	for _, group := range node.AllFlags(true) {
		for _, f := range group {
			if f.Name == "help" {
				continue
			}

			name := "--" + f.Name
			if f.Short != 0 {
				name = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
			}

			if !f.IsBool() {
				name += "=" + strings.ToUpper(f.FormatPlaceHolder())
			}

			out = append(out, helpEntry{name: name, help: f.Help, defaultVal: f.Default})
		}
	}

	return out
}
