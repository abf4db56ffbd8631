// Package cli holds the terminal styling shared by the tokyoeq commands.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#E0457B") // magenta
	AccentColor  = lipgloss.Color("#7AA2F7") // blue
	MutedColor   = lipgloss.Color("#888888")
	TextColor    = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)
)

// PrintVersion writes the program name and version.
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render("tokyoeq"))
	fmt.Fprintf(w, "%s %s\n\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError writes an error line.
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintKeyValues writes aligned key/value rows in the order given.
func PrintKeyValues(w io.Writer, rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r[0]))
	}

	for _, r := range rows {
		pad := strings.Repeat(" ", width-lipgloss.Width(r[0]))
		fmt.Fprintf(w, "%s%s  %s\n", KeyStyle.Render(r[0]+":"), pad, ValueStyle.Render(r[1]))
	}
}
