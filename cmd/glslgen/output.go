package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"glslgen/internal/diagfmt"
)

// printDiagnostics writes the diagnostics of files to stderr in the
// session format. The JSON document is written even when it is empty.
func printDiagnostics(cmd *cobra.Command, files ...diagfmt.File) error {
	s := sessionFrom(cmd)
	out := cmd.ErrOrStderr()
	if s.diagFormat == "json" {
		return diagfmt.JSON(out, files, diagfmt.JSONOpts{IncludeNotes: true})
	}
	return diagfmt.Pretty(out, files, diagfmt.PrettyOpts{Color: !color.NoColor, ShowNotes: true})
}

var (
	failTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	failBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("1")).
			Padding(0, 1)
	lineNo = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderSoftFailure shows generated source that the engine rejected, with
// line numbers, above the engine's message.
func renderSoftFailure(name, source, message string) string {
	lines := strings.Split(strings.TrimRight(source, "\n"), "\n")
	width := len(fmt.Sprint(len(lines)))
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%s %s\n", lineNo.Render(fmt.Sprintf("%*d", width, i+1)), line)
	}
	body := failTitle.Render(name+": generated source did not load") + "\n\n" +
		strings.TrimRight(b.String(), "\n") + "\n\n" + message
	return failBox.Render(body) + "\n"
}
