package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/redteam/internal/redteam"
)

// Lipgloss styles for the console progress surface.
var (
	detectorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1)

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// consoleReporter prints run progress to the terminal.
type consoleReporter struct {
	out io.Writer
}

func newConsoleReporter(out io.Writer) *consoleReporter {
	return &consoleReporter{out: out}
}

func (c *consoleReporter) DetectorStarted(detector string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, detectorStyle.Render("Running detector: "+detector))
}

func (c *consoleReporter) RequirementCompleted(s redteam.RequirementSummary) {
	label := fmt.Sprintf("%s requirement %d/%d", s.Detector, s.Index, s.Count)
	if s.Failed > 0 {
		fmt.Fprintf(c.out, "%s: %s\n", label,
			failStyle.Render(fmt.Sprintf("%d/%d tests failed", s.Failed, s.Total)))
	} else {
		fmt.Fprintf(c.out, "%s: %s\n", label,
			passStyle.Render(fmt.Sprintf("All %d tests passed", s.Total)))
	}
	fmt.Fprintln(c.out, dimStyle.Render(truncate(s.Requirement, 100)))
}

func (c *consoleReporter) RunCompleted(table *redteam.ResultTable) {
	fmt.Fprintf(c.out, "\nResults saved to: %s\n", table.Path)
}

// Summary prints per-detector pass rates after a successful run.
func (c *consoleReporter) Summary(table *redteam.ResultTable, detectors []string) {
	fmt.Fprintln(c.out, "\nOverall results:")
	for _, d := range detectors {
		passed, total := table.ByDetector(d)
		if total == 0 {
			continue
		}
		line := fmt.Sprintf("%s: %d/%d tests passed (%.1f%%)",
			d, passed, total, float64(passed)/float64(total)*100)
		if passed == total {
			fmt.Fprintln(c.out, passStyle.Render(line))
		} else {
			fmt.Fprintln(c.out, failStyle.Render(line))
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
