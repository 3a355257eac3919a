// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	boxWidth       = 60
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchReport outputs a human-readable summary of an analysis run.
func (p *Printer) PrintMatchReport(report *types.MatchReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d/100\n\n", report.Score))

	writeList(&sb, "Matched skills", report.MatchedSkills)
	writeList(&sb, "Missing skills", report.MissingSkills)

	if len(report.RewrittenBullets) > 0 {
		sb.WriteString("Suggested rewrites:\n")
		for _, bullet := range truncate(report.RewrittenBullets) {
			sb.WriteString(fmt.Sprintf("  • %s\n", bullet.Text))
		}
		sb.WriteString("\n")
	}

	if len(report.Recommendations) > 0 {
		sb.WriteString("Recommendations:\n")
		for _, rec := range truncate(report.Recommendations) {
			if rec.InsteadOf != "" && rec.Use != "" {
				sb.WriteString(fmt.Sprintf("  • %s: instead of %s, use %s\n", rec.Skill, rec.InsteadOf, rec.Use))
			} else {
				sb.WriteString(fmt.Sprintf("  • %s: %s\n", rec.Skill, rec.Guidance))
			}
		}
		sb.WriteString("\n")
	}

	if len(report.VerificationNotes) > 0 {
		sb.WriteString("Verification notes:\n")
		for _, note := range truncate(report.VerificationNotes) {
			sb.WriteString(fmt.Sprintf("  ⚠ %s[%d]: %s\n", note.Target, note.Index, note.Reason))
		}
		sb.WriteString("\n")
	}

	for _, warning := range report.Warnings {
		sb.WriteString(fmt.Sprintf("Warning (%s): %s\n", warning.Stage, warning.Message))
	}

	p.printBox("Match Report", strings.TrimRight(sb.String(), "\n"))
}

// PrintProgress outputs a one-line progress update.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(state, stage, message string) {
	if stage != "" {
		fmt.Fprintf(p.out, "[%s] %s: %s\n", state, stage, message)
		return
	}
	fmt.Fprintf(p.out, "[%s] %s\n", state, message)
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

func truncate[T any](items []T) []T {
	if len(items) > maxItemsToShow {
		return items[:maxItemsToShow]
	}
	return items
}
