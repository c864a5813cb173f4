package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/careerlockin/careerlockin/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxStepsToShow is the number of steps displayed per phase
	maxStepsToShow = 4
)

// Printer handles formatted terminal output for the CLI.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// statusMark maps a verification status to a one-character indicator.
func statusMark(status types.VerificationStatus) string {
	switch status {
	case types.StatusVerified:
		return "✓"
	case types.StatusUnverified:
		return "?"
	case types.StatusFallback:
		return "↩"
	default:
		return " "
	}
}

// PrintRoadmap outputs a human-readable summary of a generated roadmap:
// every phase, its leading steps, and each step's resources with their
// verification marks.
func (p *Printer) PrintRoadmap(rm *types.Roadmap) {
	if rm == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target role: %s\n", rm.TargetRole))
	sb.WriteString(fmt.Sprintf("Plan: %dh/week over %d weeks (%s)\n",
		rm.Assumptions.WeeklyHours, rm.Assumptions.HorizonWeeks, rm.Assumptions.SkillLevel))

	for _, phase := range rm.Phases {
		sb.WriteString(fmt.Sprintf("\n%d. %s\n", phase.Order, phase.Title))

		count := min(len(phase.Steps), maxStepsToShow)
		for i := 0; i < count; i++ {
			step := phase.Steps[i]
			sb.WriteString(fmt.Sprintf("  • %s", step.Title))
			if step.EstimatedHours > 0 {
				sb.WriteString(fmt.Sprintf(" (~%.0fh)", step.EstimatedHours))
			}
			sb.WriteString("\n")
			for _, res := range step.Resources {
				title := res.Title
				if len(title) > 40 {
					title = title[:37] + "..."
				}
				sb.WriteString(fmt.Sprintf("    %s %s\n", statusMark(res.Verification), title))
			}
		}
		if len(phase.Steps) > maxStepsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more steps\n", len(phase.Steps)-maxStepsToShow))
		}
	}

	p.printBox("GENERATED ROADMAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVerificationSummary outputs the aggregate verification counts for a
// roadmap's resources.
func (p *Printer) PrintVerificationSummary(rm *types.Roadmap) {
	if rm == nil {
		return
	}

	counts := map[types.VerificationStatus]int{}
	total := 0
	rm.EachResource(func(_ *types.Step, res *types.Resource) {
		counts[res.Verification]++
		total++
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Resources:  %d\n", total))
	sb.WriteString(fmt.Sprintf("Verified:   %d\n", counts[types.StatusVerified]))
	sb.WriteString(fmt.Sprintf("Unverified: %d\n", counts[types.StatusUnverified]))
	sb.WriteString(fmt.Sprintf("Fallback:   %d", counts[types.StatusFallback]))

	p.printBox("LINK VERIFICATION", sb.String())
}
