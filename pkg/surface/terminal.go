package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aidrank/aidrank/pkg/priority"
)

// TerminalRenderer renders a report as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func levelColor(level priority.Level) string {
	if noColor() {
		return ""
	}
	switch level {
	case priority.LevelCritical:
		return colorRed
	case priority.LevelHigh:
		return colorYellow
	default:
		return colorGreen
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, report *Report) error {
	result := report.Result
	lc := levelColor(result.Level)

	// Header
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("aidrank: %s priority — Score %s",
			colored(strings.ToUpper(string(result.Level)), lc),
			priority.FormatPercent(result.PriorityScore))))

	if report.Region != "" {
		fmt.Fprintf(w, "Region:     %s\n", report.Region)
	}
	fmt.Fprintf(w, "Allocation: %.1f%% of available funds\n", result.AllocationPercentage)
	fmt.Fprintf(w, "Confidence: %.2f\n", result.ConfidenceScore)
	fmt.Fprintf(w, "Engine:     %s\n\n", dim(result.Engine))

	// Explanation
	for _, line := range wrapText(result.Explanation, 76) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	// Findings
	if len(result.KeyFindings) > 0 {
		fmt.Fprintln(w, "Key findings:")
		for _, finding := range result.KeyFindings {
			fmt.Fprintf(w, "  %s %s\n", colored("●", lc), finding)
		}
		fmt.Fprintln(w)
	}

	// Recommendations
	if len(result.Recommendations) > 0 {
		fmt.Fprintln(w, "Recommendations:")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(w, "  • %s\n", rec)
		}
		fmt.Fprintln(w)
	}

	// Factor contributions in canonical indicator order
	fmt.Fprintln(w, "Factors:")
	for _, key := range factorOrder {
		fmt.Fprintf(w, "  %-20s %s\n", key, dim(fmt.Sprintf("%.4f", result.Factors[key])))
	}
	fmt.Fprintln(w)

	return nil
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
