package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/aidrank/aidrank/pkg/priority"
)

// MarkdownRenderer produces a markdown report document, used for export
// bundles and anywhere a shareable summary is needed.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, report *Report) error {
	_, err := io.WriteString(w, BuildDocument(report))
	return err
}

// BuildDocument renders the full markdown report for an evaluation.
func BuildDocument(report *Report) string {
	var sb strings.Builder
	result := report.Result

	title := "Priority Report"
	if report.Region != "" {
		title = fmt.Sprintf("Priority Report — %s", report.Region)
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))

	sb.WriteString(fmt.Sprintf("%s **%s priority** — score %s\n\n",
		levelIcon(result.Level),
		strings.ToUpper(string(result.Level)),
		priority.FormatPercent(result.PriorityScore)))

	// Summary
	sb.WriteString("### Summary\n\n")
	sb.WriteString("| Field | Value |\n|-------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Priority score | %.4f |\n", result.PriorityScore))
	sb.WriteString(fmt.Sprintf("| Level | %s |\n", result.Level))
	sb.WriteString(fmt.Sprintf("| Allocation | %.1f%% |\n", result.AllocationPercentage))
	sb.WriteString(fmt.Sprintf("| Confidence | %.2f |\n", result.ConfidenceScore))
	sb.WriteString(fmt.Sprintf("| Engine | %s |\n", result.Engine))
	if !report.EvaluatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("| Evaluated | %s |\n", report.EvaluatedAt.UTC().Format("2006-01-02 15:04 UTC")))
	}
	sb.WriteString("\n")

	sb.WriteString(result.Explanation)
	sb.WriteString("\n\n")

	// Indicators with their weighted contributions
	sb.WriteString("### Indicators\n\n")
	sb.WriteString("| Indicator | Value | Weighted |\n|-----------|-------|----------|\n")
	values := map[string]float64{
		priority.KeyPovertyIndex:       report.Inputs.PovertyIndex,
		priority.KeyProjectImpact:      report.Inputs.ProjectImpact,
		priority.KeyEnvironmentalScore: report.Inputs.EnvironmentalScore,
		priority.KeyCorruptionRisk:     report.Inputs.CorruptionRisk,
	}
	for _, key := range factorOrder {
		sb.WriteString(fmt.Sprintf("| %s | %s | %.4f |\n",
			key, priority.FormatPercent(values[key]), result.Factors[key]))
	}
	sb.WriteString("\n")

	// Findings
	sb.WriteString("### Key Findings\n\n")
	for _, finding := range result.KeyFindings {
		sb.WriteString(fmt.Sprintf("- %s\n", finding))
	}
	sb.WriteString("\n")

	// Recommendations
	sb.WriteString("### Recommendations\n\n")
	for _, rec := range result.Recommendations {
		sb.WriteString(fmt.Sprintf("- %s\n", rec))
	}

	return sb.String()
}

func levelIcon(level priority.Level) string {
	switch level {
	case priority.LevelCritical:
		return ":red_circle:"
	case priority.LevelHigh:
		return ":orange_circle:"
	case priority.LevelMedium:
		return ":yellow_circle:"
	default:
		return ":green_circle:"
	}
}
