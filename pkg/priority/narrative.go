package priority

import "fmt"

// FormatPercent renders a [0,1] value as a percentage with one decimal
// place, e.g. 0.732 -> "73.2%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// explanation selects the fixed narrative template for a level and
// interpolates the score and relevant indicators as percentages.
func explanation(level Level, score float64, in Inputs) string {
	switch level {
	case LevelCritical:
		return fmt.Sprintf(
			"This region shows CRITICAL need with a priority score of %s. Immediate intervention is required due to high poverty (%s) and significant project impact potential (%s).",
			FormatPercent(score), FormatPercent(in.PovertyIndex), FormatPercent(in.ProjectImpact))
	case LevelHigh:
		return fmt.Sprintf(
			"This region has HIGH priority with a score of %s. Substantial resource allocation is recommended given the poverty level (%s) and environmental conditions (%s).",
			FormatPercent(score), FormatPercent(in.PovertyIndex), FormatPercent(in.EnvironmentalScore))
	case LevelMedium:
		return fmt.Sprintf(
			"This region shows MEDIUM priority with a score of %s. Standard resource allocation is appropriate based on current metrics.",
			FormatPercent(score))
	default:
		return fmt.Sprintf(
			"This region has LOWER priority with a score of %s. Baseline support should be maintained while monitoring for changing conditions.",
			FormatPercent(score))
	}
}

// Finding thresholds. Each indicator is checked independently; corruption
// has both an elevated and a favorable band.
const (
	findingPovertyThreshold       = 0.7
	findingImpactThreshold        = 0.7
	findingEnvironmentalThreshold = 0.7
	findingCorruptionHigh         = 0.6
	findingCorruptionLow          = 0.3
)

// keyFindings produces the ordered finding list for the inputs. If no
// indicator crosses a threshold, a single balanced-conditions entry is
// returned.
func keyFindings(in Inputs) []string {
	var findings []string

	if in.PovertyIndex >= findingPovertyThreshold {
		findings = append(findings, fmt.Sprintf(
			"High poverty rate detected (%s) - economic support needed",
			FormatPercent(in.PovertyIndex)))
	}
	if in.ProjectImpact >= findingImpactThreshold {
		findings = append(findings, fmt.Sprintf(
			"High project impact potential (%s) - investments will yield strong returns",
			FormatPercent(in.ProjectImpact)))
	}
	if in.EnvironmentalScore >= findingEnvironmentalThreshold {
		findings = append(findings, fmt.Sprintf(
			"Severe environmental degradation (%s) - conservation measures urgent",
			FormatPercent(in.EnvironmentalScore)))
	}
	if in.CorruptionRisk >= findingCorruptionHigh {
		findings = append(findings, fmt.Sprintf(
			"Elevated corruption risk (%s) - enhanced oversight required",
			FormatPercent(in.CorruptionRisk)))
	} else if in.CorruptionRisk <= findingCorruptionLow {
		findings = append(findings, fmt.Sprintf(
			"Low corruption risk (%s) - favorable governance environment",
			FormatPercent(in.CorruptionRisk)))
	}

	if len(findings) == 0 {
		findings = append(findings,
			"Metrics indicate balanced conditions across all indicators")
	}

	return findings
}

// recommendations assembles funding advice: exactly two allocation-banded
// items first, then per-indicator items appended independently, without
// deduplication.
func recommendations(allocation float64, in Inputs) []string {
	var recs []string

	switch {
	case allocation >= 70:
		recs = append(recs,
			"Allocate majority of available funds to this region",
			"Fast-track project approvals and implementation")
	case allocation >= 50:
		recs = append(recs,
			"Provide substantial funding allocation",
			"Implement standard monitoring protocols")
	default:
		recs = append(recs,
			"Provide moderate funding allocation",
			"Monitor for changing conditions")
	}

	if in.PovertyIndex >= findingPovertyThreshold {
		recs = append(recs,
			"Prioritize poverty alleviation programs",
			"Implement cash transfer or social safety net schemes")
	}
	if in.ProjectImpact >= findingImpactThreshold {
		recs = append(recs,
			"Maximize investment in high-impact projects")
	}
	if in.EnvironmentalScore >= findingEnvironmentalThreshold {
		recs = append(recs,
			"Include environmental restoration components",
			"Engage local communities in conservation")
	}
	if in.CorruptionRisk >= findingCorruptionHigh {
		recs = append(recs,
			"Establish strong audit and oversight mechanisms",
			"Use transparent digital payment systems")
	}

	return recs
}
