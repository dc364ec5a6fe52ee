// Package priority implements the aidrank development-aid priority engine.
// It evaluates four normalized regional indicators and produces explainable,
// template-backed funding assessments.
package priority

// Inputs are the four normalized indicators for a region.
// Each value is expected in [0,1]; out-of-range values are clamped
// before scoring (NaN is treated as 0).
type Inputs struct {
	PovertyIndex       float64 `json:"poverty_index"`
	ProjectImpact      float64 `json:"project_impact"`
	EnvironmentalScore float64 `json:"environmental_score"`
	CorruptionRisk     float64 `json:"corruption_risk"`
}

// Result is the complete output of a priority evaluation.
// Immutable once computed.
type Result struct {
	PriorityScore        float64            `json:"priority_score"`        // weighted composite, 4 decimals
	Level                Level              `json:"priority_level"`
	AllocationPercentage float64            `json:"allocation_percentage"` // [10,100], 2 decimals
	ConfidenceScore      float64            `json:"confidence_score"`      // [0.85,0.95], 2 decimals
	Explanation          string             `json:"explanation"`
	KeyFindings          []string           `json:"key_findings"`
	Recommendations      []string           `json:"recommendations"`
	Factors              map[string]float64 `json:"factors"` // input name -> weighted contribution, unrounded
	Engine               string             `json:"engine"`  // computation path that produced the score
}

// Level is the discretized priority bucket derived from the score.
type Level string

const (
	LevelCritical Level = "critical"
	LevelHigh     Level = "high"
	LevelMedium   Level = "medium"
	LevelLow      Level = "low"
)

// LevelFromScore maps a priority score to its level.
// Thresholds are closed above: a score of exactly 0.7 is critical.
func LevelFromScore(score float64) Level {
	switch {
	case score >= 0.7:
		return LevelCritical
	case score >= 0.5:
		return LevelHigh
	case score >= 0.3:
		return LevelMedium
	default:
		return LevelLow
	}
}
