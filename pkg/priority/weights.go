package priority

import "math"

// Indicator weights. Fixed, not runtime-configurable; they sum to 1.0.
// Corruption is inverted: higher risk lowers the score.
const (
	WeightPoverty       = 0.4
	WeightImpact        = 0.3
	WeightEnvironmental = 0.2
	WeightCorruption    = 0.1
)

// Canonical indicator names, used as map keys for adapter inputs and
// factor breakdowns.
const (
	KeyPovertyIndex       = "poverty_index"
	KeyProjectImpact      = "project_impact"
	KeyEnvironmentalScore = "environmental_score"
	KeyCorruptionRisk     = "corruption_risk"
)

// weightedScore computes the deterministic composite score.
func weightedScore(in Inputs) float64 {
	return in.PovertyIndex*WeightPoverty +
		in.ProjectImpact*WeightImpact +
		in.EnvironmentalScore*WeightEnvironmental +
		(1-in.CorruptionRisk)*WeightCorruption
}

// factors records each indicator's weighted contribution, unrounded.
// The corruption entry reflects the inverted form used in the score.
func factors(in Inputs) map[string]float64 {
	return map[string]float64{
		KeyPovertyIndex:       in.PovertyIndex * WeightPoverty,
		KeyProjectImpact:      in.ProjectImpact * WeightImpact,
		KeyEnvironmentalScore: in.EnvironmentalScore * WeightEnvironmental,
		KeyCorruptionRisk:     (1 - in.CorruptionRisk) * WeightCorruption,
	}
}

// clamp01 bounds v to [0,1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamped returns a copy of the inputs with every indicator bounded to [0,1].
func (in Inputs) Clamped() Inputs {
	return Inputs{
		PovertyIndex:       clamp01(in.PovertyIndex),
		ProjectImpact:      clamp01(in.ProjectImpact),
		EnvironmentalScore: clamp01(in.EnvironmentalScore),
		CorruptionRisk:     clamp01(in.CorruptionRisk),
	}
}
