package priority

// Default indicator values applied for keys missing from a metrics map.
const (
	DefaultPovertyIndex       = 0.5
	DefaultProjectImpact      = 0.5
	DefaultEnvironmentalScore = 0.5
	DefaultCorruptionRisk     = 0.3
)

// FromMap builds Inputs from a metrics map keyed by canonical indicator
// name. Missing keys take the package defaults; unknown keys are ignored.
func FromMap(metrics map[string]float64) Inputs {
	in := Inputs{
		PovertyIndex:       DefaultPovertyIndex,
		ProjectImpact:      DefaultProjectImpact,
		EnvironmentalScore: DefaultEnvironmentalScore,
		CorruptionRisk:     DefaultCorruptionRisk,
	}

	if v, ok := metrics[KeyPovertyIndex]; ok {
		in.PovertyIndex = v
	}
	if v, ok := metrics[KeyProjectImpact]; ok {
		in.ProjectImpact = v
	}
	if v, ok := metrics[KeyEnvironmentalScore]; ok {
		in.EnvironmentalScore = v
	}
	if v, ok := metrics[KeyCorruptionRisk]; ok {
		in.CorruptionRisk = v
	}

	return in
}
