// Package surface defines output rendering for aidrank evaluations.
// Implementations handle different output targets: terminal, JSON, markdown.
package surface

import (
	"io"
	"time"

	"github.com/aidrank/aidrank/pkg/priority"
)

// Report couples an evaluation result with the region it describes.
type Report struct {
	Region      string          `json:"region,omitempty"`
	EvaluatedAt time.Time       `json:"evaluated_at"`
	Inputs      priority.Inputs `json:"inputs"`
	Result      priority.Result `json:"result"`
}

// Renderer produces formatted output from an evaluation report.
type Renderer interface {
	// Render writes the formatted report to the writer.
	Render(w io.Writer, report *Report) error
}

// factorOrder fixes the indicator display order across renderers.
var factorOrder = []string{
	priority.KeyPovertyIndex,
	priority.KeyProjectImpact,
	priority.KeyEnvironmentalScore,
	priority.KeyCorruptionRisk,
}
