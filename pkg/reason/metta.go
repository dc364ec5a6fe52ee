// Package reason provides external reasoning-engine scorers for the
// priority evaluator. Engines are best effort: any failure makes the
// evaluator fall back to its deterministic formula.
package reason

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/aidrank/aidrank/pkg/priority"
)

// Runner wraps a local MeTTa interpreter to score priority through
// symbolic reasoning rules.
type Runner struct {
	MettaPath string        // metta binary (or "" to use "metta" from PATH)
	Timeout   time.Duration // per-run limit, 0 relies on ctx alone
}

// Name implements priority.Scorer.
func (r *Runner) Name() string { return "metta_local" }

// Score renders a MeTTa program for the inputs, runs it, and parses the
// final result atom as the priority score.
func (r *Runner) Score(ctx context.Context, in priority.Inputs) (float64, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	f, err := os.CreateTemp("", "aidrank-*.metta")
	if err != nil {
		return 0, fmt.Errorf("creating program file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(buildProgram(in)); err != nil {
		f.Close()
		return 0, fmt.Errorf("writing program: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("writing program: %w", err)
	}

	metta := r.MettaPath
	if metta == "" {
		metta = "metta"
	}

	cmd := exec.CommandContext(ctx, metta, f.Name())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("metta run failed: %w\nstderr: %s", err, stderr.String())
	}

	return parseScore(stdout.String())
}

// buildProgram renders metric facts, weight facts, and the weighted
// priority rule, ending in a single query for the score.
func buildProgram(in priority.Inputs) string {
	var b strings.Builder

	b.WriteString("; Regional indicator facts\n")
	fmt.Fprintf(&b, "(= (poverty-index) %.6f)\n", in.PovertyIndex)
	fmt.Fprintf(&b, "(= (project-impact) %.6f)\n", in.ProjectImpact)
	fmt.Fprintf(&b, "(= (environmental-score) %.6f)\n", in.EnvironmentalScore)
	fmt.Fprintf(&b, "(= (corruption-risk) %.6f)\n", in.CorruptionRisk)

	b.WriteString("\n; Indicator weights\n")
	fmt.Fprintf(&b, "(= (poverty-weight) %g)\n", priority.WeightPoverty)
	fmt.Fprintf(&b, "(= (impact-weight) %g)\n", priority.WeightImpact)
	fmt.Fprintf(&b, "(= (environmental-weight) %g)\n", priority.WeightEnvironmental)
	fmt.Fprintf(&b, "(= (corruption-weight) %g)\n", priority.WeightCorruption)

	b.WriteString(`
; Weighted priority rule, corruption inverted
(= (calculate-priority)
   (+ (* (poverty-index) (poverty-weight))
      (* (project-impact) (impact-weight))
      (* (environmental-score) (environmental-weight))
      (* (- 1 (corruption-risk)) (corruption-weight))))

!(calculate-priority)
`)

	return b.String()
}

// parseScore extracts the final result atom from interpreter output.
// The interpreter prints one bracketed result group per query, e.g. "[0.68]".
func parseScore(output string) (float64, error) {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		line = strings.TrimSpace(strings.Trim(line, "[]"))
		score, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return 0, fmt.Errorf("unexpected metta result %q", strings.TrimSpace(lines[i]))
		}
		return score, nil
	}
	return 0, fmt.Errorf("no result in metta output")
}

// Verify Runner satisfies the scorer interface at compile time.
var _ priority.Scorer = (*Runner)(nil)
