package priority

import (
	"context"
	"log/slog"
	"math"
)

// EngineFormula is the engine tag for the deterministic weighted formula.
const EngineFormula = "formula"

// Scorer is an optional external reasoning engine. It is best effort and
// non-authoritative: any error causes a silent fallback to the formula.
type Scorer interface {
	// Name returns the engine tag recorded in results this scorer produces.
	Name() string
	// Score computes a priority score in [0,1] for the given inputs.
	Score(ctx context.Context, in Inputs) (float64, error)
}

// Evaluator computes priority assessments. The zero value evaluates with
// the deterministic formula; setting Scorer consults an external engine
// first. Safe for concurrent use.
type Evaluator struct {
	Scorer Scorer       // optional external engine, nil means formula only
	Logger *slog.Logger // fallback diagnostics, nil disables logging
}

// NewEvaluator creates an evaluator backed by the given external scorer.
// A nil scorer yields a formula-only evaluator.
func NewEvaluator(scorer Scorer) *Evaluator {
	return &Evaluator{Scorer: scorer}
}

// Evaluate computes the full priority assessment for the inputs.
// It never fails: external-scorer errors degrade to the deterministic
// formula and are visible only in the result's Engine tag.
func (e *Evaluator) Evaluate(ctx context.Context, in Inputs) Result {
	in = in.Clamped()

	score, engine := e.computeScore(ctx, in)

	level := LevelFromScore(score)
	allocation := math.Min(100, math.Max(10, score*100))
	confidence := 0.85 + score*0.1

	return Result{
		PriorityScore:        round4(score),
		Level:                level,
		AllocationPercentage: round2(allocation),
		ConfidenceScore:      round2(confidence),
		Explanation:          explanation(level, score, in),
		KeyFindings:          keyFindings(in),
		Recommendations:      recommendations(allocation, in),
		Factors:              factors(in),
		Engine:               engine,
	}
}

// EvaluateMap evaluates a metrics map keyed by canonical indicator name,
// applying defaults for missing keys.
func (e *Evaluator) EvaluateMap(ctx context.Context, metrics map[string]float64) Result {
	return e.Evaluate(ctx, FromMap(metrics))
}

// computeScore consults the external scorer when one is configured and
// falls back to the weighted formula on any failure. External scores are
// clamped to [0,1] before use.
func (e *Evaluator) computeScore(ctx context.Context, in Inputs) (score float64, engine string) {
	if e.Scorer == nil {
		return weightedScore(in), EngineFormula
	}

	score, err := e.Scorer.Score(ctx, in)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("external scorer failed, falling back to formula",
				"scorer", e.Scorer.Name(), "error", err)
		}
		return weightedScore(in), EngineFormula
	}

	return clamp01(score), e.Scorer.Name()
}

// Evaluate computes a priority assessment using the deterministic formula
// only. Convenience for callers without an external engine.
func Evaluate(in Inputs) Result {
	return (&Evaluator{}).Evaluate(context.Background(), in)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
