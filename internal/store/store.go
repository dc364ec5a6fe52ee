// Package store persists evaluation history. The default backend is a
// local sqlite file; setting a Postgres DSN switches to a shared
// registry so teams can pool their evaluations.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aidrank/aidrank/pkg/config"
	"github.com/aidrank/aidrank/pkg/priority"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("evaluation not found")

// Record is one persisted evaluation.
type Record struct {
	ID                 string
	Region             string
	PovertyIndex       float64
	ProjectImpact      float64
	EnvironmentalScore float64
	CorruptionRisk     float64
	Score              float64
	Level              string
	Allocation         float64
	Confidence         float64
	Engine             string
	Result             json.RawMessage
	CreatedAt          time.Time
}

// Store persists evaluation records.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
	ListByRegion(ctx context.Context, region string, limit int) ([]Record, error)
	Close() error
}

// defaultListLimit bounds List queries when the caller passes limit <= 0.
const defaultListLimit = 100

// Open returns the configured store: Postgres when a DSN is set,
// otherwise the local sqlite file.
func Open(cfg config.StoreConfig) (Store, error) {
	if cfg.PostgresDSN != "" {
		return OpenPostgres(cfg.PostgresDSN)
	}
	return OpenSQLite(cfg.StorePath())
}

// NewRecord builds a Record from an evaluation result.
func NewRecord(region string, in priority.Inputs, res *priority.Result) (*Record, error) {
	doc, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}

	return &Record{
		ID:                 uuid.New().String(),
		Region:             region,
		PovertyIndex:       in.PovertyIndex,
		ProjectImpact:      in.ProjectImpact,
		EnvironmentalScore: in.EnvironmentalScore,
		CorruptionRisk:     in.CorruptionRisk,
		Score:              res.PriorityScore,
		Level:              string(res.Level),
		Allocation:         res.AllocationPercentage,
		Confidence:         res.ConfidenceScore,
		Engine:             res.Engine,
		Result:             doc,
		CreatedAt:          time.Now().UTC(),
	}, nil
}

// Inputs reconstructs the indicator set the record was evaluated with.
func (r *Record) Inputs() priority.Inputs {
	return priority.Inputs{
		PovertyIndex:       r.PovertyIndex,
		ProjectImpact:      r.ProjectImpact,
		EnvironmentalScore: r.EnvironmentalScore,
		CorruptionRisk:     r.CorruptionRisk,
	}
}

// DecodeResult unmarshals the stored result document.
func (r *Record) DecodeResult() (*priority.Result, error) {
	var res priority.Result
	if err := json.Unmarshal(r.Result, &res); err != nil {
		return nil, fmt.Errorf("unmarshaling result: %w", err)
	}
	return &res, nil
}
