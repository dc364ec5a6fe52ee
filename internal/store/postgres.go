package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore keeps evaluation history in a shared Postgres registry.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to Postgres and runs any pending migrations.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres store: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

// Save inserts one evaluation record.
func (s *PostgresStore) Save(ctx context.Context, rec *Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (id, region, poverty_index, project_impact,
		   environmental_score, corruption_risk, score, level, allocation,
		   confidence, engine, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rec.ID, rec.Region, rec.PovertyIndex, rec.ProjectImpact,
		rec.EnvironmentalScore, rec.CorruptionRisk, rec.Score, rec.Level,
		rec.Allocation, rec.Confidence, rec.Engine, []byte(rec.Result),
		rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save evaluation: %w", err)
	}
	return nil
}

// Get retrieves a single evaluation by ID.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Record, error) {
	rec := &Record{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, region, poverty_index, project_impact, environmental_score,
		        corruption_risk, score, level, allocation, confidence, engine,
		        result, created_at
		 FROM evaluations WHERE id = $1`,
		id,
	).Scan(
		&rec.ID, &rec.Region, &rec.PovertyIndex, &rec.ProjectImpact,
		&rec.EnvironmentalScore, &rec.CorruptionRisk, &rec.Score, &rec.Level,
		&rec.Allocation, &rec.Confidence, &rec.Engine, &rec.Result, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get evaluation %s: %w", id, err)
	}
	return rec, nil
}

// List returns the most recent evaluations, newest first.
func (s *PostgresStore) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, region, poverty_index, project_impact, environmental_score,
		        corruption_risk, score, level, allocation, confidence, engine,
		        result, created_at
		 FROM evaluations ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	return collectPostgresRecords(rows)
}

// ListByRegion returns the most recent evaluations for one region,
// newest first.
func (s *PostgresStore) ListByRegion(ctx context.Context, region string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, region, poverty_index, project_impact, environmental_score,
		        corruption_risk, score, level, allocation, confidence, engine,
		        result, created_at
		 FROM evaluations WHERE region = $1 ORDER BY created_at DESC LIMIT $2`,
		region, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list evaluations for %s: %w", region, err)
	}
	return collectPostgresRecords(rows)
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func collectPostgresRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.Region, &rec.PovertyIndex, &rec.ProjectImpact,
			&rec.EnvironmentalScore, &rec.CorruptionRisk, &rec.Score, &rec.Level,
			&rec.Allocation, &rec.Confidence, &rec.Engine, &rec.Result, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

var _ Store = (*PostgresStore)(nil)
