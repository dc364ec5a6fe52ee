package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS evaluations (
    id TEXT PRIMARY KEY,
    region TEXT NOT NULL DEFAULT '',
    poverty_index REAL NOT NULL,
    project_impact REAL NOT NULL,
    environmental_score REAL NOT NULL,
    corruption_risk REAL NOT NULL,
    score REAL NOT NULL,
    level TEXT NOT NULL,
    allocation REAL NOT NULL,
    confidence REAL NOT NULL,
    engine TEXT NOT NULL,
    result TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_evaluations_region ON evaluations (region);
CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations (created_at);
`

// sqliteTimeLayout is fixed-width so that lexicographic order of the
// created_at column matches chronological order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps evaluation history in a local sqlite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the sqlite store at path, creating the file and
// schema on first use.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating store schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save inserts one evaluation record.
func (s *SQLiteStore) Save(ctx context.Context, rec *Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (id, region, poverty_index, project_impact,
		   environmental_score, corruption_risk, score, level, allocation,
		   confidence, engine, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Region, rec.PovertyIndex, rec.ProjectImpact,
		rec.EnvironmentalScore, rec.CorruptionRisk, rec.Score, rec.Level,
		rec.Allocation, rec.Confidence, rec.Engine, string(rec.Result),
		rec.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("save evaluation: %w", err)
	}
	return nil
}

// Get retrieves a single evaluation by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, region, poverty_index, project_impact, environmental_score,
		        corruption_risk, score, level, allocation, confidence, engine,
		        result, created_at
		 FROM evaluations WHERE id = ?`,
		id,
	)

	rec, err := scanSQLiteRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get evaluation %s: %w", id, err)
	}
	return rec, nil
}

// List returns the most recent evaluations, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, region, poverty_index, project_impact, environmental_score,
		        corruption_risk, score, level, allocation, confidence, engine,
		        result, created_at
		 FROM evaluations ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	return collectSQLiteRecords(rows)
}

// ListByRegion returns the most recent evaluations for one region,
// newest first.
func (s *SQLiteStore) ListByRegion(ctx context.Context, region string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, region, poverty_index, project_impact, environmental_score,
		        corruption_risk, score, level, allocation, confidence, engine,
		        result, created_at
		 FROM evaluations WHERE region = ? ORDER BY created_at DESC LIMIT ?`,
		region, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list evaluations for %s: %w", region, err)
	}
	return collectSQLiteRecords(rows)
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func collectSQLiteRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		rec, err := scanSQLiteRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func scanSQLiteRecord(scan func(dest ...any) error) (*Record, error) {
	rec := &Record{}
	var result, created string
	if err := scan(
		&rec.ID, &rec.Region, &rec.PovertyIndex, &rec.ProjectImpact,
		&rec.EnvironmentalScore, &rec.CorruptionRisk, &rec.Score, &rec.Level,
		&rec.Allocation, &rec.Confidence, &rec.Engine, &result, &created,
	); err != nil {
		return nil, err
	}

	rec.Result = []byte(result)
	ts, err := time.Parse(sqliteTimeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	rec.CreatedAt = ts
	return rec, nil
}

var _ Store = (*SQLiteStore)(nil)
