// Package export publishes evaluation reports to local or cloud object
// storage so they can be shared with program officers and funders.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aidrank/aidrank/internal/store"
	"github.com/aidrank/aidrank/pkg/config"
	"github.com/aidrank/aidrank/pkg/surface"
)

// ObjectStore abstracts blob storage for published reports.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// LocalDir implements ObjectStore using the local filesystem.
// Useful for development and testing.
type LocalDir struct {
	BaseDir string
}

// NewLocalDir creates a LocalDir rooted at the given directory.
func NewLocalDir(baseDir string) *LocalDir {
	return &LocalDir{BaseDir: baseDir}
}

// Put stores a blob under the base directory.
func (s *LocalDir) Put(ctx context.Context, key, contentType string, data []byte) error {
	p := filepath.Join(s.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(p, data, 0o644)
}

// Get retrieves a blob from the base directory.
func (s *LocalDir) Get(ctx context.Context, key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.BaseDir, filepath.FromSlash(key)))
}

// Open returns the export backend selected by the configuration.
func Open(ctx context.Context, cfg config.ExportConfig) (ObjectStore, error) {
	switch cfg.Backend {
	case "", "local":
		dir := cfg.Dir
		if dir == "" {
			dir = filepath.Join(config.DataDir(), "exports")
		}
		return NewLocalDir(dir), nil
	case "s3":
		return NewS3Store(ctx, S3Config{
			Bucket:   cfg.Bucket,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
		})
	case "gcs":
		return NewGCSStore(ctx, cfg.Bucket)
	default:
		return nil, fmt.Errorf("unknown export backend %q", cfg.Backend)
	}
}

// Exporter renders evaluation records and publishes them to an
// ObjectStore.
type Exporter struct {
	Store  ObjectStore
	Prefix string
}

// Export publishes the JSON document and markdown report for one
// record. It returns the object keys written, JSON first.
func (e *Exporter) Export(ctx context.Context, rec *store.Record) ([]string, error) {
	res, err := rec.DecodeResult()
	if err != nil {
		return nil, err
	}

	report := &surface.Report{
		Region:      rec.Region,
		EvaluatedAt: rec.CreatedAt,
		Inputs:      rec.Inputs(),
		Result:      *res,
	}

	doc, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}

	jsonKey := e.key(rec, "report.json")
	if err := e.Store.Put(ctx, jsonKey, "application/json", doc); err != nil {
		return nil, err
	}

	mdKey := e.key(rec, "report.md")
	md := surface.BuildDocument(report)
	if err := e.Store.Put(ctx, mdKey, "text/markdown", []byte(md)); err != nil {
		return nil, err
	}

	return []string{jsonKey, mdKey}, nil
}

func (e *Exporter) key(rec *store.Record, name string) string {
	region := slugify(rec.Region)
	if region == "" {
		region = "global"
	}
	return path.Join(e.Prefix, region, rec.ID, name)
}

// slugify maps a region name to a clean object key segment.
func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
