package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aidrank/aidrank/internal/store"
	"github.com/aidrank/aidrank/pkg/config"
	"github.com/aidrank/aidrank/pkg/priority"
	"github.com/aidrank/aidrank/pkg/surface"
)

func TestLocalDirPutGet(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalDir(dir)
	ctx := context.Background()

	data := []byte(`{"region":"Sahel Belt"}`)
	if err := s.Put(ctx, "reports/sahel-belt/r1/report.json", "application/json", data); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "reports/sahel-belt/r1/report.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Get = %q, want %q", got, data)
	}

	// Verify file path layout
	expectedPath := filepath.Join(dir, "reports", "sahel-belt", "r1", "report.json")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalDirGetNotFound(t *testing.T) {
	s := NewLocalDir(t.TempDir())

	_, err := s.Get(context.Background(), "reports/missing/report.json")
	if err == nil {
		t.Error("expected error for nonexistent object")
	}
}

func TestExporterWritesBothDocuments(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{Store: NewLocalDir(dir), Prefix: "reports"}
	ctx := context.Background()

	in := priority.Inputs{
		PovertyIndex:       0.8,
		ProjectImpact:      0.6,
		EnvironmentalScore: 0.5,
		CorruptionRisk:     0.2,
	}
	res := priority.Evaluate(in)
	rec, err := store.NewRecord("Nampula Coastal", in, &res)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	rec.CreatedAt = time.Date(2025, 6, 12, 9, 30, 0, 0, time.UTC)

	keys, err := e.Export(ctx, rec)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("Export returned %d keys, want 2", len(keys))
	}

	wantJSON := "reports/nampula-coastal/" + rec.ID + "/report.json"
	if keys[0] != wantJSON {
		t.Errorf("json key = %q, want %q", keys[0], wantJSON)
	}
	wantMD := "reports/nampula-coastal/" + rec.ID + "/report.md"
	if keys[1] != wantMD {
		t.Errorf("markdown key = %q, want %q", keys[1], wantMD)
	}

	raw, err := e.Store.Get(ctx, keys[0])
	if err != nil {
		t.Fatalf("Get json: %v", err)
	}
	var report surface.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if report.Region != "Nampula Coastal" {
		t.Errorf("report region = %q, want Nampula Coastal", report.Region)
	}
	if report.Result.PriorityScore != 0.68 {
		t.Errorf("report score = %v, want 0.68", report.Result.PriorityScore)
	}
	if report.Result.Level != priority.LevelHigh {
		t.Errorf("report level = %q, want high", report.Result.Level)
	}

	md, err := e.Store.Get(ctx, keys[1])
	if err != nil {
		t.Fatalf("Get markdown: %v", err)
	}
	doc := string(md)
	if !strings.Contains(doc, "## Priority Report — Nampula Coastal") {
		t.Errorf("markdown missing title, got:\n%s", doc)
	}
	if !strings.Contains(doc, "| Priority score | 0.6800 |") {
		t.Errorf("markdown missing score row, got:\n%s", doc)
	}
}

func TestExporterUnnamedRegion(t *testing.T) {
	e := &Exporter{Store: NewLocalDir(t.TempDir()), Prefix: "reports"}

	in := priority.Inputs{PovertyIndex: 0.5, ProjectImpact: 0.5, EnvironmentalScore: 0.5, CorruptionRisk: 0.3}
	res := priority.Evaluate(in)
	rec, err := store.NewRecord("", in, &res)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}

	keys, err := e.Export(context.Background(), rec)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasPrefix(keys[0], "reports/global/") {
		t.Errorf("unnamed region key = %q, want reports/global/ prefix", keys[0])
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Nampula Coastal", "nampula-coastal"},
		{"  Zambezi  Valley  ", "zambezi-valley"},
		{"Lake/Basin_North", "lake-basin-north"},
		{"UPPER", "upper"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := slugify(tc.in); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()

	t.Run("local", func(t *testing.T) {
		s, err := Open(ctx, config.ExportConfig{Backend: "local", Dir: t.TempDir()})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if _, ok := s.(*LocalDir); !ok {
			t.Errorf("Open local = %T, want *LocalDir", s)
		}
	})

	t.Run("default is local", func(t *testing.T) {
		s, err := Open(ctx, config.ExportConfig{Dir: t.TempDir()})
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if _, ok := s.(*LocalDir); !ok {
			t.Errorf("Open default = %T, want *LocalDir", s)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, err := Open(ctx, config.ExportConfig{Backend: "ftp"}); err == nil {
			t.Error("expected error for unknown backend")
		}
	})
}
