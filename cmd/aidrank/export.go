package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidrank/aidrank/internal/export"
	"github.com/aidrank/aidrank/internal/store"
)

func newExportCmd() *cobra.Command {
	var (
		id     string
		region string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Publish a recorded evaluation's report bundle",
		Long: `Renders the JSON and markdown reports for a recorded evaluation and pushes
them to the configured export backend (local directory, S3, or GCS).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), exportOpts{id: id, region: region})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Evaluation ID to export")
	cmd.Flags().StringVar(&region, "region", "", "Export the latest evaluation for this region")

	return cmd
}

type exportOpts struct {
	id     string
	region string
}

func runExport(ctx context.Context, opts exportOpts) error {
	if opts.id == "" && opts.region == "" {
		return fmt.Errorf("either --id or --region is required")
	}

	cfg := loadCLIConfig()
	s, err := store.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	var rec *store.Record
	if opts.id != "" {
		rec, err = s.Get(ctx, opts.id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no evaluation with id %s", opts.id)
		}
		if err != nil {
			return err
		}
	} else {
		recs, err := s.ListByRegion(ctx, opts.region, 1)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			return fmt.Errorf("no evaluations recorded for region %q", opts.region)
		}
		rec = &recs[0]
	}

	backend, err := export.Open(ctx, cfg.Export)
	if err != nil {
		return fmt.Errorf("opening export backend: %w", err)
	}

	exp := &export.Exporter{Store: backend, Prefix: cfg.Export.Prefix}
	keys, err := exp.Export(ctx, rec)
	if err != nil {
		return fmt.Errorf("exporting report: %w", err)
	}

	for _, key := range keys {
		fmt.Fprintf(os.Stderr, "Exported %s\n", key)
	}
	return nil
}
