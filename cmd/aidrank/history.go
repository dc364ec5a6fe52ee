package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidrank/aidrank/internal/store"
	"github.com/aidrank/aidrank/pkg/surface"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded evaluations",
	}

	cmd.AddCommand(
		newHistoryListCmd(),
		newHistoryShowCmd(),
	)

	return cmd
}

func newHistoryListCmd() *cobra.Command {
	var (
		region string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded evaluations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd.Context(), region, limit)
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "Only evaluations for this region")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of evaluations")

	return cmd
}

func runHistoryList(ctx context.Context, region string, limit int) error {
	cfg := loadCLIConfig()
	s, err := store.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	var recs []store.Record
	if region != "" {
		recs, err = s.ListByRegion(ctx, region, limit)
	} else {
		recs, err = s.List(ctx, limit)
	}
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("No recorded evaluations.")
		return nil
	}

	fmt.Printf("%-36s  %-16s  %-24s %7s  %-8s %s\n",
		"ID", "CREATED", "REGION", "SCORE", "LEVEL", "ENGINE")
	for _, rec := range recs {
		name := rec.Region
		if name == "" {
			name = "-"
		}
		fmt.Printf("%-36s  %-16s  %-24s %7.4f  %-8s %s\n",
			rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"), name,
			rec.Score, rec.Level, rec.Engine)
	}

	return nil
}

func newHistoryShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Render one recorded evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd.Context(), args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "terminal", "Output format: terminal, json, or markdown")

	return cmd
}

func runHistoryShow(ctx context.Context, id, format string) error {
	cfg := loadCLIConfig()
	s, err := store.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	rec, err := s.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no evaluation with id %s", id)
	}
	if err != nil {
		return err
	}

	res, err := rec.DecodeResult()
	if err != nil {
		return err
	}

	report := &surface.Report{
		Region:      rec.Region,
		EvaluatedAt: rec.CreatedAt,
		Inputs:      rec.Inputs(),
		Result:      *res,
	}
	return renderReport(os.Stdout, format, report)
}
