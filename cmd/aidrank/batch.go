package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidrank/aidrank/internal/store"
	"github.com/aidrank/aidrank/pkg/dataset"
	"github.com/aidrank/aidrank/pkg/priority"
	"github.com/aidrank/aidrank/pkg/surface"
)

func newBatchCmd() *cobra.Command {
	var (
		inputPath  string
		format     string
		record     bool
		engineMode string
		mettaPath  string
		gatewayURL string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate every region in a dataset file",
		Long: `Loads a JSON or YAML dataset of regions, scores each one, and prints a
ranking table (highest priority first) or a JSON array of reports.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), batchOpts{
				inputPath:  inputPath,
				format:     format,
				record:     record,
				engineMode: engineMode,
				mettaPath:  mettaPath,
				gatewayURL: gatewayURL,
			})
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Dataset file with regions (required)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	cmd.Flags().BoolVar(&record, "record", false, "Save every evaluation to history")
	cmd.Flags().StringVar(&engineMode, "engine", "", "Engine mode override: off, metta, gateway, or auto")
	cmd.Flags().StringVar(&mettaPath, "metta-path", "", "Path to the metta interpreter")
	cmd.Flags().StringVar(&gatewayURL, "gateway-url", "", "Reasoning gateway base URL")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

type batchOpts struct {
	inputPath  string
	format     string
	record     bool
	engineMode string
	mettaPath  string
	gatewayURL string
}

func runBatch(ctx context.Context, opts batchOpts) error {
	cfg := loadCLIConfig()
	eng, err := resolveEngine(cfg.Engine, opts.engineMode, opts.mettaPath, opts.gatewayURL)
	if err != nil {
		return err
	}

	regions, err := dataset.Load(opts.inputPath)
	if err != nil {
		return err
	}

	eval := priority.NewEvaluator(buildScorer(eng))
	eval.Logger = slog.Default()

	var st store.Store
	if opts.record {
		st, err = store.Open(cfg.Store)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer st.Close()
	}

	reports := make([]*surface.Report, 0, len(regions))
	for _, region := range regions {
		in := priority.FromMap(region.Metrics)
		result := eval.Evaluate(ctx, in)

		reports = append(reports, &surface.Report{
			Region:      region.Name,
			EvaluatedAt: time.Now().UTC(),
			Inputs:      in.Clamped(),
			Result:      result,
		})

		if st != nil {
			rec, err := store.NewRecord(region.Name, in.Clamped(), &result)
			if err != nil {
				return err
			}
			if err := st.Save(ctx, rec); err != nil {
				return fmt.Errorf("recording %s: %w", region.Name, err)
			}
		}
	}

	rankReports(reports)

	switch opts.format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case "", "table":
		printRanking(os.Stdout, reports)
	default:
		return fmt.Errorf("unknown format %q (use table or json)", opts.format)
	}

	return nil
}

// rankReports orders reports highest priority first, name as tiebreak.
func rankReports(reports []*surface.Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Result.PriorityScore != reports[j].Result.PriorityScore {
			return reports[i].Result.PriorityScore > reports[j].Result.PriorityScore
		}
		return reports[i].Region < reports[j].Region
	})
}

func printRanking(w io.Writer, reports []*surface.Report) {
	fmt.Fprintf(w, "%4s  %-28s %7s  %-8s %10s %10s\n",
		"RANK", "REGION", "SCORE", "LEVEL", "ALLOCATION", "CONFIDENCE")
	for i, r := range reports {
		fmt.Fprintf(w, "%4d  %-28s %7.4f  %-8s %9.1f%% %10.2f\n",
			i+1, r.Region, r.Result.PriorityScore, r.Result.Level,
			r.Result.AllocationPercentage, r.Result.ConfidenceScore)
	}
}
