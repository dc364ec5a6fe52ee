package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aidrank/aidrank/internal/store"
	"github.com/aidrank/aidrank/pkg/config"
	"github.com/aidrank/aidrank/pkg/priority"
	"github.com/aidrank/aidrank/pkg/reason"
	"github.com/aidrank/aidrank/pkg/surface"
)

func newEvaluateCmd() *cobra.Command {
	var (
		region        string
		poverty       float64
		impact        float64
		environmental float64
		corruption    float64
		inputPath     string
		format        string
		record        bool
		engineMode    string
		mettaPath     string
		gatewayURL    string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score one region's development-aid priority",
		Long: `Computes a weighted priority score from the four indicators and prints the
score with its explanation, key findings, and funding recommendations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd.Context(), evaluateOpts{
				region:        region,
				poverty:       poverty,
				impact:        impact,
				environmental: environmental,
				corruption:    corruption,
				inputPath:     inputPath,
				format:        format,
				record:        record,
				engineMode:    engineMode,
				mettaPath:     mettaPath,
				gatewayURL:    gatewayURL,
			})
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "Region name for the report and history")
	cmd.Flags().Float64Var(&poverty, "poverty", priority.DefaultPovertyIndex, "Poverty index [0,1]")
	cmd.Flags().Float64Var(&impact, "impact", priority.DefaultProjectImpact, "Project impact potential [0,1]")
	cmd.Flags().Float64Var(&environmental, "environmental", priority.DefaultEnvironmentalScore, "Environmental degradation score [0,1]")
	cmd.Flags().Float64Var(&corruption, "corruption", priority.DefaultCorruptionRisk, "Corruption risk [0,1]")
	cmd.Flags().StringVar(&inputPath, "input", "", "JSON/YAML file with an indicator map (overrides indicator flags)")
	cmd.Flags().StringVar(&format, "format", "terminal", "Output format: terminal, json, or markdown")
	cmd.Flags().BoolVar(&record, "record", false, "Save the evaluation to history")
	cmd.Flags().StringVar(&engineMode, "engine", "", "Engine mode override: off, metta, gateway, or auto")
	cmd.Flags().StringVar(&mettaPath, "metta-path", "", "Path to the metta interpreter")
	cmd.Flags().StringVar(&gatewayURL, "gateway-url", "", "Reasoning gateway base URL")

	return cmd
}

type evaluateOpts struct {
	region        string
	poverty       float64
	impact        float64
	environmental float64
	corruption    float64
	inputPath     string
	format        string
	record        bool
	engineMode    string
	mettaPath     string
	gatewayURL    string
}

func runEvaluate(ctx context.Context, opts evaluateOpts) error {
	cfg := loadCLIConfig()
	eng, err := resolveEngine(cfg.Engine, opts.engineMode, opts.mettaPath, opts.gatewayURL)
	if err != nil {
		return err
	}

	in := priority.Inputs{
		PovertyIndex:       opts.poverty,
		ProjectImpact:      opts.impact,
		EnvironmentalScore: opts.environmental,
		CorruptionRisk:     opts.corruption,
	}
	if opts.inputPath != "" {
		metrics, err := loadMetricsFile(opts.inputPath)
		if err != nil {
			return err
		}
		in = priority.FromMap(metrics)
	}

	eval := priority.NewEvaluator(buildScorer(eng))
	eval.Logger = slog.Default()
	result := eval.Evaluate(ctx, in)

	report := &surface.Report{
		Region:      opts.region,
		EvaluatedAt: time.Now().UTC(),
		Inputs:      in.Clamped(),
		Result:      result,
	}

	if opts.record {
		rec, err := store.NewRecord(opts.region, in.Clamped(), &result)
		if err != nil {
			return err
		}
		s, err := store.Open(cfg.Store)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer s.Close()
		if err := s.Save(ctx, rec); err != nil {
			return fmt.Errorf("recording evaluation: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Recorded evaluation %s\n", rec.ID)
	}

	return renderReport(os.Stdout, opts.format, report)
}

// loadMetricsFile reads an indicator map for a single evaluation.
func loadMetricsFile(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	metrics := map[string]float64{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &metrics); err != nil {
			return nil, fmt.Errorf("parsing input: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &metrics); err != nil {
			return nil, fmt.Errorf("parsing input: %w", err)
		}
	}
	return metrics, nil
}

// resolveEngine applies flag overrides on top of the configured engine
// and validates the mode.
func resolveEngine(eng config.EngineConfig, mode, mettaPath, gatewayURL string) (config.EngineConfig, error) {
	if mode != "" {
		eng.Mode = mode
	}
	switch eng.Mode {
	case "", config.EngineModeOff, config.EngineModeMetta, config.EngineModeGateway, config.EngineModeAuto:
	default:
		return eng, fmt.Errorf("unknown engine mode %q (use off, metta, gateway, or auto)", eng.Mode)
	}
	eng.MettaPath = firstNonEmpty(mettaPath, eng.MettaPath, "metta")
	eng.GatewayURL = firstNonEmpty(gatewayURL, eng.GatewayURL)
	return eng, nil
}

// buildScorer returns the external scorer for the engine mode, or nil
// for the deterministic formula.
func buildScorer(eng config.EngineConfig) priority.Scorer {
	timeout := time.Duration(eng.Timeout) * time.Second

	switch eng.Mode {
	case config.EngineModeMetta:
		return &reason.Runner{MettaPath: eng.MettaPath, Timeout: timeout}
	case config.EngineModeGateway:
		if eng.GatewayURL == "" {
			fmt.Fprintf(os.Stderr, "Warning: engine mode is gateway but no gateway_url is configured.\n")
			fmt.Fprintf(os.Stderr, "Falling back to the formula engine.\n")
			return nil
		}
		return reason.NewGatewayClient(eng.GatewayURL, eng.GatewayToken, timeout)
	case config.EngineModeAuto:
		var scorers []priority.Scorer
		if eng.GatewayURL != "" {
			scorers = append(scorers, reason.NewGatewayClient(eng.GatewayURL, eng.GatewayToken, timeout))
		}
		scorers = append(scorers, &reason.Runner{MettaPath: eng.MettaPath, Timeout: timeout})
		return reason.NewChain(scorers...)
	default:
		return nil
	}
}

func renderReport(w io.Writer, format string, report *surface.Report) error {
	var renderer surface.Renderer
	switch format {
	case "", "terminal":
		renderer = &surface.TerminalRenderer{}
	case "json":
		renderer = &surface.JSONRenderer{}
	case "markdown":
		renderer = &surface.MarkdownRenderer{}
	default:
		return fmt.Errorf("unknown format %q (use terminal, json, or markdown)", format)
	}
	return renderer.Render(w, report)
}

func loadCLIConfig() *config.Config {
	path := configFlag
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(cwd)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
