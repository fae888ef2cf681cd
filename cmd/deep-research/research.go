// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/deep-research/internal/executor"
	"github.com/pdiddy/deep-research/internal/planner"
	"github.com/pdiddy/deep-research/internal/session"
	"github.com/pdiddy/deep-research/internal/synthesis"
	"github.com/pdiddy/deep-research/internal/verify"
	"github.com/pdiddy/deep-research/pkg/types"
)

const (
	defaultModel     = "sonar-pro"
	defaultTimeout   = 60 * time.Second
	defaultInterval  = 1 * time.Second
	defaultMaxTokens = 1024
	defaultUserAgent = "deep-research/0.1"
)

var researchCmd = &cobra.Command{
	Use:   "research [question]",
	Short: "Run the full research pipeline for a question",
	Long: `Research plans search queries for the question, executes them sequentially
against the answer API, verifies the collected answers (citation grounding,
self-consistency, hallucination risk, confidence), and synthesizes a single
sourced report. The completed session is stored for later retrieval.

Requires an API key: place it in .secrets/sonar-api-key or pass --api-key.`,
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().Int("max-queries", 0, "maximum planned queries (default 5, ceiling 20)")
	researchCmd.Flags().String("preset", "", "verification preset: "+strings.Join(verify.PresetNames(), ", "))
	researchCmd.Flags().StringSlice("set", nil, "verification parameter override as path=value (e.g. citationGrounding.minKeywordOverlap=0.4)")
	researchCmd.Flags().String("verify-config", "", "YAML file of verification parameter overrides (--set takes precedence)")
	researchCmd.Flags().String("model", "", "answer model identifier (default "+defaultModel+")")
	researchCmd.Flags().String("mode", "", "search corpus: academic or web (default academic)")
	researchCmd.Flags().Int("max-tokens", 0, "answer length bound per query")
	researchCmd.Flags().Float64("temperature", 0.2, "sampling temperature for the answer API")
	researchCmd.Flags().Duration("timeout", 0, "per-request HTTP timeout (default 60s)")
	researchCmd.Flags().Duration("interval", 0, "minimum spacing between consecutive API calls (default 1s)")
	researchCmd.Flags().String("api-key", "", "answer API key (overrides .secrets/sonar-api-key)")
	researchCmd.Flags().String("sessions-dir", "sessions", "directory for the session database")
	researchCmd.Flags().Bool("no-save", false, "do not persist the session")
	researchCmd.Flags().String("output", "", "write the full report to this YAML file")
	researchCmd.Flags().Bool("json", false, "output the report as JSON instead of text")
	researchCmd.Flags().Bool("verbose", false, "log each API call to stderr")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a research question")
	}
	question := strings.Join(args, " ")

	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Executor.APIKey == "" {
		return fmt.Errorf("API key required: place it in .secrets/sonar-api-key or pass --api-key")
	}

	overrides, err := collectOverrides(cmd)
	if err != nil {
		return err
	}
	verifyCfg, err := verify.LoadWithOverrides(cfg.VerifyPreset, overrides)
	if err != nil {
		return err
	}

	var logger *zap.Logger
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	plan := planner.Build(question, cfg.Planner.MaxQueries)
	fmt.Fprintf(os.Stderr, "Planned %d queries (strategies: %s)\n",
		len(plan.Queries), strings.Join(plan.Strategies, ", "))

	exec := executor.NewWithClient(cfg.Executor, logger)
	results := exec.Execute(ctx, plan.Queries)

	report := verify.Run(results, verifyCfg)
	synthesized := synthesis.Synthesize(question, cfg.Executor.Model, results)

	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		sess := &session.Session{
			Question:     question,
			Model:        cfg.Executor.Model,
			Preset:       cfg.VerifyPreset,
			Queries:      plan.Queries,
			Results:      results,
			Verification: report,
			Synthesis:    synthesized,
		}
		if err := saveSession(cfg.Session, sess); err != nil {
			// Persistence failure should not discard a completed run.
			fmt.Fprintf(os.Stderr, "warning: could not save session: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Saved session %s\n", sess.ID)
		}
	}

	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		if err := synthesis.WriteReportFile(outPath, synthesized, report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote report to %s\n", outPath)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(synthesis.ReportFile{Synthesis: synthesized, Verification: report})
	}

	synthesis.FormatReport(synthesized, report, os.Stdout)
	return nil
}

// pipelineConfig assembles the stage configuration from flags, the viper
// config file, and loaded secrets, in that precedence order.
func pipelineConfig(cmd *cobra.Command) (types.PipelineConfig, error) {
	maxQueries, _ := cmd.Flags().GetInt("max-queries")
	if maxQueries == 0 {
		maxQueries = viper.GetInt("planner.max_queries")
	}

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("executor.model")
	}
	if model == "" {
		model = defaultModel
	}

	mode, _ := cmd.Flags().GetString("mode")
	if mode == "" {
		mode = viper.GetString("executor.mode")
	}
	if mode == "" {
		mode = string(types.ModeAcademic)
	}
	if mode != string(types.ModeAcademic) && mode != string(types.ModeWeb) {
		return types.PipelineConfig{}, fmt.Errorf("unsupported mode %q: use academic or web", mode)
	}

	maxTokens, _ := cmd.Flags().GetInt("max-tokens")
	if maxTokens == 0 {
		maxTokens = viper.GetInt("executor.max_tokens")
	}
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	temperature, _ := cmd.Flags().GetFloat64("temperature")

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("executor.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	interval, _ := cmd.Flags().GetDuration("interval")
	if interval == 0 {
		interval = viper.GetDuration("executor.request_interval")
	}
	if interval == 0 {
		interval = defaultInterval
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	apiKey = secretDefault("sonar-api-key", apiKey)

	sessionsDir, _ := cmd.Flags().GetString("sessions-dir")
	if v := viper.GetString("session.sessions_dir"); sessionsDir == "sessions" && v != "" {
		sessionsDir = v
	}

	preset, _ := cmd.Flags().GetString("preset")
	if preset == "" {
		preset = viper.GetString("verify_preset")
	}
	if preset == "" {
		preset = "balanced"
	}

	return types.PipelineConfig{
		Planner: types.PlannerConfig{MaxQueries: maxQueries},
		Executor: types.ExecutorConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: defaultUserAgent,
			},
			Model:           model,
			Mode:            types.SearchMode(mode),
			MaxTokens:       maxTokens,
			Temperature:     temperature,
			APIKey:          apiKey,
			RequestInterval: interval,
		},
		Session:      types.SessionConfig{SessionsDir: sessionsDir},
		VerifyPreset: preset,
	}, nil
}

// collectOverrides gathers verification parameter overrides from the
// --verify-config YAML file and repeated --set path=value flags, with
// --set winning on conflicts.
func collectOverrides(cmd *cobra.Command) (map[string]float64, error) {
	overrides := map[string]float64{}

	if path, _ := cmd.Flags().GetString("verify-config"); path != "" {
		fromFile, err := verify.ReadOverridesFile(path)
		if err != nil {
			return nil, err
		}
		overrides = fromFile
	}

	pairs, _ := cmd.Flags().GetStringSlice("set")
	for _, pair := range pairs {
		path, raw, found := strings.Cut(pair, "=")
		if !found || path == "" {
			return nil, fmt.Errorf("invalid override %q: expected path=value", pair)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid override value %q for %s: %w", raw, path, err)
		}
		overrides[path] = value
	}
	return overrides, nil
}

func saveSession(cfg types.SessionConfig, sess *session.Session) error {
	store, err := session.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(context.Background(), sess)
}
