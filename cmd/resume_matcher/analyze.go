package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
)

var (
	analyzeResumePath string
	analyzeJobPath    string
	analyzeConfigPath string
	analyzeJSON       bool
	analyzeVerbose    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long:  `Run the full analysis pipeline on a resume text file and a job description text file, printing the match report.`,
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResumePath, "resume", "", "Path to resume text file (required)")
	analyzeCmd.Flags().StringVar(&analyzeJobPath, "job", "", "Path to job description text file (required)")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to JSON config file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw report JSON instead of the formatted summary")
	analyzeCmd.Flags().BoolVar(&analyzeVerbose, "verbose", false, "Print stage progress while the pipeline runs")
	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(analyzeConfigPath)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	resumeText, err := os.ReadFile(analyzeResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	jobText, err := os.ReadFile(analyzeJobPath)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := llm.NewClient(ctx, modelConfig(cfg), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create provider client: %w", err)
	}
	defer func() { _ = client.Close() }()

	printer := observability.NewPrinter(os.Stdout)
	opts := pipeline.Options{
		Client:       client,
		StageTimeout: cfg.StageTimeout(),
	}
	if analyzeVerbose || cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			printer.PrintProgress(string(event.State), event.Stage, event.Message)
		}
	}

	report, err := pipeline.New(opts).Analyze(ctx, string(resumeText), string(jobText))
	if err != nil {
		return err
	}

	if analyzeJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	printer.PrintMatchReport(report)
	return nil
}

// loadConfig merges the optional config file with environment variables.
func loadConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// modelConfig applies config-file model overrides to the default tiers.
func modelConfig(cfg *config.Config) *llm.Config {
	mc := llm.DefaultConfig()
	for tier, model := range cfg.Models {
		mc = mc.WithModel(llm.ModelTier(tier), model)
	}
	return mc
}
