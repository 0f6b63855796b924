package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/enneabench/enneabench/internal/config"
	"github.com/enneabench/enneabench/internal/domain"
	"github.com/enneabench/enneabench/internal/testdef"
)

var (
	configPath string
	modelFlag  string
	runsFlag   int

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "enneabench",
	Short: "Administer personality questionnaires to a local model",
	Long: `enneabench administers Likert and forced-choice questionnaires to a
model served by Ollama, parses the free-text answers into ratings and
choices, scores each run, and aggregates multiple runs into per-type and
per-center statistics with population standard deviations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if modelFlag != "" {
			loaded.Model = modelFlag
		}
		if runsFlag > 0 {
			loaded.RunsPerTest = runsFlag
		}
		cfg = loaded

		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.Logging.SlogLevel(),
		}))
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml",
		"path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "",
		"override the configured model name")
	rootCmd.PersistentFlags().IntVarP(&runsFlag, "runs", "r", 0,
		"override the configured runs per test")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(startCmd)
}

// loadDefinitions reads every configured test file with the parser its
// format requires.
func loadDefinitions(cfg *config.Config) ([]*domain.TestDefinition, error) {
	defs := make([]*domain.TestDefinition, 0, len(cfg.Tests))
	for _, tf := range cfg.Tests {
		var (
			def *domain.TestDefinition
			err error
		)
		switch tf.Format {
		case string(domain.FormatLikert):
			def, err = testdef.LoadLikert(tf.Path)
		case string(domain.FormatForcedChoice):
			def, err = testdef.LoadPaired(tf.Path)
		default:
			err = fmt.Errorf("unknown test format %q", tf.Format)
		}
		if err != nil {
			return nil, fmt.Errorf("load test %s: %w", tf.Path, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// assessmentRequest builds the session request from the loaded config.
func assessmentRequest(cfg *config.Config) (domain.AssessmentRequest, error) {
	defs, err := loadDefinitions(cfg)
	if err != nil {
		return domain.AssessmentRequest{}, err
	}
	req := domain.AssessmentRequest{
		Model:       cfg.Model,
		RunsPerTest: cfg.RunsPerTest,
		Definitions: defs,
	}
	if err := req.Validate(); err != nil {
		return domain.AssessmentRequest{}, err
	}
	return req, nil
}
