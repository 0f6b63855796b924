package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/enneabench/enneabench/internal/domain"
	"github.com/enneabench/enneabench/internal/report"
	"github.com/enneabench/enneabench/internal/session"
	"github.com/enneabench/enneabench/internal/worker"
	"github.com/enneabench/enneabench/pkg/events"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a complete assessment session in-process",
	Long: `Administers every configured test the configured number of times
against the backend, aggregates the trials, and writes a markdown report
to the output directory. No Temporal service is required.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := assessmentRequest(cfg)
		if err != nil {
			return err
		}

		client, err := worker.InitializeClient(cfg.ClientConfig(logger))
		if err != nil {
			return err
		}

		runner := session.NewRunner(client, events.NewNoOpEventSink(), logger)

		logger.Info("starting assessment",
			"model", req.Model,
			"tests", len(req.Definitions),
			"runs_per_test", req.RunsPerTest)

		result, err := runner.Run(cmd.Context(), req)
		if err != nil {
			return err
		}

		path, err := writeReport(cfg.OutputDir, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", path)
		return nil
	},
}

// writeReport renders the markdown report and writes it under dir,
// creating the directory if needed.
func writeReport(dir string, result *domain.AssessmentResult) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	now := time.Now()
	path := filepath.Join(dir, report.Filename(result.Model, now))
	if err := os.WriteFile(path, []byte(report.Render(result, now)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
