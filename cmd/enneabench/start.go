package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	sdkclient "go.temporal.io/sdk/client"

	"github.com/enneabench/enneabench/internal/domain"
	"github.com/enneabench/enneabench/internal/workflow"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start an assessment workflow on Temporal and wait for the report",
	Long: `Submits an assessment workflow to the configured Temporal service,
blocks until it completes, and writes the markdown report to the output
directory. A worker must be running on the same task queue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := assessmentRequest(cfg)
		if err != nil {
			return err
		}

		temporalClient, err := sdkclient.Dial(sdkclient.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
		})
		if err != nil {
			return fmt.Errorf("connect to temporal: %w", err)
		}
		defer temporalClient.Close()

		workflowID := fmt.Sprintf("assessment-%s", uuid.NewString())
		run, err := temporalClient.ExecuteWorkflow(cmd.Context(), sdkclient.StartWorkflowOptions{
			ID:        workflowID,
			TaskQueue: cfg.Temporal.TaskQueue,
		}, workflow.AssessmentWorkflow, req)
		if err != nil {
			return fmt.Errorf("start workflow: %w", err)
		}

		logger.Info("workflow started",
			"workflow_id", run.GetID(),
			"run_id", run.GetRunID())

		var result domain.AssessmentResult
		if err := run.Get(cmd.Context(), &result); err != nil {
			return fmt.Errorf("workflow failed: %w", err)
		}

		path, err := writeReport(cfg.OutputDir, &result)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", path)
		return nil
	},
}
