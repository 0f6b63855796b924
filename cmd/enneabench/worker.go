package main

import (
	"fmt"

	"github.com/spf13/cobra"
	sdkclient "go.temporal.io/sdk/client"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/enneabench/enneabench/internal/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run a Temporal worker serving assessment workflows",
	Long: `Connects to the configured Temporal service and processes assessment
workflows and their activities on the configured task queue until
interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		temporalClient, err := sdkclient.Dial(sdkclient.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
		})
		if err != nil {
			return fmt.Errorf("connect to temporal: %w", err)
		}
		defer temporalClient.Close()

		llmClient, err := worker.InitializeClient(cfg.ClientConfig(logger))
		if err != nil {
			return err
		}

		w := sdkworker.New(temporalClient, cfg.Temporal.TaskQueue, sdkworker.Options{})
		worker.RegisterAll(w, llmClient)

		logger.Info("worker starting",
			"task_queue", cfg.Temporal.TaskQueue,
			"namespace", cfg.Temporal.Namespace)

		if err := w.Run(sdkworker.InterruptCh()); err != nil {
			return fmt.Errorf("worker stopped: %w", err)
		}
		return nil
	},
}
