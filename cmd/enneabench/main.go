// Command enneabench administers personality questionnaires to a local
// model and reports scored, cross-run statistics. It runs either as a
// one-shot CLI session or as a Temporal worker for durable sessions.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
