package worker

import (
	"fmt"

	"github.com/enneabench/enneabench/internal/llm"
)

// InitializeClient creates the questionnaire backend client used by trial
// activities. It returns the client for dependency injection rather than
// setting global state, so tests can substitute their own implementations.
func InitializeClient(cfg llm.Config) (llm.Client, error) {
	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend client: %w", err)
	}
	return client, nil
}
