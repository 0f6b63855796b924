package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultEndpoint is the standard local Ollama address.
const DefaultEndpoint = "http://localhost:11434"

// OllamaAdapter translates normalized requests into Ollama generate API
// calls. Streaming is disabled; each questionnaire item is one complete
// request/response cycle.
type OllamaAdapter struct {
	endpoint string
}

// NewOllamaAdapter creates an adapter for the given base endpoint,
// defaulting to the local instance when empty.
func NewOllamaAdapter(endpoint string) *OllamaAdapter {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &OllamaAdapter{endpoint: strings.TrimRight(endpoint, "/")}
}

// Name returns the provider name.
func (a *OllamaAdapter) Name() string { return "ollama" }

// Build constructs the HTTP request for one completion.
func (a *OllamaAdapter) Build(ctx context.Context, req *Request) (*http.Request, error) {
	body := map[string]any{
		"model":  req.Model,
		"prompt": req.Prompt,
		"stream": false,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, a.endpoint+"/api/generate", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

// Parse extracts the normalized response from an Ollama reply. Non-200
// statuses become classified ProviderErrors so the retry middleware can
// distinguish transient from permanent failures.
func (a *OllamaAdapter) Parse(httpResp *http.Response) (*Response, error) {
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read generate response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, parseOllamaError(httpResp, body)
	}

	var resp struct {
		Response        string `json:"response"`
		Done            bool   `json:"done"`
		PromptEvalCount int64  `json:"prompt_eval_count"`
		EvalCount       int64  `json:"eval_count"`
		TotalDuration   int64  `json:"total_duration"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse generate response: %w", err)
	}

	return &Response{
		Content: strings.TrimSpace(resp.Response),
		Usage: Usage{
			PromptTokens:  resp.PromptEvalCount,
			OutputTokens:  resp.EvalCount,
			TotalDuration: time.Duration(resp.TotalDuration),
		},
	}, nil
}

// parseOllamaError builds a classified error from a failed reply. Ollama
// reports failures as {"error": "..."}.
func parseOllamaError(httpResp *http.Response, body []byte) error {
	message := strings.TrimSpace(string(body))
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		message = errResp.Error
	}

	provErr := &ProviderError{
		Type:       classifyStatus(httpResp.StatusCode),
		StatusCode: httpResp.StatusCode,
		Message:    message,
	}
	if after := httpResp.Header.Get("Retry-After"); after != "" {
		if secs, err := strconv.Atoi(after); err == nil && secs > 0 {
			provErr.RetryAfter = time.Duration(secs) * time.Second
		}
	}
	return provErr
}
