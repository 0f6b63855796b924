package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastRetryConfig keeps test backoff delays negligible.
func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2.0,
	}
}

func newTestClient(t *testing.T, serverURL string, retry RetryConfig) Client {
	t.Helper()
	c, err := NewClient(Config{
		Endpoint:   serverURL,
		Retry:      retry,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	})
	require.NoError(t, err)
	return c
}

func TestClientComplete(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"response":          "  4\n",
			"done":              true,
			"prompt_eval_count": 120,
			"eval_count":        2,
			"total_duration":    1500000,
		})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, fastRetryConfig(1))
	resp, err := c.Complete(context.Background(), &Request{Model: "mistral", Prompt: "Statement: ..."})
	require.NoError(t, err)

	assert.Equal(t, "4", resp.Content, "surrounding whitespace is trimmed")
	assert.Equal(t, int64(120), resp.Usage.PromptTokens)
	assert.Equal(t, int64(2), resp.Usage.OutputTokens)
	assert.Equal(t, time.Duration(1500000), resp.Usage.TotalDuration)

	assert.Equal(t, "mistral", gotBody["model"])
	assert.Equal(t, false, gotBody["stream"], "streaming must be disabled")
}

func TestClientRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "model is loading"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "B", "done": true})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, fastRetryConfig(3))
	resp, err := c.Complete(context.Background(), &Request{Model: "mistral", Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "B", resp.Content)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientDoesNotRetryBadRequests(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "model 'missing' not found"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, fastRetryConfig(3))
	_, err := c.Complete(context.Background(), &Request{Model: "missing", Prompt: "p"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "permanent failures must not be retried")

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, ErrorTypeBadRequest, provErr.Type)
	assert.Equal(t, http.StatusNotFound, provErr.StatusCode)
	assert.Contains(t, provErr.Message, "not found")
	assert.False(t, provErr.Retryable())
}

func TestClientExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, fastRetryConfig(3))
	_, err := c.Complete(context.Background(), &Request{Model: "mistral", Prompt: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errRetriesExhausted)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The request body must be consumed before the server can notice
		// the client going away and cancel the request context.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, fastRetryConfig(2))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Complete(ctx, &Request{Model: "mistral", Prompt: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientRequiresModel(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), &Request{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model name is required")
}

func TestNewClientRejectsInvalidRetryConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RetryConfig)
	}{
		{"zero initial interval", func(c *RetryConfig) { c.InitialInterval = 0 }},
		{"max below initial", func(c *RetryConfig) { c.MaxInterval = c.InitialInterval / 2 }},
		{"multiplier below one", func(c *RetryConfig) { c.Multiplier = 0.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg.Retry)
			_, err := NewClient(cfg)
			assert.Error(t, err)
		})
	}
}

func TestProviderErrorRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, fastRetryConfig(1))
	_, err := c.Complete(context.Background(), &Request{Model: "mistral", Prompt: "p"})
	require.Error(t, err)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, ErrorTypeRateLimit, provErr.Type)
	assert.Equal(t, 7*time.Second, provErr.GetRetryAfter())
	assert.True(t, provErr.Retryable())
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(context.Canceled))
	assert.False(t, IsRetryable(context.DeadlineExceeded))
	assert.False(t, IsRetryable(&ProviderError{Type: ErrorTypeBadRequest}))
	assert.True(t, IsRetryable(&ProviderError{Type: ErrorTypeUnavailable}))
	assert.True(t, IsRetryable(&ProviderError{Type: ErrorTypeRateLimit}))
	assert.True(t, IsRetryable(errors.New("connection reset by peer")))
}
