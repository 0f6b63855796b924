package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Client is the interface trials use to obtain one raw answer per item.
type Client interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// Config holds the client configuration: endpoint, timeouts, retry policy
// and observability options.
type Config struct {
	// Endpoint is the backend base URL. Empty selects the local default.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// HTTPTimeout bounds a single attempt. Generation against a local
	// model can be slow, so the default is generous.
	HTTPTimeout time.Duration `json:"http_timeout" yaml:"http_timeout"`

	// Retry controls the retry middleware.
	Retry RetryConfig `json:"retry" yaml:"retry"`

	// RedactPrompts suppresses prompt text in logs.
	RedactPrompts bool `json:"redact_prompts" yaml:"redact_prompts"`

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client `json:"-" yaml:"-"`

	// Logger receives structured request logs. Nil uses slog.Default.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// DefaultConfig returns a configuration suitable for a local backend.
func DefaultConfig() Config {
	return Config{
		Endpoint:    DefaultEndpoint,
		HTTPTimeout: 10 * time.Minute,
		Retry:       DefaultRetryConfig(),
	}
}

// client runs requests through the middleware pipeline.
type client struct {
	handler Handler
}

// NewClient builds a backend client with the full middleware pipeline:
// logging outermost, then retry, around the core HTTP handler.
func NewClient(cfg Config) (Client, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = DefaultConfig().HTTPTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryConfig()
	}
	retryMW, err := NewRetryMiddleware(retry)
	if err != nil {
		return nil, fmt.Errorf("configure retry middleware: %w", err)
	}

	core := &httpHandler{
		client:  httpClient,
		adapter: NewOllamaAdapter(cfg.Endpoint),
	}

	return &client{
		handler: Chain(core,
			NewLoggingMiddleware(cfg.Logger, cfg.RedactPrompts),
			retryMW,
		),
	}, nil
}

// Complete implements Client.
func (c *client) Complete(ctx context.Context, req *Request) (*Response, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("%w", errModelRequired)
	}
	return c.handler.Handle(ctx, req)
}

// httpHandler is the core handler performing the actual HTTP exchange.
type httpHandler struct {
	client  *http.Client
	adapter *OllamaAdapter
}

// Handle implements Handler.
func (h *httpHandler) Handle(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := h.adapter.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("backend request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	return h.adapter.Parse(httpResp)
}
