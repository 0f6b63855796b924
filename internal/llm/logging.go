package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// NewLoggingMiddleware creates observability middleware with structured
// logging of the request lifecycle: start, latency, token usage, and
// classified failures. Prompt text is redacted unless redactPrompts is
// disabled, since questionnaire items can be sensitive instrument content.
func NewLoggingMiddleware(logger *slog.Logger, redactPrompts bool) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "llm")

	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if req.TraceID == "" {
				req.TraceID = uuid.New().String()
			}

			prompt := "[REDACTED]"
			if !redactPrompts {
				prompt = req.Prompt
			}
			logger.DebugContext(ctx, "backend request",
				"trace_id", req.TraceID,
				"model", req.Model,
				"prompt", prompt,
				"prompt_len", len(req.Prompt))

			start := time.Now()
			resp, err := next.Handle(ctx, req)
			duration := time.Since(start)

			if err != nil {
				var provErr *ProviderError
				errType := ErrorTypeNetwork
				if errors.As(err, &provErr) {
					errType = provErr.Type
				}
				logger.ErrorContext(ctx, "backend request failed",
					"trace_id", req.TraceID,
					"model", req.Model,
					"duration_ms", duration.Milliseconds(),
					"error_type", string(errType),
					"error", err)
				return nil, err
			}

			logger.InfoContext(ctx, "backend request completed",
				"trace_id", req.TraceID,
				"model", req.Model,
				"duration_ms", duration.Milliseconds(),
				"prompt_tokens", resp.Usage.PromptTokens,
				"output_tokens", resp.Usage.OutputTokens,
				"content_len", len(resp.Content))
			return resp, nil
		})
	}
}
