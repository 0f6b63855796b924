// Package llm provides the HTTP client for the text-generation backend
// that answers questionnaire items. Requests flow through a composable
// middleware pipeline (retry, observability) around a core handler that
// speaks the Ollama generate API. The scoring core never sees any of
// this; it consumes the returned raw answer strings as plain text.
package llm

import (
	"context"
	"time"
)

// Request is one normalized completion request against the backend.
type Request struct {
	// Model is the backend model name, e.g. "mistral" or "llama3".
	Model string `json:"model"`

	// Prompt is the fully rendered prompt for one questionnaire item.
	Prompt string `json:"prompt"`

	// TraceID correlates logs across middleware. Assigned by the logging
	// middleware when empty.
	TraceID string `json:"trace_id,omitempty"`
}

// Usage captures backend-reported resource consumption for one request.
type Usage struct {
	PromptTokens  int64         `json:"prompt_tokens"`
	OutputTokens  int64         `json:"output_tokens"`
	TotalDuration time.Duration `json:"total_duration"`
}

// Response is the normalized backend response.
type Response struct {
	// Content is the generated text with surrounding whitespace trimmed.
	Content string `json:"content"`

	// Usage holds backend-reported token counts and timing.
	Usage Usage `json:"usage"`
}

// Handler processes completion requests. It is the core abstraction that
// middleware wraps to add cross-cutting behavior.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(context.Context, *Request) (*Response, error)

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Middleware transforms a Handler into an enhanced Handler.
type Middleware func(Handler) Handler

// Chain builds a middleware pipeline around a core handler. Middleware
// executes in the order provided, first middleware outermost.
func Chain(h Handler, middlewares ...Middleware) Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
