package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// errModelRequired indicates a completion request without a model name.
var errModelRequired = errors.New("model name is required")

// ErrorType classifies backend failures for retry decisions.
type ErrorType string

const (
	// ErrorTypeRateLimit indicates the backend shed load; retryable,
	// honoring any Retry-After guidance.
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// ErrorTypeTimeout indicates the request exceeded its deadline;
	// retryable.
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeUnavailable indicates a transient server-side failure;
	// retryable.
	ErrorTypeUnavailable ErrorType = "unavailable"

	// ErrorTypeNetwork indicates a connection-level failure; retryable.
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeBadRequest indicates the request itself was rejected, for
	// example an unknown model name; not retryable.
	ErrorTypeBadRequest ErrorType = "bad_request"
)

// ProviderError is a classified backend failure carrying enough context
// for the retry middleware and for operational logs.
type ProviderError struct {
	Type       ErrorType
	StatusCode int
	Message    string
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("backend error [%s, status %d]: %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend error [%s]: %s", e.Type, e.Message)
}

// Retryable reports whether the failure class is worth another attempt.
func (e *ProviderError) Retryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit, ErrorTypeTimeout, ErrorTypeUnavailable, ErrorTypeNetwork:
		return true
	default:
		return false
	}
}

// GetRetryAfter returns the backend's recommended wait before the next
// attempt, or zero when none was provided.
func (e *ProviderError) GetRetryAfter() time.Duration { return e.RetryAfter }

// classifyStatus maps an HTTP status code to an error classification.
func classifyStatus(status int) ErrorType {
	switch {
	case status == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ErrorTypeTimeout
	case status >= http.StatusInternalServerError:
		return ErrorTypeUnavailable
	default:
		return ErrorTypeBadRequest
	}
}

// IsRetryable reports whether err represents a transient failure. Errors
// that are not ProviderError values (connection resets, DNS failures and
// other transport errors surfaced by net/http) are treated as retryable
// network failures.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Retryable()
	}
	return true
}
