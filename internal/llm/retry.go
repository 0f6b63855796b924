package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Retry configuration validation errors.
var (
	errMaxAttemptsInvalid     = errors.New("maxAttempts must be greater than 0")
	errInitialIntervalInvalid = errors.New("initialInterval must be greater than 0")
	errMaxIntervalInvalid     = errors.New("maxInterval must be >= initialInterval")
	errMultiplierInvalid      = errors.New("multiplier must be >= 1.0")
)

// errRetriesExhausted is returned when every attempt failed.
var errRetriesExhausted = errors.New("all retries exhausted")

// RetryConfig controls retry behavior for failed backend calls. Retries
// live entirely in this client layer; the scoring core never retries.
type RetryConfig struct {
	MaxAttempts     int           `json:"max_attempts" yaml:"max_attempts"`
	InitialInterval time.Duration `json:"initial_interval" yaml:"initial_interval"`
	MaxInterval     time.Duration `json:"max_interval" yaml:"max_interval"`
	Multiplier      float64       `json:"multiplier" yaml:"multiplier"`
	UseJitter       bool          `json:"use_jitter" yaml:"use_jitter"`
}

// DefaultRetryConfig returns conservative retry defaults suited to a
// single local backend instance.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:     3,
		InitialInterval: time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
		UseJitter:       true,
	}
}

// RetryAfterProvider is implemented by errors that carry server-provided
// backoff guidance, which takes precedence over computed backoff.
type RetryAfterProvider interface {
	GetRetryAfter() time.Duration
}

// NewRetryMiddleware creates retry middleware with exponential backoff and
// optional full jitter. Only failures classified as retryable are
// reattempted; context cancellation aborts immediately.
func NewRetryMiddleware(cfg RetryConfig) (Middleware, error) {
	if cfg.MaxAttempts <= 0 {
		return nil, fmt.Errorf("%w, got %d", errMaxAttemptsInvalid, cfg.MaxAttempts)
	}
	if cfg.InitialInterval <= 0 {
		return nil, fmt.Errorf("%w, got %v", errInitialIntervalInvalid, cfg.InitialInterval)
	}
	if cfg.MaxInterval < cfg.InitialInterval {
		return nil, fmt.Errorf("%w, MaxInterval: %v, InitialInterval: %v",
			errMaxIntervalInvalid, cfg.MaxInterval, cfg.InitialInterval)
	}
	if cfg.Multiplier < 1.0 {
		return nil, fmt.Errorf("%w, got %f", errMultiplierInvalid, cfg.Multiplier)
	}

	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			var lastErr error

			for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
				select {
				case <-ctx.Done():
					return nil, fmt.Errorf("retry aborted: %w", ctx.Err())
				default:
				}

				resp, err := next.Handle(ctx, req)
				if err == nil {
					return resp, nil
				}
				lastErr = err

				// Permanent failures surface immediately without the
				// exhaustion wrapper.
				if !IsRetryable(err) {
					return nil, err
				}
				if attempt == cfg.MaxAttempts {
					break
				}

				wait := backoff(cfg, attempt)
				var provider RetryAfterProvider
				if errors.As(err, &provider) {
					if after := provider.GetRetryAfter(); after > 0 {
						wait = after
					}
				}

				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return nil, fmt.Errorf("retry aborted during backoff: %w", ctx.Err())
				}
			}

			return nil, fmt.Errorf("%w after %d attempts: %w", errRetriesExhausted, cfg.MaxAttempts, lastErr)
		})
	}, nil
}

// backoff computes the wait before the next attempt: exponential growth
// capped at MaxInterval, with full jitter when enabled.
func backoff(cfg RetryConfig, attempt int) time.Duration {
	wait := float64(cfg.InitialInterval)
	for i := 1; i < attempt; i++ {
		wait *= cfg.Multiplier
		if wait >= float64(cfg.MaxInterval) {
			wait = float64(cfg.MaxInterval)
			break
		}
	}
	if cfg.UseJitter {
		wait = rand.Float64() * wait //nolint:gosec // jitter needs no crypto randomness
	}
	if wait < 1 {
		wait = 1
	}
	return time.Duration(wait)
}
