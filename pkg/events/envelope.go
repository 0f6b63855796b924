// Package events provides the generic event infrastructure for session
// observability. It defines the Envelope type wrapping domain events with
// consistent metadata and the EventSink interface for event delivery.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types emitted by the assessment pipeline.
const (
	// TypeTrialCompleted is emitted after one trial is administered and
	// scored.
	TypeTrialCompleted = "trial.completed"

	// TypeSessionAggregated is emitted after the trials of one test are
	// statistically combined.
	TypeSessionAggregated = "session.aggregated"
)

// Envelope wraps domain events with consistent metadata for reliable
// downstream processing: routing, deduplication and workflow correlation.
type Envelope struct {
	// ID uniquely identifies this event instance.
	ID string `json:"id"`

	// Type identifies the event for routing, e.g. "trial.completed".
	Type string `json:"type"`

	// Source identifies the emitting component, e.g. "trial-activity".
	Source string `json:"source"`

	// Version enables schema evolution, semantic-versioned from "1.0.0".
	Version string `json:"version"`

	// Timestamp records when the event was emitted.
	Timestamp time.Time `json:"timestamp"`

	// IdempotencyKey ensures exactly-once processing during retries.
	IdempotencyKey string `json:"idempotency_key"`

	// WorkflowID and RunID correlate the event with its workflow
	// execution; empty for direct in-process runs.
	WorkflowID string `json:"workflow_id,omitempty"`
	RunID      string `json:"run_id,omitempty"`

	// Payload contains the event data as JSON; schema varies by Type.
	Payload json.RawMessage `json:"payload"`
}

// EventSink receives event envelopes for storage or transmission.
// Implementations must be safe for concurrent use.
type EventSink interface {
	Append(ctx context.Context, envelope Envelope) error
}

// NoOpEventSink discards all events. Used when no projection store is
// configured and in tests.
type NoOpEventSink struct{}

// NewNoOpEventSink creates a sink that discards all events.
func NewNoOpEventSink() *NoOpEventSink { return &NoOpEventSink{} }

// Append implements EventSink.
func (s *NoOpEventSink) Append(context.Context, Envelope) error { return nil }
