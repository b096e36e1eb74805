package agent

import (
	"maps"
	"time"
)

// Well-known metadata keys carried on requests and propagated to results.
const (
	MetadataTraceID       = "traceId"
	MetadataCorrelationID = "correlationId"
)

// ExecutionRequest is one unit of input for an agent execution. It is built
// by the caller per call and treated as immutable by the core.
type ExecutionRequest struct {
	// Payload carries caller-defined fields, opaque to the core. It is
	// sanitized before appearing in events or logs.
	Payload map[string]any

	// Priority defaults to PriorityNormal when empty.
	Priority Priority

	// Timeout bounds each attempt. Zero means the engine default applies.
	Timeout time.Duration

	// RetryPolicy overrides the engine's policy for this call when non-nil.
	RetryPolicy *RetryPolicy

	// Metadata is a string-keyed bag; traceId and correlationId are
	// recognized and propagated into the execution context and result.
	Metadata map[string]string
}

// EffectivePriority returns the request priority, defaulting to normal.
func (r ExecutionRequest) EffectivePriority() Priority {
	if r.Priority.Valid() {
		return r.Priority
	}

	return PriorityNormal
}

// CloneMetadata returns a copy of the request metadata, never nil.
func (r ExecutionRequest) CloneMetadata() map[string]string {
	cloned := make(map[string]string, len(r.Metadata))
	maps.Copy(cloned, r.Metadata)

	return cloned
}
