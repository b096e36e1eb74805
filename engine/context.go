package engine

import (
	"time"

	"github.com/Punky2280/cartita-mcdaniels-sub003/agent"
	"github.com/google/uuid"
)

// ExecutionContext is the per-call bundle built at the start of Execute and
// owned exclusively by that call.
type ExecutionContext struct {
	ID            string
	StartedAt     time.Time
	TraceID       string
	CorrelationID string
	Metadata      map[string]string
}

// newExecutionContext builds the context for one call: a fresh UUIDv7
// execution id plus trace/correlation identifiers lifted from the request
// metadata when present.
func newExecutionContext(req agent.ExecutionRequest) ExecutionContext {
	return ExecutionContext{
		ID:            newExecutionID(),
		StartedAt:     time.Now(),
		TraceID:       req.Metadata[agent.MetadataTraceID],
		CorrelationID: req.Metadata[agent.MetadataCorrelationID],
		Metadata:      req.CloneMetadata(),
	}
}

// newExecutionID returns a UUIDv7 so execution ids sort by creation time.
// Falls back to v4 when the monotonic clock source fails.
func newExecutionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
