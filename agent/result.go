package agent

import "time"

// Result metadata keys set by the engine on every outcome.
const (
	MetadataExecutionID  = "executionId"
	MetadataBreakerState = "breakerState"
)

// Result is the tagged outcome of one execution: success when Err is nil,
// failure otherwise. Both sides carry timing, the 1-based attempt count, and
// metadata including the execution id and breaker state at completion.
type Result struct {
	Data            any               `json:"data,omitempty"`
	Err             *Error            `json:"error,omitempty"`
	ExecutionTimeMs int64             `json:"executionTimeMs"`
	Attempts        int               `json:"attempts"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// IsSuccess reports whether the execution succeeded.
func (r Result) IsSuccess() bool { return r.Err == nil }

// ExecutionID returns the execution id the engine tagged the result with,
// or an empty string when absent (e.g. dispatcher-level failures).
func (r Result) ExecutionID() string {
	return r.Metadata[MetadataExecutionID]
}

// Success builds a success result.
func Success(data any, executionTime time.Duration, attempts int, metadata map[string]string) Result {
	return Result{
		Data:            data,
		ExecutionTimeMs: executionTime.Milliseconds(),
		Attempts:        attempts,
		Metadata:        metadata,
	}
}

// Failure builds an error result.
func Failure(err *Error, executionTime time.Duration, attempts int, metadata map[string]string) Result {
	return Result{
		Err:             err,
		ExecutionTimeMs: executionTime.Milliseconds(),
		Attempts:        attempts,
		Metadata:        metadata,
	}
}
