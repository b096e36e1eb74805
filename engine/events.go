package engine

import (
	"time"

	"github.com/Punky2280/cartita-mcdaniels-sub003/log"
	"github.com/Punky2280/cartita-mcdaniels-sub003/security"
)

// StartedEvent is emitted once at the beginning of every execution.
// Input is the request payload with sensitive fields redacted.
type StartedEvent struct {
	AgentName   string
	ExecutionID string
	Priority    string
	Input       map[string]any
	Timestamp   time.Time
}

// CompletedEvent is emitted when an execution returns a success result.
type CompletedEvent struct {
	AgentName     string
	ExecutionID   string
	Outcome       string
	ExecutionTime time.Duration
	Attempt       int
	Timestamp     time.Time
}

// ErrorEvent is emitted for every failed attempt, including the final one.
type ErrorEvent struct {
	AgentName   string
	ExecutionID string
	Err         error
	Attempt     int
	Retryable   bool
	LastAttempt bool
	Timestamp   time.Time
}

// Observer receives lifecycle events from an Engine. Implementations must be
// safe for concurrent use; slow observers delay the execution that emitted
// the event.
type Observer interface {
	OnExecutionStarted(event StartedEvent)
	OnExecutionCompleted(event CompletedEvent)
	OnExecutionError(event ErrorEvent)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) OnExecutionStarted(_ StartedEvent)     {}
func (NopObserver) OnExecutionCompleted(_ CompletedEvent) {}
func (NopObserver) OnExecutionError(_ ErrorEvent)         {}

// emitStarted notifies the observer, guarding against observer panics so a
// broken collaborator cannot take down an execution.
func (e *Engine) emitStarted(execCtx ExecutionContext, priority string, payload map[string]any) {
	defer e.recoverObserver("started")

	e.observer.OnExecutionStarted(StartedEvent{
		AgentName:   e.name,
		ExecutionID: execCtx.ID,
		Priority:    priority,
		Input:       security.SanitizePayload(payload),
		Timestamp:   time.Now(),
	})
}

func (e *Engine) emitCompleted(execCtx ExecutionContext, executionTime time.Duration, attempt int) {
	defer e.recoverObserver("completed")

	e.observer.OnExecutionCompleted(CompletedEvent{
		AgentName:     e.name,
		ExecutionID:   execCtx.ID,
		Outcome:       "success",
		ExecutionTime: executionTime,
		Attempt:       attempt,
		Timestamp:     time.Now(),
	})
}

func (e *Engine) emitError(execCtx ExecutionContext, err error, attempt int, retryable, lastAttempt bool) {
	defer e.recoverObserver("error")

	e.observer.OnExecutionError(ErrorEvent{
		AgentName:   e.name,
		ExecutionID: execCtx.ID,
		Err:         err,
		Attempt:     attempt,
		Retryable:   retryable,
		LastAttempt: lastAttempt,
		Timestamp:   time.Now(),
	})
}

func (e *Engine) recoverObserver(event string) {
	if r := recover(); r != nil {
		e.logger.Errorf("Observer panic on %s event for agent %s: %v", event, e.name, r)
	}
}

// LoggingObserver writes lifecycle events to a log.Logger. It is the default
// wiring for services that do not bring their own telemetry collaborator.
type LoggingObserver struct {
	Logger log.Logger
}

func (o LoggingObserver) OnExecutionStarted(event StartedEvent) {
	o.Logger.Infof("Execution started: agent=%s executionId=%s priority=%s",
		event.AgentName, event.ExecutionID, event.Priority)
}

func (o LoggingObserver) OnExecutionCompleted(event CompletedEvent) {
	o.Logger.Infof("Execution completed: agent=%s executionId=%s attempt=%d duration=%s",
		event.AgentName, event.ExecutionID, event.Attempt, event.ExecutionTime)
}

func (o LoggingObserver) OnExecutionError(event ErrorEvent) {
	o.Logger.Warnf("Execution error: agent=%s executionId=%s attempt=%d retryable=%v lastAttempt=%v error=%v",
		event.AgentName, event.ExecutionID, event.Attempt, event.Retryable, event.LastAttempt, event.Err)
}
