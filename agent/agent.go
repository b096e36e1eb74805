package agent

import (
	"context"
	"fmt"
	"strings"
)

// Agent is a named unit of work. Run performs one attempt and returns either
// opaque result data or an error. The context carries the attempt deadline;
// implementations that honor cancellation stop promptly when the engine
// abandons a timed-out attempt.
type Agent interface {
	Name() string
	Run(ctx context.Context, req ExecutionRequest) (any, error)
}

// Func adapts a plain function into an Agent.
type Func struct {
	AgentName string
	Fn        func(ctx context.Context, req ExecutionRequest) (any, error)
}

// Name implements Agent.
func (f Func) Name() string { return f.AgentName }

// Run implements Agent.
func (f Func) Run(ctx context.Context, req ExecutionRequest) (any, error) {
	return f.Fn(ctx, req)
}

// Priority indicates how urgent a request is. The core carries it into
// events and trace attributes; scheduling by priority is up to the caller.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether the priority is one of the known values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical:
		return true
	}

	return false
}

// ParsePriority converts a string into a Priority. An empty string maps to
// PriorityNormal.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(s) {
	case "":
		return PriorityNormal, nil
	case "low":
		return PriorityLow, nil
	case "normal":
		return PriorityNormal, nil
	case "high":
		return PriorityHigh, nil
	case "critical":
		return PriorityCritical, nil
	}

	return "", fmt.Errorf("not a valid Priority: %q", s)
}
