package circuitbreaker

import (
	"errors"

	"github.com/sony/gobreaker"
)

// Manager manages circuit breakers keyed by agent name.
type Manager interface {
	// GetOrCreate returns the existing circuit breaker or creates a new one.
	GetOrCreate(agentName string, config Config) CircuitBreaker

	// Execute runs a function through the named agent's circuit breaker.
	Execute(agentName string, fn func() (any, error)) (any, error)

	// GetState returns the current state.
	GetState(agentName string) State

	// GetCounts returns the current counts for a circuit breaker.
	GetCounts(agentName string) Counts

	// IsHealthy returns true if the circuit breaker is closed.
	IsHealthy(agentName string) bool

	// Reset resets a circuit breaker to the closed state.
	Reset(agentName string)

	// RegisterStateChangeListener registers a listener for state changes.
	RegisterStateChangeListener(listener StateChangeListener)
}

// CircuitBreaker wraps sony/gobreaker behind the core's interface.
type CircuitBreaker interface {
	Execute(fn func() (any, error)) (any, error)
	State() State
	Counts() Counts
}

// State represents circuit breaker state.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
	StateUnknown  State = "unknown"
)

// Counts represents circuit breaker statistics.
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// StateChangeListener is notified when a circuit breaker changes state.
type StateChangeListener interface {
	// OnStateChange is called when a circuit breaker changes state.
	OnStateChange(agentName string, from State, to State)
}

// IsRejection reports whether the error is a breaker fast-fail: either the
// breaker is open, or the half-open probe budget is spent. The unit of work
// was never invoked in either case.
func IsRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// circuitBreaker is the internal implementation wrapping gobreaker.
type circuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

func (cb *circuitBreaker) Execute(fn func() (any, error)) (any, error) {
	return cb.breaker.Execute(fn)
}

func (cb *circuitBreaker) State() State {
	return convertGobreakerState(cb.breaker.State())
}

func (cb *circuitBreaker) Counts() Counts {
	counts := cb.breaker.Counts()

	return Counts{
		Requests:             counts.Requests,
		TotalSuccesses:       counts.TotalSuccesses,
		TotalFailures:        counts.TotalFailures,
		ConsecutiveSuccesses: counts.ConsecutiveSuccesses,
		ConsecutiveFailures:  counts.ConsecutiveFailures,
	}
}

// convertGobreakerState converts gobreaker.State to our State type.
func convertGobreakerState(state gobreaker.State) State {
	switch state {
	case gobreaker.StateClosed:
		return StateClosed
	case gobreaker.StateOpen:
		return StateOpen
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	default:
		return StateUnknown
	}
}
