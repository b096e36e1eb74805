package engine

import (
	"time"

	"github.com/Punky2280/cartita-mcdaniels-sub003/circuitbreaker"
	"github.com/Punky2280/cartita-mcdaniels-sub003/metrics"
)

// Status classifies an agent's operational condition.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// degradedErrorRate is the rolling error rate above which a closed breaker
// still reports degraded.
const degradedErrorRate = 0.10

// Health is a point-in-time snapshot consumed by monitoring collaborators.
type Health struct {
	Status       Status               `json:"status"`
	BreakerState circuitbreaker.State `json:"breakerState"`
	FailureCount uint32               `json:"failureCount"`
	Metrics      metrics.Snapshot     `json:"metrics"`
	Uptime       time.Duration        `json:"uptime"`
}

// Health derives the agent's status from live breaker state and metrics:
// unhealthy while the breaker is open, degraded while half-open or when the
// error rate exceeds 10%, healthy otherwise.
func (e *Engine) Health() Health {
	state := e.breaker.State()
	counts := e.breaker.Counts()
	snapshot := e.collector.Snapshot()

	var status Status

	switch {
	case state == circuitbreaker.StateOpen:
		status = StatusUnhealthy
	case state == circuitbreaker.StateHalfOpen || snapshot.ErrorRate > degradedErrorRate:
		status = StatusDegraded
	default:
		status = StatusHealthy
	}

	return Health{
		Status:       status,
		BreakerState: state,
		FailureCount: counts.ConsecutiveFailures,
		Metrics:      snapshot,
		Uptime:       time.Since(e.startedAt),
	}
}

// Metrics returns the current rolling statistics snapshot.
func (e *Engine) Metrics() metrics.Snapshot {
	return e.collector.Snapshot()
}

// ResetMetrics zeroes the rolling statistics. The breaker is not touched.
func (e *Engine) ResetMetrics() {
	e.collector.Reset()
}
