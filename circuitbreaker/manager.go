package circuitbreaker

import (
	"fmt"
	"sync"

	"github.com/Punky2280/cartita-mcdaniels-sub003/log"
	"github.com/sony/gobreaker"
)

type manager struct {
	breakers  map[string]*gobreaker.CircuitBreaker
	configs   map[string]Config // Store configs for safe reset
	listeners []StateChangeListener
	mu        sync.RWMutex
	logger    log.Logger
}

// NewManager creates a new circuit breaker manager.
func NewManager(logger log.Logger) Manager {
	if logger == nil {
		logger = &log.NoneLogger{}
	}

	return &manager{
		breakers:  make(map[string]*gobreaker.CircuitBreaker),
		configs:   make(map[string]Config),
		listeners: make([]StateChangeListener, 0),
		logger:    logger,
	}
}

// newSettings builds gobreaker settings from a config. The breaker trips on
// consecutive failures only; gobreaker serializes all state mutation behind
// its own mutex, which is the per-agent serialization point.
func (m *manager) newSettings(agentName string, config Config) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "agent-" + agentName,
		MaxRequests: config.HalfOpenMaxRequests,
		Interval:    config.Interval,
		Timeout:     config.RecoveryTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			m.handleStateChange(agentName, from, to)
		},
	}
}

func (m *manager) GetOrCreate(agentName string, config Config) CircuitBreaker {
	m.mu.RLock()
	breaker, exists := m.breakers[agentName]
	m.mu.RUnlock()

	if exists {
		return &circuitBreaker{breaker: breaker}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if breaker, exists = m.breakers[agentName]; exists {
		return &circuitBreaker{breaker: breaker}
	}

	config = config.withDefaults()

	breaker = gobreaker.NewCircuitBreaker(m.newSettings(agentName, config))
	m.breakers[agentName] = breaker
	m.configs[agentName] = config

	m.logger.Infof("Created circuit breaker for agent: %s", agentName)

	return &circuitBreaker{breaker: breaker}
}

func (m *manager) Execute(agentName string, fn func() (any, error)) (any, error) {
	m.mu.RLock()
	breaker, exists := m.breakers[agentName]
	m.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("circuit breaker not found for agent: %s (call GetOrCreate first)", agentName)
	}

	result, err := breaker.Execute(fn)
	if err != nil {
		if err == gobreaker.ErrOpenState {
			m.logger.Warnf("Circuit breaker [%s] is OPEN - request rejected immediately", agentName)
			return nil, fmt.Errorf("agent %s is currently unavailable (circuit breaker open): %w", agentName, err)
		}

		if err == gobreaker.ErrTooManyRequests {
			m.logger.Warnf("Circuit breaker [%s] is HALF-OPEN - too many probe requests", agentName)
			return nil, fmt.Errorf("agent %s is recovering (probe budget spent): %w", agentName, err)
		}
	}

	return result, err
}

func (m *manager) GetState(agentName string) State {
	m.mu.RLock()
	breaker, exists := m.breakers[agentName]
	m.mu.RUnlock()

	if !exists {
		return StateUnknown
	}

	return convertGobreakerState(breaker.State())
}

func (m *manager) GetCounts(agentName string) Counts {
	m.mu.RLock()
	breaker, exists := m.breakers[agentName]
	m.mu.RUnlock()

	if !exists {
		return Counts{}
	}

	counts := breaker.Counts()

	return Counts{
		Requests:             counts.Requests,
		TotalSuccesses:       counts.TotalSuccesses,
		TotalFailures:        counts.TotalFailures,
		ConsecutiveSuccesses: counts.ConsecutiveSuccesses,
		ConsecutiveFailures:  counts.ConsecutiveFailures,
	}
}

func (m *manager) IsHealthy(agentName string) bool {
	state := m.GetState(agentName)
	// Only the closed state is considered healthy; open and half-open both
	// indicate the agent has not yet proven recovery.
	isHealthy := state == StateClosed
	m.logger.Debugf("IsHealthy check: agent=%s, state=%s, isHealthy=%v", agentName, state, isHealthy)

	return isHealthy
}

func (m *manager) Reset(agentName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.breakers[agentName]; !exists {
		return
	}

	m.logger.Infof("Resetting circuit breaker for agent: %s", agentName)

	config, configExists := m.configs[agentName]
	if !configExists {
		m.logger.Warnf("No stored config found for agent %s, cannot recreate", agentName)
		delete(m.breakers, agentName)

		return
	}

	// Recreate the breaker with the same configuration; a fresh gobreaker
	// starts closed with zeroed counts.
	m.breakers[agentName] = gobreaker.NewCircuitBreaker(m.newSettings(agentName, config))

	m.logger.Infof("Circuit breaker reset completed for agent: %s", agentName)
}

// RegisterStateChangeListener registers a listener for state change notifications.
func (m *manager) RegisterStateChangeListener(listener StateChangeListener) {
	if listener == nil {
		m.logger.Warnf("Attempted to register a nil state change listener")

		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, listener)
	m.logger.Debugf("Registered state change listener (total: %d)", len(m.listeners))
}

// handleStateChange processes state changes and notifies listeners.
func (m *manager) handleStateChange(agentName string, from gobreaker.State, to gobreaker.State) {
	m.logger.Warnf("Circuit breaker [%s] state changed: %s -> %s",
		agentName, from.String(), to.String())

	switch to {
	case gobreaker.StateOpen:
		m.logger.Errorf("Circuit breaker [%s] OPENED - agent is unhealthy, requests will fast-fail", agentName)
	case gobreaker.StateHalfOpen:
		m.logger.Infof("Circuit breaker [%s] HALF-OPEN - testing agent recovery", agentName)
	case gobreaker.StateClosed:
		m.logger.Infof("Circuit breaker [%s] CLOSED - agent is healthy", agentName)
	}

	fromState := convertGobreakerState(from)
	toState := convertGobreakerState(to)

	m.mu.RLock()
	listeners := make([]StateChangeListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()

	for _, listener := range listeners {
		// Notify in goroutine to avoid blocking circuit breaker operations
		go func(l StateChangeListener) {
			defer func() {
				if r := recover(); r != nil {
					m.logger.Errorf("Circuit breaker state change listener panic for agent %s: %v", agentName, r)
				}
			}()

			l.OnStateChange(agentName, fromState, toState)
		}(listener)
	}
}
