package circuitbreaker

import "time"

// Config holds circuit breaker configuration for one agent.
type Config struct {
	// FailureThreshold is the number of consecutive failures that trips
	// the breaker from closed to open.
	FailureThreshold uint32

	// RecoveryTimeout is how long the breaker stays open before admitting
	// half-open probes.
	RecoveryTimeout time.Duration

	// HalfOpenMaxRequests caps the probes admitted while half-open;
	// additional calls fail fast. The breaker closes only after this many
	// consecutive probe successes, so values above 1 demand repeated proof
	// of recovery before traffic resumes.
	HalfOpenMaxRequests uint32

	// Interval is the closed-state window after which counts reset.
	// Zero means counts only reset on state transitions.
	Interval time.Duration
}

// DefaultConfig provides balanced settings for most agents.
func DefaultConfig() Config {
	return Config{
		FailureThreshold:    5,
		RecoveryTimeout:     30 * time.Second,
		HalfOpenMaxRequests: 1,
		Interval:            2 * time.Minute,
	}
}

// AggressiveConfig for agents requiring fast failure detection.
func AggressiveConfig() Config {
	return Config{
		FailureThreshold:    3,
		RecoveryTimeout:     10 * time.Second,
		HalfOpenMaxRequests: 1,
		Interval:            1 * time.Minute,
	}
}

// ConservativeConfig for agents that should tolerate more failures.
func ConservativeConfig() Config {
	return Config{
		FailureThreshold:    15,
		RecoveryTimeout:     60 * time.Second,
		HalfOpenMaxRequests: 3,
		Interval:            5 * time.Minute,
	}
}

// withDefaults fills in zero values so a partially specified config still
// produces a working breaker.
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()

	if c.FailureThreshold == 0 {
		c.FailureThreshold = defaults.FailureThreshold
	}

	if c.RecoveryTimeout <= 0 {
		c.RecoveryTimeout = defaults.RecoveryTimeout
	}

	if c.HalfOpenMaxRequests == 0 {
		c.HalfOpenMaxRequests = defaults.HalfOpenMaxRequests
	}

	return c
}
