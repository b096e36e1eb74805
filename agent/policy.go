package agent

import (
	"fmt"
	"slices"
	"time"
)

// RetryPolicy governs attempt count, backoff shape, and which failure
// classifications are retried. Treat values as immutable; share freely.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt, so a
	// call performs at most MaxRetries+1 attempts.
	MaxRetries int

	// BackoffMultiplier grows the delay per attempt. Values below 1 are
	// treated as 1 (constant delay).
	BackoffMultiplier float64

	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the backoff delay. Zero means uncapped.
	MaxDelay time.Duration

	// Jitter randomizes each delay over [0, computed delay) when set.
	Jitter bool

	// RetryableErrors lists the classifications worth retrying.
	RetryableErrors []Classification
}

// DefaultRetryPolicy retries transient failures with 100ms..5s exponential
// backoff. Validation, circuit-breaker, and unknown failures are not retried
// unless explicitly whitelisted.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:        3,
		BackoffMultiplier: 2.0,
		InitialDelay:      100 * time.Millisecond,
		MaxDelay:          5 * time.Second,
		RetryableErrors: []Classification{
			ClassificationTimeout,
			ClassificationNetwork,
			ClassificationTemporary,
			ClassificationRateLimit,
		},
	}
}

// NoRetryPolicy performs exactly one attempt.
func NoRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:        0,
		BackoffMultiplier: 1.0,
	}
}

// IsRetryable reports whether the classification is in the policy's
// retryable set.
func (p RetryPolicy) IsRetryable(classification Classification) bool {
	return slices.Contains(p.RetryableErrors, classification)
}

// Validate checks the policy for nonsensical values.
func (p RetryPolicy) Validate() error {
	if p.MaxRetries < 0 {
		return fmt.Errorf("retry policy: maxRetries must not be negative, got %d", p.MaxRetries)
	}

	if p.InitialDelay < 0 {
		return fmt.Errorf("retry policy: initialDelay must not be negative, got %s", p.InitialDelay)
	}

	if p.MaxDelay < 0 {
		return fmt.Errorf("retry policy: maxDelay must not be negative, got %s", p.MaxDelay)
	}

	if p.MaxDelay > 0 && p.InitialDelay > p.MaxDelay {
		return fmt.Errorf("retry policy: initialDelay %s exceeds maxDelay %s", p.InitialDelay, p.MaxDelay)
	}

	return nil
}
