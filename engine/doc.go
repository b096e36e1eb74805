// Package engine wraps a single agent with timeout enforcement, bounded
// retry with exponential backoff, circuit-breaker fault isolation, and
// rolling execution metrics. Execute never panics past its boundary: every
// outcome, including breaker fast-fails and timeouts, is normalized into the
// same tagged result shape. Lifecycle events go to a caller-supplied
// Observer, and Health derives a status from live breaker state and metrics.
package engine
