// Package backoff provides exponential delay calculation with an arbitrary
// multiplier, an absolute cap, optional full jitter, and a context-aware
// sleep used between retry attempts.
package backoff
