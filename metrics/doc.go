// Package metrics collects rolling execution statistics per agent: total,
// success and failure counts, a fixed-capacity window of recent durations,
// the rolling average over that window, and the error rate.
package metrics
