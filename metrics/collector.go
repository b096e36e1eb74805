package metrics

import (
	"sync"
	"time"
)

// DefaultWindowSize is the rolling window capacity used when none is given.
const DefaultWindowSize = 100

// Snapshot is an immutable view of a Collector taken at one point in time.
type Snapshot struct {
	TotalExecutions      uint64        `json:"totalExecutions"`
	SuccessfulExecutions uint64        `json:"successfulExecutions"`
	FailedExecutions     uint64        `json:"failedExecutions"`
	AverageExecutionTime time.Duration `json:"averageExecutionTime"`
	ErrorRate            float64       `json:"errorRate"`
	WindowCount          int           `json:"windowCount"`
}

// Collector accumulates execution statistics for one agent. All methods are
// safe for concurrent use; a single mutex is the serialization point.
type Collector struct {
	mu sync.Mutex

	total     uint64
	successes uint64
	failures  uint64

	// window is a fixed-capacity ring of the most recent durations.
	window []time.Duration
	head   int
	count  int

	average   time.Duration
	errorRate float64
}

// NewCollector creates a collector with the given rolling window capacity.
// Non-positive sizes fall back to DefaultWindowSize.
func NewCollector(windowSize int) *Collector {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}

	return &Collector{window: make([]time.Duration, windowSize)}
}

// Record registers one completed execution. The duration joins the rolling
// window (dropping the oldest sample when full), and the average and error
// rate are recomputed over the current window and totals.
func (c *Collector) Record(duration time.Duration, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++

	if success {
		c.successes++
	} else {
		c.failures++
	}

	c.window[c.head] = duration
	c.head = (c.head + 1) % len(c.window)

	if c.count < len(c.window) {
		c.count++
	}

	var sum time.Duration
	for i := 0; i < c.count; i++ {
		sum += c.window[i]
	}

	c.average = sum / time.Duration(c.count)
	c.errorRate = float64(c.failures) / float64(c.total)
}

// Snapshot returns an immutable copy of the current statistics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		TotalExecutions:      c.total,
		SuccessfulExecutions: c.successes,
		FailedExecutions:     c.failures,
		AverageExecutionTime: c.average,
		ErrorRate:            c.errorRate,
		WindowCount:          c.count,
	}
}

// Reset zeroes all counters and clears the window.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total = 0
	c.successes = 0
	c.failures = 0
	c.head = 0
	c.count = 0
	c.average = 0
	c.errorRate = 0
}
