package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollector_Counters(t *testing.T) {
	c := NewCollector(10)

	c.Record(100*time.Millisecond, true)
	c.Record(200*time.Millisecond, false)
	c.Record(300*time.Millisecond, true)

	snapshot := c.Snapshot()

	assert.Equal(t, uint64(3), snapshot.TotalExecutions)
	assert.Equal(t, uint64(2), snapshot.SuccessfulExecutions)
	assert.Equal(t, uint64(1), snapshot.FailedExecutions)
	assert.InDelta(t, 1.0/3.0, snapshot.ErrorRate, 1e-9)
	assert.Equal(t, 3, snapshot.WindowCount)
}

func TestCollector_RollingAverage(t *testing.T) {
	c := NewCollector(10)

	c.Record(100*time.Millisecond, true)
	c.Record(200*time.Millisecond, true)
	c.Record(300*time.Millisecond, true)

	assert.Equal(t, 200*time.Millisecond, c.Snapshot().AverageExecutionTime)
}

func TestCollector_WindowEviction(t *testing.T) {
	c := NewCollector(3)

	// Fill the window, then push two more samples so the oldest two drop.
	for _, d := range []time.Duration{10, 20, 30, 40, 50} {
		c.Record(d*time.Millisecond, true)
	}

	snapshot := c.Snapshot()

	assert.Equal(t, uint64(5), snapshot.TotalExecutions)
	assert.Equal(t, 3, snapshot.WindowCount)
	// Average over the most recent window {30, 40, 50}.
	assert.Equal(t, 40*time.Millisecond, snapshot.AverageExecutionTime)
}

func TestCollector_AverageBeforeWindowFull(t *testing.T) {
	c := NewCollector(100)

	c.Record(50*time.Millisecond, true)

	snapshot := c.Snapshot()
	assert.Equal(t, 50*time.Millisecond, snapshot.AverageExecutionTime)
	assert.Equal(t, 1, snapshot.WindowCount)
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector(10)

	c.Record(100*time.Millisecond, false)
	c.Record(200*time.Millisecond, true)
	c.Reset()

	snapshot := c.Snapshot()

	assert.Equal(t, uint64(0), snapshot.TotalExecutions)
	assert.Equal(t, uint64(0), snapshot.SuccessfulExecutions)
	assert.Equal(t, uint64(0), snapshot.FailedExecutions)
	assert.Equal(t, time.Duration(0), snapshot.AverageExecutionTime)
	assert.Zero(t, snapshot.ErrorRate)
	assert.Zero(t, snapshot.WindowCount)
}

func TestCollector_DefaultWindowSize(t *testing.T) {
	c := NewCollector(0)

	for i := 0; i < DefaultWindowSize+50; i++ {
		c.Record(time.Millisecond, true)
	}

	assert.Equal(t, DefaultWindowSize, c.Snapshot().WindowCount)
}

func TestCollector_ConcurrentRecord(t *testing.T) {
	c := NewCollector(50)

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				c.Record(time.Millisecond, j%2 == 0)
			}
		}()
	}

	wg.Wait()

	snapshot := c.Snapshot()
	assert.Equal(t, uint64(1000), snapshot.TotalExecutions)
	assert.Equal(t, uint64(500), snapshot.SuccessfulExecutions)
	assert.Equal(t, uint64(500), snapshot.FailedExecutions)
	assert.InDelta(t, 0.5, snapshot.ErrorRate, 1e-9)
}
