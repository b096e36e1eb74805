package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelay_ExponentialGrowth(t *testing.T) {
	base := 100 * time.Millisecond

	assert.Equal(t, 100*time.Millisecond, Delay(base, 2.0, 0, 0))
	assert.Equal(t, 200*time.Millisecond, Delay(base, 2.0, 1, 0))
	assert.Equal(t, 400*time.Millisecond, Delay(base, 2.0, 2, 0))
	assert.Equal(t, 800*time.Millisecond, Delay(base, 2.0, 3, 0))
}

func TestDelay_CappedAtMax(t *testing.T) {
	base := 100 * time.Millisecond
	max := 300 * time.Millisecond

	assert.Equal(t, 100*time.Millisecond, Delay(base, 2.0, 0, max))
	assert.Equal(t, 200*time.Millisecond, Delay(base, 2.0, 1, max))
	assert.Equal(t, max, Delay(base, 2.0, 2, max))
	assert.Equal(t, max, Delay(base, 2.0, 10, max))
}

func TestDelay_NonDecreasing(t *testing.T) {
	prev := time.Duration(0)

	for attempt := 0; attempt < 20; attempt++ {
		delay := Delay(50*time.Millisecond, 1.5, attempt, 2*time.Second)
		assert.GreaterOrEqual(t, delay, prev, "attempt %d", attempt)
		prev = delay
	}
}

func TestDelay_EdgeCases(t *testing.T) {
	assert.Equal(t, time.Duration(0), Delay(0, 2.0, 3, 0))
	assert.Equal(t, time.Duration(0), Delay(-time.Second, 2.0, 3, 0))

	// Negative attempts are treated as 0.
	assert.Equal(t, time.Second, Delay(time.Second, 2.0, -5, 0))

	// Multipliers below 1 are treated as 1 (constant delay).
	assert.Equal(t, time.Second, Delay(time.Second, 0.5, 4, 0))

	// Huge attempts do not overflow.
	assert.Equal(t, time.Minute, Delay(time.Second, 2.0, 500, time.Minute))
	assert.Positive(t, Delay(time.Second, 2.0, 500, 0))
}

func TestFullJitter_Range(t *testing.T) {
	delay := 100 * time.Millisecond

	for i := 0; i < 50; i++ {
		jittered := FullJitter(delay)
		assert.GreaterOrEqual(t, jittered, time.Duration(0))
		assert.Less(t, jittered, delay)
	}
}

func TestFullJitter_ZeroDelay(t *testing.T) {
	assert.Equal(t, time.Duration(0), FullJitter(0))
	assert.Equal(t, time.Duration(0), FullJitter(-time.Second))
}

func TestDelayWithJitter_WithinBounds(t *testing.T) {
	for attempt := 0; attempt < 5; attempt++ {
		jittered := DelayWithJitter(100*time.Millisecond, 2.0, attempt, time.Second)
		assert.Less(t, jittered, time.Second)
	}
}

func TestSleepWithContext_Completes(t *testing.T) {
	start := time.Now()
	err := SleepWithContext(context.Background(), 20*time.Millisecond)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSleepWithContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := SleepWithContext(ctx, 5*time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSleepWithContext_ZeroDuration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Zero and negative durations return immediately even with a dead context.
	assert.NoError(t, SleepWithContext(ctx, 0))
	assert.NoError(t, SleepWithContext(ctx, -time.Second))
}
