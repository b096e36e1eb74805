package backoff

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	mrand "math/rand/v2"
	"time"
)

// Delay calculates the retry delay for the given attempt number as
// initial * multiplier^attempt, capped at max. The result is non-decreasing
// across attempts for any multiplier >= 1; multipliers below 1 are treated
// as 1. Negative attempts are treated as 0. A max of 0 or less means no cap.
func Delay(initial time.Duration, multiplier float64, attempt int, max time.Duration) time.Duration {
	if initial <= 0 {
		return 0
	}

	if attempt < 0 {
		attempt = 0
	}

	if multiplier < 1 {
		multiplier = 1
	}

	delay := float64(initial) * math.Pow(multiplier, float64(attempt))

	if max > 0 && delay >= float64(max) {
		return max
	}

	if delay >= float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(delay)
}

// FullJitter returns a random duration in the range [0, delay).
// Uses crypto/rand for secure randomness, falling back to math/rand if crypto
// fails. Returns 0 for zero or negative delays.
func FullJitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(delay)))
	if err != nil {
		return time.Duration(cryptoFallbackRand(int64(delay)))
	}

	return time.Duration(n.Int64())
}

// fallbackDivisor is used when crypto/rand fails completely.
const fallbackDivisor = 2

// cryptoFallbackRand provides a fallback random number generator when
// crypto/rand fails. It first attempts to seed a math/rand PRNG via
// crypto/rand (rand.Read uses a different code path than rand.Int and may
// succeed independently); if even seeding fails it returns a deterministic
// midpoint so backoff jitter never stalls.
func cryptoFallbackRand(maxValue int64) int64 {
	var seed [8]byte

	_, err := rand.Read(seed[:])
	if err != nil {
		return maxValue / fallbackDivisor
	}

	rng := mrand.New(
		mrand.NewPCG(binary.LittleEndian.Uint64(seed[:]), 0),
	) // #nosec G404 -- Fallback when crypto/rand fails

	return rng.Int64N(maxValue)
}

// DelayWithJitter combines Delay with full jitter, returning a random
// duration in [0, Delay(initial, multiplier, attempt, max)). This implements
// the "Full Jitter" strategy recommended by AWS.
func DelayWithJitter(initial time.Duration, multiplier float64, attempt int, max time.Duration) time.Duration {
	return FullJitter(Delay(initial, multiplier, attempt, max))
}

// SleepWithContext sleeps for the specified duration but respects context
// cancellation. Returns nil if the sleep completes, or an error if the
// context is cancelled. Returns immediately (nil) for zero or negative
// durations.
func SleepWithContext(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return nil
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context done: %w", ctx.Err())
	}
}
