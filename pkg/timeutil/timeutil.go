package timeutil

import (
	"math"
	"math/rand"
	"time"
)

// DurationPtr is a helper function to create a pointer to a time.Duration
func DurationPtr(d time.Duration) *time.Duration {
	return &d
}

// ExponentialBackoffDelay computes the delay before the next retry attempt.
// The first attempt (attempt=1) waits the initial duration; every subsequent
// attempt multiplies the previous delay, capped at the configured maximum.
// A uniformly distributed jitter in [0, jitter) is added on top.
func ExponentialBackoffDelay(
	attempt int,
	jitter time.Duration,
	rng rand.Rand,
	param BackoffParam,
) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	exponent := float64(attempt - 1)
	delay := float64(param.InitialDuration()) * math.Pow(param.Multiplier(), exponent)
	if delay > float64(param.MaxDuration()) {
		delay = float64(param.MaxDuration())
	}

	if jitter > 0 {
		delay += float64(rng.Int63n(int64(jitter)))
	}

	return time.Duration(delay)
}

// FormatCaptureTime renders a capture timestamp for human-readable
// descriptions (resource listings, CLI output).
func FormatCaptureTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
