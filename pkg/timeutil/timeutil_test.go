package timeutil_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rohmanhakim/sitefetch/pkg/timeutil"
)

func TestExponentialBackoffDelay(t *testing.T) {
	param := timeutil.NewBackoffParam(time.Second, 2.0, 10*time.Second)
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name     string
		attempt  int
		expected time.Duration
	}{
		{name: "first attempt waits initial duration", attempt: 1, expected: time.Second},
		{name: "second attempt doubles", attempt: 2, expected: 2 * time.Second},
		{name: "third attempt doubles again", attempt: 3, expected: 4 * time.Second},
		{name: "growth is capped", attempt: 10, expected: 10 * time.Second},
		{name: "attempt below one is clamped", attempt: 0, expected: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Zero jitter keeps the delay deterministic.
			delay := timeutil.ExponentialBackoffDelay(tt.attempt, 0, *rng, param)
			assert.Equal(t, tt.expected, delay)
		})
	}
}

func TestExponentialBackoffDelay_JitterStaysInRange(t *testing.T) {
	param := timeutil.NewBackoffParam(time.Second, 2.0, 10*time.Second)
	jitter := 500 * time.Millisecond

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		delay := timeutil.ExponentialBackoffDelay(1, jitter, *rng, param)
		assert.GreaterOrEqual(t, delay, time.Second)
		assert.Less(t, delay, time.Second+jitter)
	}
}

func TestFormatCaptureTime(t *testing.T) {
	captured := time.Date(2026, 3, 14, 9, 30, 15, 0, time.UTC)
	assert.Equal(t, "2026-03-14 09:30:15 UTC", timeutil.FormatCaptureTime(captured))

	// Non-UTC inputs are normalized before formatting.
	loc := time.FixedZone("UTC+7", 7*60*60)
	assert.Equal(t,
		"2026-03-14 02:30:15 UTC",
		timeutil.FormatCaptureTime(time.Date(2026, 3, 14, 9, 30, 15, 0, loc)),
	)
}
