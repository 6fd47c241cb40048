package retry_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/sitefetch/pkg/failure"
	"github.com/rohmanhakim/sitefetch/pkg/retry"
	"github.com/rohmanhakim/sitefetch/pkg/timeutil"
)

type stubError struct {
	retryable bool
}

func (e *stubError) Error() string {
	return "stub error"
}

func (e *stubError) Severity() failure.Severity {
	if e.retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func fastParam(maxAttempts int) retry.RetryParam {
	return retry.NewRetryParam(
		time.Millisecond,
		time.Millisecond,
		42,
		maxAttempts,
		timeutil.NewBackoffParam(time.Millisecond, 2.0, 5*time.Millisecond),
	)
}

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0

	result, err := retry.Retry(fastParam(3), func() (string, failure.ClassifiedError) {
		calls++
		return "ok", nil
	})

	require.Nil(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestRetry_SucceedsAfterRetryableFailures(t *testing.T) {
	calls := 0

	result, err := retry.Retry(fastParam(5), func() (int, failure.ClassifiedError) {
		calls++
		if calls < 3 {
			return 0, &stubError{retryable: true}
		}
		return 99, nil
	})

	require.Nil(t, err)
	assert.Equal(t, 99, result)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnNonRetryableError(t *testing.T) {
	calls := 0

	_, err := retry.Retry(fastParam(5), func() (int, failure.ClassifiedError) {
		calls++
		return 0, &stubError{retryable: false}
	})

	require.NotNil(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, failure.SeverityFatal, err.Severity())
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0

	_, err := retry.Retry(fastParam(3), func() (int, failure.ClassifiedError) {
		calls++
		return 0, &stubError{retryable: true}
	})

	require.NotNil(t, err)
	assert.Equal(t, 3, calls)

	var retryErr *retry.RetryError
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, retry.ErrExhaustedAttempts, retryErr.Cause)
}

func TestRetry_RejectsZeroAttempts(t *testing.T) {
	_, err := retry.Retry(fastParam(0), func() (int, failure.ClassifiedError) {
		t.Fatal("fn must not be called")
		return 0, nil
	})

	require.NotNil(t, err)

	var retryErr *retry.RetryError
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, retry.ErrZeroAttempt, retryErr.Cause)
}

func TestRetryError_Is(t *testing.T) {
	err := &retry.RetryError{Message: "boom", Cause: retry.ErrExhaustedAttempts, Retryable: true}
	assert.True(t, errors.Is(err, &retry.RetryError{}))
}
