package orchestrator

import (
	"fmt"

	"github.com/rohmanhakim/sitefetch/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseInvalidURL    FetchErrorCause = "invalid URL"
	ErrCauseKeyDerivation FetchErrorCause = "key derivation failed"
)

type FetchError struct {
	Message   string
	Retryable bool
	Cause     FetchErrorCause
	URL       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error: %s: %s", e.Cause, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// IsInvalidURL reports whether err rejected the input before any store was touched.
func IsInvalidURL(err failure.ClassifiedError) bool {
	fetchErr, ok := err.(*FetchError)
	return ok && fetchErr.Cause == ErrCauseInvalidURL
}
