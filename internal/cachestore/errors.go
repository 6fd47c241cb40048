package cachestore

import (
	"fmt"

	"github.com/rohmanhakim/sitefetch/pkg/failure"
)

type StoreErrorCause string

const (
	ErrCauseRootUnavailable StoreErrorCause = "cache root unavailable"
	ErrCauseWriteFailure    StoreErrorCause = "write failed"
	ErrCauseReadFailure     StoreErrorCause = "read failed"
	ErrCauseDeleteFailure   StoreErrorCause = "delete failed"
	ErrCauseNotFound        StoreErrorCause = "blob not found"
)

type StoreError struct {
	Message   string
	Retryable bool
	Cause     StoreErrorCause
	Key       string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("cache store error: %s", e.Cause)
}

func (e *StoreError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *StoreError) IsRetryable() bool {
	return e.Retryable
}

// IsNotFound reports whether err is a StoreError carrying the not-found cause.
func IsNotFound(err failure.ClassifiedError) bool {
	storeErr, ok := err.(*StoreError)
	return ok && storeErr.Cause == ErrCauseNotFound
}
