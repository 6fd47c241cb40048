package service

import (
	"fmt"

	"github.com/rohmanhakim/sitefetch/pkg/failure"
)

type ServiceErrorCause string

const (
	ErrCauseNotCached ServiceErrorCause = "not cached"
)

type ServiceError struct {
	Message string
	Cause   ServiceErrorCause
	URL     string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error: %s: %s", e.Cause, e.Message)
}

func (e *ServiceError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func (e *ServiceError) IsRetryable() bool {
	return false
}

// IsNotCached reports whether err means the operation required a prior fetch.
func IsNotCached(err failure.ClassifiedError) bool {
	svcErr, ok := err.(*ServiceError)
	return ok && svcErr.Cause == ErrCauseNotCached
}
