package crawler

import (
	"fmt"

	"github.com/rohmanhakim/sitefetch/pkg/failure"
)

type CaptureErrorCause string

const (
	ErrCauseStagingUnavailable CaptureErrorCause = "staging directory unavailable"
	ErrCauseSpawnFailure       CaptureErrorCause = "capture tool could not be started"
	ErrCauseToolFailure        CaptureErrorCause = "capture tool failed"
	ErrCauseTimeout            CaptureErrorCause = "timeout"
	ErrCauseCancelled          CaptureErrorCause = "cancelled"
	ErrCauseNoOutput           CaptureErrorCause = "no output"
	ErrCauseNetworkFailure     CaptureErrorCause = "network issues"
	ErrCauseHTTPStatus         CaptureErrorCause = "unexpected HTTP status"
	ErrCauseContentTypeInvalid CaptureErrorCause = "unsupported content type"
	ErrCauseConversionFailure  CaptureErrorCause = "markdown conversion failed"
)

type CaptureError struct {
	Message   string
	Retryable bool
	Cause     CaptureErrorCause
	URL       string
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture error: %s", e.Cause)
}

func (e *CaptureError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *CaptureError) IsRetryable() bool {
	return e.Retryable
}
