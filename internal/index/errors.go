package index

import (
	"fmt"

	"github.com/rohmanhakim/sitefetch/pkg/failure"
)

type IndexErrorCause string

const (
	ErrCauseCorruptDocument IndexErrorCause = "metadata document is corrupt"
	ErrCauseReadFailure     IndexErrorCause = "read failed"
	ErrCauseWriteFailure    IndexErrorCause = "write failed"
)

type IndexError struct {
	Message   string
	Retryable bool
	Cause     IndexErrorCause
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("metadata index error: %s", e.Cause)
}

func (e *IndexError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *IndexError) IsRetryable() bool {
	return e.Retryable
}

// IsCorrupt reports whether err signals a present but unparseable document.
func IsCorrupt(err failure.ClassifiedError) bool {
	idxErr, ok := err.(*IndexError)
	return ok && idxErr.Cause == ErrCauseCorruptDocument
}
