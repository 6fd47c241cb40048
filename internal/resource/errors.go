package resource

import (
	"fmt"

	"github.com/rohmanhakim/sitefetch/pkg/failure"
)

type AddressErrorCause string

const (
	ErrCauseSchemeMismatch      AddressErrorCause = "scheme mismatch"
	ErrCauseMalformedIdentifier AddressErrorCause = "malformed identifier"
)

type AddressError struct {
	Message    string
	Cause      AddressErrorCause
	Identifier string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("resource address error: %s", e.Cause)
}

// Malformed input never becomes valid by itself.
func (e *AddressError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func (e *AddressError) IsRetryable() bool {
	return false
}
