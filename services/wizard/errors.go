package wizard

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a wizard session is missing or expired.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// FlowError is a user-facing booking flow error.
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError reports a local validation failure. Never reaches the
// network.
func NewValidationError(msg string) error {
	return &FlowError{Code: "validationError", Message: msg}
}

// NewStateError reports an operation attempted from the wrong wizard state.
func NewStateError(msg string) error {
	return &FlowError{Code: "stateError", Message: msg}
}

// NewBackendError wraps a capability failure in a user-facing message. The
// wizard step is preserved so the user can retry.
func NewBackendError(msg string) error {
	return &FlowError{Code: "backendError", Message: msg}
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var fe *FlowError
	return errors.As(err, &fe) && fe.Code == "validationError"
}

// IsState reports whether err is a wrong-state failure.
func IsState(err error) bool {
	var fe *FlowError
	return errors.As(err, &fe) && fe.Code == "stateError"
}
