package booking

import (
	"errors"
	"fmt"

	"closetcircle/services/discovery"
)

const (
	CodeNoItemSelected  = "noItemSelected"
	CodeNoIdentity      = "noIdentity"
	CodeCartUnavailable = "cartUnavailable"
)

var (
	ErrNoItemSelected  = errors.New("no item selected")
	ErrNoIdentity      = errors.New("no user identity")
	ErrCartUnavailable = errors.New("no cart transaction available")
	// ErrBackendUnavailable is shared with discovery so callers can test a single sentinel.
	ErrBackendUnavailable = discovery.ErrBackendUnavailable
)

// BookingError reports an unmet booking precondition or a failed backend step.
type BookingError struct {
	Code    string
	Message string
	Cause   error
}

func (e *BookingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.Cause
}

func newBookingError(code, msg string, cause error) error {
	return &BookingError{Code: code, Message: msg, Cause: cause}
}

func newBackendError(step string, cause error) error {
	return &BookingError{
		Code:    discovery.CodeBackendUnavailable,
		Message: step,
		Cause:   fmt.Errorf("%w: %w", ErrBackendUnavailable, cause),
	}
}
