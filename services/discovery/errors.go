package discovery

import (
	"errors"
	"fmt"
)

// Error codes reported by the discovery and booking engines.
const (
	CodeInsufficientCriteria = "insufficientCriteria"
	CodeBackendUnavailable   = "backendUnavailable"
	CodeItemUnavailable      = "itemUnavailable"
)

var (
	// ErrInsufficientCriteria means the turn carried no usable type, colour or name.
	ErrInsufficientCriteria = errors.New("no search criteria provided")
	// ErrBackendUnavailable means a catalog call failed or timed out.
	ErrBackendUnavailable = errors.New("commerce backend unavailable")
	// ErrItemUnavailable means the item under the cursor vanished from the catalog.
	ErrItemUnavailable = errors.New("item no longer available")
)

// EngineError carries a stable code plus the underlying cause.
type EngineError struct {
	Code    string
	Message string
	Cause   error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

func newBackendError(op string, cause error) error {
	return &EngineError{
		Code:    CodeBackendUnavailable,
		Message: op,
		Cause:   fmt.Errorf("%w: %w", ErrBackendUnavailable, cause),
	}
}
