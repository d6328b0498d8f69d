package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the service and moderation layers. Handlers map
// these to HTTP statuses with errors.Is; everything else is treated as an
// internal failure of the current request.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
)

// ErrApprovedImmutable is raised when an author edits APPROVED content. It
// matches ErrForbidden under errors.Is but keeps its own message, since the
// caller did own the item and should be told why the edit is refused.
var ErrApprovedImmutable = fmt.Errorf("approved content cannot be edited: %w", ErrForbidden)

// ValidationError wraps ErrValidation with a field-level detail message.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
