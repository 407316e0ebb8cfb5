package apperr

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed or missing input. InvalidIDs lists the
// card definition ids that failed to resolve, when the failure is about a
// card selection.
type ValidationError struct {
	Message    string
	InvalidIDs []int64
}

func (e *ValidationError) Error() string {
	if len(e.InvalidIDs) == 0 {
		return e.Message
	}
	ids := make([]string, len(e.InvalidIDs))
	for i, id := range e.InvalidIDs {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(ids, ", "))
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError reports a missing entity. The message never says whether the
// entity exists under another owner.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// ForbiddenError reports an authenticated principal acting on something it does not own.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// UnauthenticatedError reports a missing, invalid or expired credential.
type UnauthenticatedError struct {
	Message string
}

func (e *UnauthenticatedError) Error() string { return e.Message }

// UnsupportedTableError reports a descriptor naming a card definition table
// the store does not implement.
type UnsupportedTableError struct {
	TableName string
}

func (e *UnsupportedTableError) Error() string {
	return fmt.Sprintf("unsupported card type %q", e.TableName)
}

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

func Forbidden(format string, args ...any) error {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}
