// Package apperror defines the error kinds the service layer reports.
// Callers match with errors.Is against the sentinel kinds; the HTTP layer
// translates them into status codes and the service never formats
// user-facing strings.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPersistence        = errors.New("persistence failure")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AppError couples a sentinel kind with context about the failing entity.
type AppError struct {
	Err     error  // one of the sentinel kinds above
	Message string // human-readable detail
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationFailed reports an entity field violating an invariant.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// DuplicateEmail reports a sign-up or profile update colliding with an
// existing account.
func DuplicateEmail(email string) *AppError {
	return &AppError{
		Err:     ErrDuplicateEmail,
		Message: fmt.Sprintf("email %s is already registered", email),
	}
}

// NotFound reports a missing user, friendship or message.
func NotFound(resource string, id any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %v", resource, id),
	}
}

// InvalidTransition reports an approve/reject attempt on a friendship
// request that is no longer pending.
func InvalidTransition(from, to string) *AppError {
	return &AppError{
		Err:     ErrInvalidTransition,
		Message: fmt.Sprintf("cannot transition friendship request from %s to %s", from, to),
	}
}

// Persistence wraps an underlying store failure.
func Persistence(op string, err error) *AppError {
	return &AppError{
		Err:     ErrPersistence,
		Message: fmt.Sprintf("%s: %v", op, err),
	}
}

// InvalidCredentials reports a login mismatch. The message carries no hint
// about which of email or password was wrong.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "invalid email or password",
	}
}
