package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{"ValidationFailed wraps ErrValidation", ValidationFailed("email", "email must not be empty"), ErrValidation, true},
		{"DuplicateEmail wraps ErrDuplicateEmail", DuplicateEmail("a@b.com"), ErrDuplicateEmail, true},
		{"NotFound wraps ErrNotFound", NotFound("user", 42), ErrNotFound, true},
		{"InvalidTransition wraps ErrInvalidTransition", InvalidTransition("approved", "rejected"), ErrInvalidTransition, true},
		{"Persistence wraps ErrPersistence", Persistence("creating user", errors.New("disk full")), ErrPersistence, true},
		{"InvalidCredentials wraps ErrInvalidCredentials", InvalidCredentials(), ErrInvalidCredentials, true},
		{"NotFound does not match ErrValidation", NotFound("user", 42), ErrValidation, false},
		{"DuplicateEmail does not match ErrNotFound", DuplicateEmail("a@b.com"), ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{"NotFound includes resource and id", NotFound("user", 42), "user not found with id 42"},
		{"ValidationFailed uses the given message", ValidationFailed("email", "email must not be empty"), "email must not be empty"},
		{"DuplicateEmail includes the email", DuplicateEmail("a@b.com"), "email a@b.com is already registered"},
		{"InvalidTransition names both states", InvalidTransition("approved", "rejected"), "cannot transition friendship request from approved to rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestInvalidCredentialsCarriesNoHint(t *testing.T) {
	err := InvalidCredentials()
	if err.Error() != "invalid email or password" {
		t.Errorf("Error() = %q, must not reveal which credential failed", err.Error())
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("firstName", "first name must not be empty")
	if err.Field != "firstName" {
		t.Errorf("Field = %q, want %q", err.Field, "firstName")
	}
}
