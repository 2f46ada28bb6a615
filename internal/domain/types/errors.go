package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenGenerateFail  = errors.New("failed to generate token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
)

// ValidationError carries field-scoped validation failures produced past the
// dto boundary (password policy, old-password check). Handlers map it to the
// same response shape as structural dto validation.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
	return e
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}
