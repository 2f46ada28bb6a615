package handler

import (
	"errors"
	"net/http"

	t "github.com/aslanbek-j/accounts-service/internal/domain/types"
)

func errorResponse(w http.ResponseWriter, status int, message any) {
	env := envelope{"error": message}

	// Fall back to a bare 500 if even the error body cannot be written.
	if err := writeJSON(w, status, env, nil); err != nil {
		w.WriteHeader(500)
	}
}

// failedValidationResponse returns 422 Unprocessable Entity: the request was
// syntactically fine but its content cannot be processed, and repeating it
// unchanged will fail the same way.
func failedValidationResponse(w http.ResponseWriter, errors map[string]string) {
	errorResponse(w, http.StatusUnprocessableEntity, errors)
}

func badRequestResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusBadRequest, message)
}

func internalErrorResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusInternalServerError, message)
}

// GetCode maps domain errors to HTTP status codes.
func GetCode(err error) int {
	switch {
	case IsOneOf(err, t.ErrEmailTaken, t.ErrUsernameTaken):
		return http.StatusConflict
	case IsOneOf(err, t.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case IsOneOf(err, t.ErrInvalidToken, t.ErrExpiredToken):
		return http.StatusBadRequest
	case IsOneOf(err, t.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// serviceErrorResponse maps a service error to its response: field-scoped
// validation failures keep their 422 shape, everything else goes through
// GetCode.
func serviceErrorResponse(w http.ResponseWriter, err error) {
	var verr *t.ValidationError
	if errors.As(err, &verr) {
		failedValidationResponse(w, verr.Fields)
		return
	}

	errorResponse(w, GetCode(err), err.Error())
}
