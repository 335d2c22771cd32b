package api

import (
	"errors"
	"net/http"

	"github.com/ledgercore/fin-ledger/internal/domain"
	"github.com/ledgercore/fin-ledger/internal/service"
	"github.com/ledgercore/fin-ledger/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, service.ErrIncorrectEmailOrPassword),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Not found errors. A statement owned by another user maps here as
	// well, so the response never reveals that it exists.
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrStatementNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusConflict

	// Business rule rejections
	case errors.Is(err, service.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrIncorrectEmailOrPassword):
		return "Incorrect email or password"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, service.ErrStatementNotFound):
		return "Statement operation not found"

	case errors.Is(err, service.ErrUserAlreadyExists):
		return "User already exists"

	case errors.Is(err, service.ErrInsufficientFunds):
		return "Insufficient funds"

	case errors.Is(err, domain.ErrInvalidAmount):
		return "Invalid amount"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// RespondWithServiceError writes an error response for a failed use case,
// mapping the error to its status code and safe message and logging the
// underlying cause.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
