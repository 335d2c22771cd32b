package service

import (
	"errors"
	"fmt"

	"github.com/ledgercore/fin-ledger/internal/store"
)

// Sentinel errors forming the use-case failure taxonomy. The boundary layer
// translates these 1:1 into user-visible statuses.
var (
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a create-user with an email already on file.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrIncorrectEmailOrPassword covers both an unknown email and a wrong
	// password. One error kind for both prevents account enumeration.
	ErrIncorrectEmailOrPassword = errors.New("incorrect email or password")

	// ErrInsufficientFunds indicates a withdrawal amount exceeds the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStatementNotFound indicates the statement does not exist, or exists
	// but is not owned by the requesting user.
	ErrStatementNotFound = errors.New("statement not found")
)

// ServiceError wraps errors from a use case with operation context.
type ServiceError struct {
	// Operation is the use case that failed (e.g., "create_statement")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// newServiceError maps store-level sentinels to their service-level
// equivalents and returns other errors wrapped with operation context.
// Service-level sentinels pass through untouched so callers can switch on them.
func newServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrUserAlreadyExists),
		errors.Is(err, ErrIncorrectEmailOrPassword),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrStatementNotFound):
		return err
	case errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrEmailExists):
		return ErrUserAlreadyExists
	case errors.Is(err, store.ErrStatementNotFound):
		return ErrStatementNotFound
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
