package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common validation errors
var (
	ErrEmptyStatementID     = errors.New("statement ID cannot be empty")
	ErrEmptyStatementUserID = errors.New("statement user ID cannot be empty")
	ErrEmptyOperationType   = errors.New("operation type cannot be empty")
	ErrEmptyDescription     = errors.New("description cannot be empty")
)

// OperationType labels the kind of transaction a statement records.
// It is an open enumeration: balance semantics are defined for deposits
// and withdrawals, but unknown labels are accepted and treated as debits.
type OperationType string

const (
	// OperationDeposit credits the user's balance.
	OperationDeposit OperationType = "deposit"

	// OperationWithdraw debits the user's balance and is the only type
	// guarded by the insufficient-funds check.
	OperationWithdraw OperationType = "withdraw"
)

// Statement is one immutable transaction record belonging to a user.
// Statements are append-only: they are never mutated or deleted, and
// the user's balance is always derived by folding over them.
type Statement struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Type        OperationType   `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewStatement creates a new Statement for the given user.
// It generates a new UUID for the statement ID and sets the timestamps.
// Returns an error if validation fails.
func NewStatement(
	userID uuid.UUID,
	opType OperationType,
	amount decimal.Decimal,
	description string,
) (*Statement, error) {
	now := time.Now().UTC()
	statement := &Statement{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        opType,
		Amount:      amount,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := statement.Validate(); err != nil {
		return nil, err
	}

	return statement, nil
}

// Validate checks if the Statement has valid data.
// Returns an error if any field fails validation.
func (s *Statement) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyStatementID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptyStatementUserID
	}

	if strings.TrimSpace(string(s.Type)) == "" {
		return ErrEmptyOperationType
	}

	if !s.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if strings.TrimSpace(s.Description) == "" {
		return ErrEmptyDescription
	}

	return nil
}

// SignedAmount returns the statement's contribution to the balance fold:
// deposits count positive, every other operation type counts negative.
func (s *Statement) SignedAmount() decimal.Decimal {
	if s.Type == OperationDeposit {
		return s.Amount
	}
	return s.Amount.Neg()
}

// BalanceOf folds the given statements into a net balance.
// The result is exactly the sum of deposit amounts minus all other amounts;
// no cached counter is consulted.
func BalanceOf(statements []*Statement) decimal.Decimal {
	balance := decimal.Zero
	for _, s := range statements {
		balance = balance.Add(s.SignedAmount())
	}
	return balance
}
