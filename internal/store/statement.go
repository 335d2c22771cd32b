package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgercore/fin-ledger/internal/domain"
)

// StatementStore defines the interface for statement data persistence.
// Statements are append-only: there is deliberately no update or delete.
type StatementStore interface {
	// Create appends a new statement to the store.
	// Returns ErrInvalidEntity if the referenced user does not exist.
	// Returns validation errors from the domain Statement if data is invalid.
	Create(ctx context.Context, statement *domain.Statement) error

	// GetByID retrieves a statement by its unique ID, scoped to the owning user.
	// Returns ErrStatementNotFound if the statement does not exist or is
	// owned by a different user.
	GetByID(ctx context.Context, userID, statementID uuid.UUID) (*domain.Statement, error)

	// ListByUser retrieves all statements for a user in insertion order,
	// oldest first. Returns an empty slice when the user has no statements.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Statement, error)

	// BalanceByUser derives the user's balance by folding over their full
	// statement history: deposits add, every other operation type subtracts.
	BalanceByUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)

	// WithTx returns a new StatementStore instance that uses the provided transaction.
	// This allows the balance check and the append to commit as one atomic unit.
	WithTx(tx *sql.Tx) StatementStore
}
