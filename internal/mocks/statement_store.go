package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgercore/fin-ledger/internal/domain"
	"github.com/ledgercore/fin-ledger/internal/store"
)

// MockStatementStore implements store.StatementStore for testing.
// It doubles as the in-memory statement store: an append-only ordered slice
// plus a lookup map, so listings preserve insertion order.
type MockStatementStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, statement *domain.Statement) error
	GetByIDFn       func(ctx context.Context, userID, statementID uuid.UUID) (*domain.Statement, error)
	ListByUserFn    func(ctx context.Context, userID uuid.UUID) ([]*domain.Statement, error)
	BalanceByUserFn func(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)

	// Data for default implementation
	mu         sync.RWMutex
	Statements []*domain.Statement
	byID       map[uuid.UUID]*domain.Statement

	// Errors injected into the default implementation
	CreateError error
	ListError   error
}

// NewMockStatementStore creates a new mock store with initialized defaults.
func NewMockStatementStore() *MockStatementStore {
	return &MockStatementStore{
		byID: make(map[uuid.UUID]*domain.Statement),
	}
}

// Ensure MockStatementStore implements store.StatementStore interface
var _ store.StatementStore = (*MockStatementStore)(nil)

// Create implements the StatementStore interface.
func (m *MockStatementStore) Create(ctx context.Context, statement *domain.Statement) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, statement)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if err := statement.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Statements = append(m.Statements, statement)
	m.byID[statement.ID] = statement
	return nil
}

// GetByID implements the StatementStore interface. A statement owned by a
// different user is reported as not found, never as forbidden.
func (m *MockStatementStore) GetByID(
	ctx context.Context,
	userID, statementID uuid.UUID,
) (*domain.Statement, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, userID, statementID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	statement, exists := m.byID[statementID]
	if !exists || statement.UserID != userID {
		return nil, store.ErrStatementNotFound
	}

	return statement, nil
}

// ListByUser implements the StatementStore interface.
func (m *MockStatementStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Statement, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	statements := []*domain.Statement{}
	for _, statement := range m.Statements {
		if statement.UserID == userID {
			statements = append(statements, statement)
		}
	}

	return statements, nil
}

// BalanceByUser implements the StatementStore interface by folding over the
// user's full history; no running counter is kept anywhere.
func (m *MockStatementStore) BalanceByUser(
	ctx context.Context,
	userID uuid.UUID,
) (decimal.Decimal, error) {
	if m.BalanceByUserFn != nil {
		return m.BalanceByUserFn(ctx, userID)
	}

	statements, err := m.ListByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	return domain.BalanceOf(statements), nil
}

// WithTx implements the StatementStore interface. The in-memory store has no
// transaction concept, so it returns itself.
func (m *MockStatementStore) WithTx(tx *sql.Tx) store.StatementStore {
	return m
}
