package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgercore/fin-ledger/internal/domain"
	"github.com/ledgercore/fin-ledger/internal/store"
)

// CreateStatementInput is the DTO for the deposit/withdraw use case.
type CreateStatementInput struct {
	UserID      uuid.UUID
	Type        domain.OperationType
	Amount      decimal.Decimal
	Description string
}

// BalanceResult carries a user's full ordered statement history together
// with the balance derived from it.
type BalanceResult struct {
	Statements []*domain.Statement
	Balance    decimal.Decimal
}

// LedgerService provides the statement ledger use cases.
type LedgerService interface {
	// CreateStatement records a deposit or withdrawal for a user.
	// Returns ErrUserNotFound when the user does not exist, and
	// ErrInsufficientFunds when a withdrawal exceeds the current balance,
	// in which case nothing is persisted.
	CreateStatement(ctx context.Context, input CreateStatementInput) (*domain.Statement, error)

	// GetBalance returns the user's statements in insertion order together
	// with the balance derived from them.
	// Returns ErrUserNotFound when the user does not exist.
	GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceResult, error)

	// GetStatementOperation returns one statement scoped to its owner.
	// Returns ErrUserNotFound when the user does not exist and
	// ErrStatementNotFound when the statement is absent or owned by a
	// different user.
	GetStatementOperation(ctx context.Context, userID, statementID uuid.UUID) (*domain.Statement, error)
}

// ledgerServiceImpl implements the LedgerService interface.
type ledgerServiceImpl struct {
	userStore      store.UserStore
	statementStore store.StatementStore
	db             *sql.DB
	userLocks      keyedMutex
	logger         *slog.Logger
}

// NewLedgerService creates a new LedgerService.
// db may be nil when the stores are not database-backed (e.g., the in-memory
// stores used in tests); when present, the withdrawal balance check and the
// append run inside a single transaction.
func NewLedgerService(
	userStore store.UserStore,
	statementStore store.StatementStore,
	db *sql.DB,
	logger *slog.Logger,
) LedgerService {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if statementStore == nil {
		panic("statementStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ledgerServiceImpl{
		userStore:      userStore,
		statementStore: statementStore,
		db:             db,
		logger:         logger.With(slog.String("component", "ledger_service")),
	}
}

// CreateStatement implements LedgerService.CreateStatement.
// The read-balance, decide, append sequence is serialized per user, so two
// concurrent withdrawals can never both observe a pre-deduction balance.
// Appends for different users take different locks and do not contend.
func (s *ledgerServiceImpl) CreateStatement(
	ctx context.Context,
	input CreateStatementInput,
) (*domain.Statement, error) {
	unlock := s.userLocks.Lock(input.UserID.String())
	defer unlock()

	if s.db == nil {
		return s.createStatement(ctx, s.userStore, s.statementStore, input)
	}

	var created *domain.Statement
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		created, txErr = s.createStatement(
			ctx,
			s.userStore.WithTx(tx),
			s.statementStore.WithTx(tx),
			input,
		)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// createStatement runs the business rules against the given store handles,
// which may be transaction-bound.
func (s *ledgerServiceImpl) createStatement(
	ctx context.Context,
	users store.UserStore,
	statements store.StatementStore,
	input CreateStatementInput,
) (*domain.Statement, error) {
	if _, err := users.GetByID(ctx, input.UserID); err != nil {
		return nil, newServiceError("create_statement", "user lookup failed", err)
	}

	// Only withdrawals are guarded; deposits and unknown operation labels
	// append unconditionally, matching the balance fold semantics.
	if input.Type == domain.OperationWithdraw {
		balance, err := statements.BalanceByUser(ctx, input.UserID)
		if err != nil {
			return nil, newServiceError("create_statement", "balance derivation failed", err)
		}
		if input.Amount.GreaterThan(balance) {
			s.logger.Debug("withdrawal rejected: insufficient funds",
				slog.String("user_id", input.UserID.String()),
				slog.String("amount", input.Amount.String()),
				slog.String("balance", balance.String()))
			return nil, ErrInsufficientFunds
		}
	}

	statement, err := domain.NewStatement(input.UserID, input.Type, input.Amount, input.Description)
	if err != nil {
		return nil, newServiceError("create_statement", "invalid statement data", err)
	}

	if err := statements.Create(ctx, statement); err != nil {
		return nil, newServiceError("create_statement", "append failed", err)
	}

	s.logger.Info("statement recorded",
		slog.String("statement_id", statement.ID.String()),
		slog.String("user_id", statement.UserID.String()),
		slog.String("type", string(statement.Type)))
	return statement, nil
}

// GetBalance implements LedgerService.GetBalance.
// The balance is re-derived from the returned history itself, never read
// from a cached counter, so it cannot drift from the statements.
func (s *ledgerServiceImpl) GetBalance(
	ctx context.Context,
	userID uuid.UUID,
) (*BalanceResult, error) {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return nil, newServiceError("get_balance", "user lookup failed", err)
	}

	statements, err := s.statementStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, newServiceError("get_balance", "statement listing failed", err)
	}

	return &BalanceResult{
		Statements: statements,
		Balance:    domain.BalanceOf(statements),
	}, nil
}

// GetStatementOperation implements LedgerService.GetStatementOperation.
func (s *ledgerServiceImpl) GetStatementOperation(
	ctx context.Context,
	userID, statementID uuid.UUID,
) (*domain.Statement, error) {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return nil, newServiceError("get_statement_operation", "user lookup failed", err)
	}

	statement, err := s.statementStore.GetByID(ctx, userID, statementID)
	if err != nil {
		return nil, newServiceError("get_statement_operation", "statement lookup failed", err)
	}

	return statement, nil
}
