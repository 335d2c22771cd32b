package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgercore/fin-ledger/internal/domain"
	"github.com/ledgercore/fin-ledger/internal/platform/logger"
	"github.com/ledgercore/fin-ledger/internal/store"
)

// PostgresStatementStore implements the store.StatementStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStatementStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatementStore creates a new PostgreSQL implementation of the StatementStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresStatementStore(db store.DBTX, logger *slog.Logger) *PostgresStatementStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatementStore{
		db:     db,
		logger: logger.With(slog.String("component", "statement_store")),
	}
}

// Ensure PostgresStatementStore implements store.StatementStore interface
var _ store.StatementStore = (*PostgresStatementStore)(nil)

// Create implements store.StatementStore.Create
// It appends a new statement row. Statements are never updated or deleted.
// Returns store.ErrInvalidEntity if the user ID doesn't exist (foreign key violation).
func (s *PostgresStatementStore) Create(ctx context.Context, statement *domain.Statement) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := statement.Validate(); err != nil {
		log.Warn("statement validation failed during create",
			slog.String("error", err.Error()),
			slog.String("statement_id", statement.ID.String()))
		return err
	}

	query := `
		INSERT INTO statements (id, user_id, type, amount, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		statement.ID,
		statement.UserID,
		string(statement.Type),
		statement.Amount,
		statement.Description,
		statement.CreatedAt,
		statement.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during statement creation",
				slog.String("statement_id", statement.ID.String()),
				slog.String("user_id", statement.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, statement.UserID)
		}

		log.Error("failed to create statement",
			slog.String("error", err.Error()),
			slog.String("statement_id", statement.ID.String()),
			slog.String("user_id", statement.UserID.String()))
		return store.NewStoreError("statement", "create", "insert failed", err)
	}

	log.Info("statement created successfully",
		slog.String("statement_id", statement.ID.String()),
		slog.String("user_id", statement.UserID.String()),
		slog.String("type", string(statement.Type)))
	return nil
}

// GetByID implements store.StatementStore.GetByID
// The lookup is scoped to the owning user: a statement that exists but belongs
// to another user is reported as store.ErrStatementNotFound, so statement
// existence never leaks across users.
func (s *PostgresStatementStore) GetByID(
	ctx context.Context,
	userID, statementID uuid.UUID,
) (*domain.Statement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, type, amount, description, created_at, updated_at
		FROM statements
		WHERE id = $1 AND user_id = $2
	`

	var statement domain.Statement
	var opType string

	err := s.db.QueryRowContext(ctx, query, statementID, userID).Scan(
		&statement.ID,
		&statement.UserID,
		&opType,
		&statement.Amount,
		&statement.Description,
		&statement.CreatedAt,
		&statement.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("statement not found",
				slog.String("statement_id", statementID.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrStatementNotFound
		}
		log.Error("failed to get statement by ID",
			slog.String("error", err.Error()),
			slog.String("statement_id", statementID.String()))
		return nil, store.NewStoreError("statement", "get", "query failed", err)
	}

	statement.Type = domain.OperationType(opType)
	return &statement, nil
}

// ListByUser implements store.StatementStore.ListByUser
// Rows are returned in insertion order, oldest first.
func (s *PostgresStatementStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Statement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, type, amount, description, created_at, updated_at
		FROM statements
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query statements by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("statement", "list", "query failed", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	statements := []*domain.Statement{}
	for rows.Next() {
		var statement domain.Statement
		var opType string

		err := rows.Scan(
			&statement.ID,
			&statement.UserID,
			&opType,
			&statement.Amount,
			&statement.Description,
			&statement.CreatedAt,
			&statement.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan statement row",
				slog.String("error", err.Error()))
			return nil, store.NewStoreError("statement", "list", "scan failed", err)
		}

		statement.Type = domain.OperationType(opType)
		statements = append(statements, &statement)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("statement", "list", "iteration failed", err)
	}

	return statements, nil
}

// BalanceByUser implements store.StatementStore.BalanceByUser
// The balance is always derived from the full statement history by the
// database; no running total column exists to drift from it.
func (s *PostgresStatementStore) BalanceByUser(
	ctx context.Context,
	userID uuid.UUID,
) (decimal.Decimal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'deposit' THEN amount ELSE -amount END), 0)
		FROM statements
		WHERE user_id = $1
	`

	var balance decimal.Decimal
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&balance)
	if err != nil {
		log.Error("failed to compute balance",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return decimal.Zero, store.NewStoreError("statement", "balance", "query failed", err)
	}

	return balance, nil
}

// WithTx implements store.StatementStore.WithTx
// It returns a new store bound to the given transaction, so the withdrawal
// balance check and the append commit as one atomic unit.
func (s *PostgresStatementStore) WithTx(tx *sql.Tx) store.StatementStore {
	return &PostgresStatementStore{
		db:     tx,
		logger: s.logger,
	}
}
