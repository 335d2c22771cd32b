package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ledgercore/fin-ledger/internal/config"
	"github.com/ledgercore/fin-ledger/internal/platform/logger"
	"github.com/ledgercore/fin-ledger/internal/platform/postgres"
	"github.com/ledgercore/fin-ledger/internal/service"
	"github.com/ledgercore/fin-ledger/internal/service/auth"
	"github.com/ledgercore/fin-ledger/internal/store"
)

// application holds the wired dependency graph of the server: configuration,
// logging, the database handle, stores and services.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore      store.UserStore
	statementStore store.StatementStore

	jwtService    auth.JWTService
	userService   service.UserService
	authService   service.AuthService
	ledgerService service.LedgerService
}

// newApplication loads configuration and wires every component, in
// dependency order: config, logger, database (with migrations), stores,
// services.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		closeQuietly(db, appLogger)
		return nil, err
	}

	userStore := postgres.NewPostgresUserStore(db, appLogger)
	statementStore := postgres.NewPostgresStatementStore(db, appLogger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeQuietly(db, appLogger)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	return &application{
		config:         cfg,
		logger:         appLogger,
		db:             db,
		userStore:      userStore,
		statementStore: statementStore,
		jwtService:     jwtService,
		userService:    service.NewUserService(userStore, hasher, appLogger),
		authService:    service.NewAuthService(userStore, auth.NewBcryptVerifier(), jwtService, appLogger),
		ledgerService:  service.NewLedgerService(userStore, statementStore, db, appLogger),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		closeQuietly(app.db, app.logger)
		app.db = nil
	}
}

func closeQuietly(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("failed to close database connection", "error", err)
	}
}
