package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgercore/fin-ledger/internal/domain"
	"github.com/ledgercore/fin-ledger/internal/service/auth"
	"github.com/ledgercore/fin-ledger/internal/store"
)

// UserService provides the user identity use cases: registration and
// profile lookup.
type UserService interface {
	// CreateUser registers a new user with the given name, email and
	// plaintext password. The password is one-way hashed before it reaches
	// the store. Returns ErrUserAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, name, email, password string) (*domain.User, error)

	// GetProfile retrieves a user record by ID.
	// Returns ErrUserNotFound when the user does not exist. Stripping the
	// password hash before external exposure is the boundary layer's job.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	userStore  store.UserStore
	hasher     auth.PasswordHasher
	emailLocks keyedMutex
	logger     *slog.Logger
}

// NewUserService creates a new UserService.
// It panics if any dependency is nil, mirroring the store constructors.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) UserService {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// CreateUser implements UserService.CreateUser.
// The check-then-insert is serialized per email so two concurrent signups
// racing to the same address cannot both succeed; the durable store's unique
// index backs this up across processes.
func (s *userServiceImpl) CreateUser(
	ctx context.Context,
	name, email, password string,
) (*domain.User, error) {
	unlock := s.emailLocks.Lock(strings.ToLower(email))
	defer unlock()

	_, err := s.userStore.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Debug("create user rejected: email already on file")
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		s.logger.Error("failed to check existing email",
			slog.String("error", err.Error()))
		return nil, newServiceError("create_user", "email lookup failed", err)
	}

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return nil, newServiceError("create_user", "invalid user data", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			slog.String("error", err.Error()))
		return nil, newServiceError("create_user", "password hashing failed", err)
	}
	user.HashedPassword = hashed
	user.Password = "" // never hand plaintext to the store

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, newServiceError("create_user", "persist failed", err)
	}

	s.logger.Info("user created",
		slog.String("user_id", user.ID.String()))
	return user, nil
}

// GetProfile implements UserService.GetProfile.
func (s *userServiceImpl) GetProfile(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, newServiceError("get_profile", "user lookup failed", err)
	}
	return user, nil
}
