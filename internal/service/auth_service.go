package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ledgercore/fin-ledger/internal/domain"
	"github.com/ledgercore/fin-ledger/internal/service/auth"
	"github.com/ledgercore/fin-ledger/internal/store"
)

// AuthResult carries the outcome of a successful authentication:
// the authenticated user and a freshly issued token pair.
type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// AuthService provides the authentication use case.
type AuthService interface {
	// Authenticate verifies the email/password pair and issues a signed,
	// time-bounded token pair on success. An unknown email and a wrong
	// password both fail with ErrIncorrectEmailOrPassword so responses
	// never reveal whether an account exists.
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}

// authServiceImpl implements the AuthService interface.
type authServiceImpl struct {
	userStore  store.UserStore
	verifier   auth.PasswordVerifier
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userStore store.UserStore,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
	logger *slog.Logger,
) AuthService {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if verifier == nil {
		panic("verifier cannot be nil")
	}
	if jwtService == nil {
		panic("jwtService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &authServiceImpl{
		userStore:  userStore,
		verifier:   verifier,
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "auth_service")),
	}
}

// Authenticate implements AuthService.Authenticate.
func (s *authServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*AuthResult, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same error as a wrong password; see ErrIncorrectEmailOrPassword.
			s.logger.Debug("authentication failed: unknown email")
			return nil, ErrIncorrectEmailOrPassword
		}
		s.logger.Error("failed to look up user for authentication",
			slog.String("error", err.Error()))
		return nil, newServiceError("authenticate", "user lookup failed", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("authentication failed: password mismatch",
			slog.String("user_id", user.ID.String()))
		return nil, ErrIncorrectEmailOrPassword
	}

	return s.issueTokens(ctx, user, "authenticate")
}

// Refresh implements AuthService.Refresh.
func (s *authServiceImpl) Refresh(
	ctx context.Context,
	refreshToken string,
) (*AuthResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		s.logger.Debug("refresh failed: invalid token",
			slog.String("error", err.Error()))
		return nil, err
	}

	user, err := s.userStore.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, newServiceError("refresh", "user lookup failed", err)
	}

	return s.issueTokens(ctx, user, "refresh")
}

// issueTokens generates a fresh access/refresh pair for the user.
func (s *authServiceImpl) issueTokens(
	ctx context.Context,
	user *domain.User,
	operation string,
) (*AuthResult, error) {
	accessToken, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to generate access token",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return nil, newServiceError(operation, "token generation failed", err)
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to generate refresh token",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return nil, newServiceError(operation, "token generation failed", err)
	}

	s.logger.Info("tokens issued",
		slog.String("user_id", user.ID.String()),
		slog.String("operation", operation))

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
