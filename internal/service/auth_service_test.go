package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgercore/fin-ledger/internal/domain"
	"github.com/ledgercore/fin-ledger/internal/mocks"
	"github.com/ledgercore/fin-ledger/internal/service"
	"github.com/ledgercore/fin-ledger/internal/service/auth"
)

// authFixture wires an AuthService over the in-memory user store with one
// registered user whose password is "123".
type authFixture struct {
	svc        service.AuthService
	jwtService auth.JWTService
	userStore  *mocks.MockUserStore
	user       *domain.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	userStore := mocks.NewMockUserStore()
	jwtService := auth.RequireTestJWTService(t)

	user, err := domain.NewUser("Test", "test@test.com", "123")
	require.NoError(t, err)
	hashed, err := auth.NewBcryptHasher(bcrypt.MinCost).Hash("123")
	require.NoError(t, err)
	user.HashedPassword = hashed
	user.Password = ""
	require.NoError(t, userStore.Create(context.Background(), user))

	return &authFixture{
		svc:        service.NewAuthService(userStore, auth.NewBcryptVerifier(), jwtService, slog.Default()),
		jwtService: jwtService,
		userStore:  userStore,
		user:       user,
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		result, err := f.svc.Authenticate(context.Background(), "test@test.com", "123")
		require.NoError(t, err)

		assert.Equal(t, f.user.ID, result.User.ID)
		require.NotEmpty(t, result.AccessToken)
		require.NotEmpty(t, result.RefreshToken)
		assert.NotEqual(t, result.AccessToken, result.RefreshToken)

		claims, err := f.jwtService.ValidateToken(context.Background(), result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, f.user.ID, claims.UserID)

		refreshClaims, err := f.jwtService.ValidateRefreshToken(context.Background(), result.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, f.user.ID, refreshClaims.UserID)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		_, err := f.svc.Authenticate(context.Background(), "test@test.com", "wrong")
		assert.ErrorIs(t, err, service.ErrIncorrectEmailOrPassword)
	})

	t.Run("unknown email fails with the same error as a wrong password", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		_, unknownEmailErr := f.svc.Authenticate(context.Background(), "nobody@test.com", "123")
		_, wrongPasswordErr := f.svc.Authenticate(context.Background(), "test@test.com", "wrong")

		assert.ErrorIs(t, unknownEmailErr, service.ErrIncorrectEmailOrPassword)
		assert.Equal(t, wrongPasswordErr, unknownEmailErr,
			"responses must not reveal whether the account exists")
	})

	t.Run("token generation failure is not reported as bad credentials", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		brokenJWT := auth.NewMockJWTService()
		brokenJWT.TokenError = errors.New("signing key unavailable")
		svc := service.NewAuthService(f.userStore, auth.NewBcryptVerifier(), brokenJWT, slog.Default())

		_, err := svc.Authenticate(context.Background(), "test@test.com", "123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrIncorrectEmailOrPassword)
	})

	t.Run("store failure is not reported as bad credentials", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)
		f.userStore.GetByEmailError = errors.New("connection refused")

		_, err := f.svc.Authenticate(context.Background(), "test@test.com", "123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrIncorrectEmailOrPassword)
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	t.Run("valid refresh token issues a new pair", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		first, err := f.svc.Authenticate(context.Background(), "test@test.com", "123")
		require.NoError(t, err)

		result, err := f.svc.Refresh(context.Background(), first.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, f.user.ID, result.User.ID)
		require.NotEmpty(t, result.AccessToken)
		require.NotEmpty(t, result.RefreshToken)

		claims, err := f.jwtService.ValidateToken(context.Background(), result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, f.user.ID, claims.UserID)
	})

	t.Run("access token is rejected as a refresh token", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		first, err := f.svc.Authenticate(context.Background(), "test@test.com", "123")
		require.NoError(t, err)

		_, err = f.svc.Refresh(context.Background(), first.AccessToken)
		assert.ErrorIs(t, err, auth.ErrWrongTokenType)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		_, err := f.svc.Refresh(context.Background(), "not-a-token")
		assert.Error(t, err)
	})

	t.Run("token for a deleted user fails with UserNotFound", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture(t)

		first, err := f.svc.Authenticate(context.Background(), "test@test.com", "123")
		require.NoError(t, err)

		delete(f.userStore.Users, "test@test.com")

		_, err = f.svc.Refresh(context.Background(), first.RefreshToken)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}
