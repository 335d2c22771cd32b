package service_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgercore/fin-ledger/internal/mocks"
	"github.com/ledgercore/fin-ledger/internal/service"
	"github.com/ledgercore/fin-ledger/internal/service/auth"
)

func newUserService(userStore *mocks.MockUserStore) service.UserService {
	return service.NewUserService(
		userStore,
		auth.NewBcryptHasher(bcrypt.MinCost),
		slog.Default(),
	)
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	t.Run("creates user and hashes password", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		svc := newUserService(userStore)

		user, err := svc.CreateUser(context.Background(), "Test", "test@test.com", "123")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "Test", user.Name)
		assert.Equal(t, "test@test.com", user.Email)
		assert.Empty(t, user.Password)
		require.NotEmpty(t, user.HashedPassword)
		assert.NoError(t, auth.NewBcryptVerifier().Compare(user.HashedPassword, "123"))

		stored, err := userStore.GetByEmail(context.Background(), "test@test.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	t.Run("duplicate email fails and creates no second record", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		svc := newUserService(userStore)

		first, err := svc.CreateUser(context.Background(), "test", "test@test.com", "123")
		require.NoError(t, err)

		_, err = svc.CreateUser(context.Background(), "test 2", "test@test.com", "456")
		assert.ErrorIs(t, err, service.ErrUserAlreadyExists)

		stored, err := userStore.GetByEmail(context.Background(), "test@test.com")
		require.NoError(t, err)
		assert.Equal(t, first.ID, stored.ID)
		assert.Len(t, userStore.Users, 1)
	})

	t.Run("email uniqueness is case insensitive", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		svc := newUserService(userStore)

		_, err := svc.CreateUser(context.Background(), "test", "Test@Test.com", "123")
		require.NoError(t, err)

		_, err = svc.CreateUser(context.Background(), "test", "test@test.com", "123")
		assert.ErrorIs(t, err, service.ErrUserAlreadyExists)
	})

	t.Run("invalid user data fails before persisting", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		svc := newUserService(userStore)

		_, err := svc.CreateUser(context.Background(), "", "test@test.com", "123")
		assert.Error(t, err)
		assert.Empty(t, userStore.Users)
	})

	t.Run("store failure surfaces wrapped", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		userStore.CreateError = errors.New("disk full")
		svc := newUserService(userStore)

		_, err := svc.CreateUser(context.Background(), "test", "test@test.com", "123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrUserAlreadyExists)
	})

	t.Run("concurrent signups to one email yield one record", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		svc := newUserService(userStore)

		const attempts = 20
		var wg sync.WaitGroup
		successes := make(chan struct{}, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.CreateUser(context.Background(), "racer", "race@test.com", "123")
				if err == nil {
					successes <- struct{}{}
				} else {
					assert.ErrorIs(t, err, service.ErrUserAlreadyExists)
				}
			}()
		}
		wg.Wait()
		close(successes)

		assert.Len(t, successes, 1)
		assert.Len(t, userStore.Users, 1)
	})
}

func TestGetProfile(t *testing.T) {
	t.Parallel()

	t.Run("returns existing user", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		svc := newUserService(userStore)

		created, err := svc.CreateUser(context.Background(), "Test", "test@test.com", "123")
		require.NoError(t, err)

		profile, err := svc.GetProfile(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, profile.ID)
		assert.Equal(t, "Test", profile.Name)
		assert.Equal(t, "test@test.com", profile.Email)
	})

	t.Run("unknown user fails with UserNotFound", func(t *testing.T) {
		t.Parallel()
		svc := newUserService(mocks.NewMockUserStore())

		_, err := svc.GetProfile(context.Background(), uuid.New())
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}
