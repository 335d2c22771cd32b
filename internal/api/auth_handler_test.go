package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgercore/fin-ledger/internal/api/shared"
	"github.com/ledgercore/fin-ledger/internal/mocks"
	"github.com/ledgercore/fin-ledger/internal/service"
	"github.com/ledgercore/fin-ledger/internal/service/auth"
)

// authHandlerFixture wires an AuthHandler over in-memory stores.
type authHandlerFixture struct {
	handler   *AuthHandler
	userStore *mocks.MockUserStore
}

func newAuthHandlerFixture(t *testing.T) *authHandlerFixture {
	t.Helper()

	userStore := mocks.NewMockUserStore()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	jwtService := auth.RequireTestJWTService(t)

	userService := service.NewUserService(userStore, hasher, slog.Default())
	authService := service.NewAuthService(userStore, auth.NewBcryptVerifier(), jwtService, slog.Default())

	return &authHandlerFixture{
		handler:   NewAuthHandler(userService, authService),
		userStore: userStore,
	}
}

// register creates a user through the handler and asserts success.
func (f *authHandlerFixture) register(t *testing.T, name, email, password string) UserResponse {
	t.Helper()

	body := `{"name":"` + name + `","email":"` + email + `","password":"` + password + `"}`
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/users", strings.NewReader(body))

	f.handler.Register(w, r)
	require.Equal(t, http.StatusCreated, w.Code, "register response: %s", w.Body.String())

	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegisterHandler(t *testing.T) {
	t.Parallel()

	t.Run("creates a user without exposing credentials", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)

		resp := f.register(t, "Test", "test@test.com", "123")

		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, "Test", resp.Name)
		assert.Equal(t, "test@test.com", resp.Email)

		raw := map[string]interface{}{}
		body := `{"name":"Other","email":"other@test.com","password":"secret-password"}`
		w := httptest.NewRecorder()
		f.handler.Register(w, httptest.NewRequest("POST", "/users", strings.NewReader(body)))
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		assert.NotContains(t, raw, "password")
		assert.NotContains(t, raw, "hashed_password")
		assert.NotContains(t, w.Body.String(), "secret-password")
	})

	t.Run("duplicate email yields 409", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		f.register(t, "Test", "test@test.com", "123")

		body := `{"name":"Test 2","email":"test@test.com","password":"456"}`
		w := httptest.NewRecorder()
		f.handler.Register(w, httptest.NewRequest("POST", "/users", strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "User already exists")
	})

	t.Run("malformed body yields 400", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)

		w := httptest.NewRecorder()
		f.handler.Register(w, httptest.NewRequest("POST", "/users", strings.NewReader(`{"name":`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing fields yield 400", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)

		w := httptest.NewRecorder()
		f.handler.Register(w, httptest.NewRequest("POST", "/users", strings.NewReader(`{"email":"test@test.com"}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials yield a token pair", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		f.register(t, "Test", "test@test.com", "123")

		w := httptest.NewRecorder()
		body := `{"email":"test@test.com","password":"123"}`
		f.handler.Login(w, httptest.NewRequest("POST", "/sessions", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, w.Code, "login response: %s", w.Body.String())

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "test@test.com", resp.User.Email)
	})

	t.Run("wrong password and unknown email both yield 401", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		f.register(t, "Test", "test@test.com", "123")

		for _, body := range []string{
			`{"email":"test@test.com","password":"wrong"}`,
			`{"email":"nobody@test.com","password":"123"}`,
		} {
			w := httptest.NewRecorder()
			f.handler.Login(w, httptest.NewRequest("POST", "/sessions", strings.NewReader(body)))
			assert.Equal(t, http.StatusUnauthorized, w.Code, "body %s", body)
			assert.Contains(t, w.Body.String(), "Incorrect email or password")
		}
	})
}

func TestRefreshTokenHandler(t *testing.T) {
	t.Parallel()

	t.Run("valid refresh token yields a new pair", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		f.register(t, "Test", "test@test.com", "123")

		w := httptest.NewRecorder()
		f.handler.Login(w, httptest.NewRequest(
			"POST", "/sessions", strings.NewReader(`{"email":"test@test.com","password":"123"}`)))
		require.Equal(t, http.StatusOK, w.Code)

		var first AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

		w = httptest.NewRecorder()
		f.handler.RefreshToken(w, httptest.NewRequest(
			"POST", "/sessions/refresh", strings.NewReader(`{"refresh_token":"`+first.RefreshToken+`"}`)))

		require.Equal(t, http.StatusOK, w.Code, "refresh response: %s", w.Body.String())

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("garbage refresh token yields 401", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)

		w := httptest.NewRecorder()
		f.handler.RefreshToken(w, httptest.NewRequest(
			"POST", "/sessions/refresh", strings.NewReader(`{"refresh_token":"garbage"}`)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetProfileHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns the authenticated user's profile", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)
		created := f.register(t, "Test", "test@test.com", "123")

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/profile", nil)
		r = r.WithContext(context.WithValue(r.Context(), shared.UserIDContextKey, created.ID))

		f.handler.GetProfile(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, created.ID, resp.ID)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("missing authentication yields 401", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)

		w := httptest.NewRecorder()
		f.handler.GetProfile(w, httptest.NewRequest("GET", "/profile", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deleted user yields 404", func(t *testing.T) {
		t.Parallel()
		f := newAuthHandlerFixture(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/profile", nil)
		r = r.WithContext(context.WithValue(r.Context(), shared.UserIDContextKey, uuid.New()))

		f.handler.GetProfile(w, r)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
