package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgercore/fin-ledger/internal/domain"
	"github.com/ledgercore/fin-ledger/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest defines the payload for the session creation endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CreateStatementRequest defines the payload for the deposit and withdraw
// endpoints. The operation type comes from the route, not the body.
type CreateStatementRequest struct {
	Amount      decimal.Decimal `json:"amount"      validate:"required"`
	Description string          `json:"description" validate:"required"`
}

// UserResponse is the external representation of a user. It never carries
// the password hash.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain user to its external representation.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User UserResponse `json:"user"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// NewAuthResponse maps a service auth result to its external representation.
func NewAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		User:         NewUserResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}
}

// StatementResponse is the external representation of one ledger entry.
type StatementResponse struct {
	ID          uuid.UUID            `json:"id"`
	Type        domain.OperationType `json:"type"`
	Amount      decimal.Decimal      `json:"amount"`
	Description string               `json:"description"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// NewStatementResponse maps a domain statement to its external representation.
func NewStatementResponse(statement *domain.Statement) StatementResponse {
	return StatementResponse{
		ID:          statement.ID,
		Type:        statement.Type,
		Amount:      statement.Amount,
		Description: statement.Description,
		CreatedAt:   statement.CreatedAt,
		UpdatedAt:   statement.UpdatedAt,
	}
}

// BalanceResponse carries a user's full statement history together with the
// balance derived from it.
type BalanceResponse struct {
	Statement []StatementResponse `json:"statement"`
	Balance   decimal.Decimal     `json:"balance"`
}

// NewBalanceResponse maps a service balance result to its external
// representation. The statement list is always present, never null.
func NewBalanceResponse(result *service.BalanceResult) BalanceResponse {
	statements := make([]StatementResponse, 0, len(result.Statements))
	for _, statement := range result.Statements {
		statements = append(statements, NewStatementResponse(statement))
	}
	return BalanceResponse{
		Statement: statements,
		Balance:   result.Balance,
	}
}
