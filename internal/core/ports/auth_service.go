package ports

import (
	"context"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
)

// SignupInput carries all data needed to register a new account.
type SignupInput struct {
	FirstName string
	LastName  string
	CodeName  string
	Email     string
	Password  string
	Role      string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthService defines the authentication use cases.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Validate resolves a bearer token to its current user and records the
	// validation in the audit trail.
	Validate(ctx context.Context, token string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, current, next string) error
}
