package ports

import (
	"context"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
)

// UserRepository persists users and their credential records. The two live in
// separate collections; the authentication core owns both.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	// DeleteUser removes the user record only; callers cascade the credential.
	DeleteUser(ctx context.Context, id string) error

	UpsertCredential(ctx context.Context, cred *domain.Credential) error
	FindCredential(ctx context.Context, userID string) (*domain.Credential, error)
	DeleteCredential(ctx context.Context, userID string) error
}
