package ports

import (
	"context"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
)

// UpdateUserInput is a partial profile update. Nil fields are left untouched.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	CodeName  *string
	Email     *string
	Role      *string
	Settings  *domain.Settings
}

// UserService defines user management use cases.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, actor domain.User, id string, in UpdateUserInput) (*domain.User, error)
	// Delete removes a user and cascades to its credential record.
	Delete(ctx context.Context, actor domain.User, id string) error
}
