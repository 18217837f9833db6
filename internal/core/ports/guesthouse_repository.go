package ports

import (
	"context"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
)

// GuestHouseRepository persists guest house reference data.
type GuestHouseRepository interface {
	Create(ctx context.Context, gh *domain.GuestHouse) (*domain.GuestHouse, error)
	FindByName(ctx context.Context, name string) (*domain.GuestHouse, error)
	List(ctx context.Context) ([]domain.GuestHouse, error)
}
