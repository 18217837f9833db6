package ports

import (
	"context"
	"time"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
)

// OccupancyRepository persists bookings.
type OccupancyRepository interface {
	Create(ctx context.Context, occ *domain.Occupancy) (*domain.Occupancy, error)
	FindByID(ctx context.Context, id string) (*domain.Occupancy, error)
	List(ctx context.Context) ([]domain.Occupancy, error)
	// ListRange returns bookings for a house overlapping [from, to).
	ListRange(ctx context.Context, house string, from, to time.Time) ([]domain.Occupancy, error)
	// FindOverlapping returns a booking for the same house and room sharing at
	// least one night with [arrival, departure), skipping excludeID. Returns
	// domain.ErrOccupancyNotFound when the slot is free.
	FindOverlapping(ctx context.Context, house, room string, arrival, departure time.Time, excludeID string) (*domain.Occupancy, error)
	Update(ctx context.Context, occ *domain.Occupancy) error
	Delete(ctx context.Context, id string) error
}
