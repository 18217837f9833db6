package ports

import (
	"context"
	"time"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
)

// CreateOccupancyInput carries a new booking. OccupantCode defaults to the
// actor's own code name when empty.
type CreateOccupancyInput struct {
	OccupantCode string
	House        string
	Room         string
	Arrival      time.Time
	Departure    time.Time
}

// UpdateOccupancyInput is a partial booking update. Nil fields are left
// untouched; the audit diff contains exactly the fields that are set.
type UpdateOccupancyInput struct {
	OccupantCode *string
	House        *string
	Room         *string
	Arrival      *time.Time
	Departure    *time.Time
}

// OccupancyService defines booking use cases. Mutations require the acting
// user for the permission check and the audit trail.
type OccupancyService interface {
	List(ctx context.Context) ([]domain.Occupancy, error)
	Create(ctx context.Context, actor domain.User, in CreateOccupancyInput) (*domain.Occupancy, error)
	Update(ctx context.Context, actor domain.User, id string, in UpdateOccupancyInput) (*domain.Occupancy, error)
	Delete(ctx context.Context, actor domain.User, id string) error
}
