package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
	"github.com/jackvpt/hhguesthouses-api/internal/core/ports"
	"github.com/jackvpt/hhguesthouses-api/pkg/week"
)

const auditDateFormat = "02/01"

// OccupancyService implements booking create/update/delete with audit
// emission and double-booking prevention.
type OccupancyService struct {
	repo  ports.OccupancyRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewOccupancyService(repo ports.OccupancyRepository, audit ports.AuditRecorder, log zerolog.Logger) *OccupancyService {
	return &OccupancyService{repo: repo, audit: audit, log: log}
}

func (s *OccupancyService) List(ctx context.Context) ([]domain.Occupancy, error) {
	return s.repo.List(ctx)
}

// Create books a room. The occupant defaults to the actor; a booking whose
// nights overlap an existing one for the same house and room is rejected.
func (s *OccupancyService) Create(ctx context.Context, actor domain.User, in ports.CreateOccupancyInput) (*domain.Occupancy, error) {
	code := in.OccupantCode
	if code == "" {
		code = actor.CodeName
	}
	if code == "" || in.House == "" || in.Room == "" || in.Arrival.IsZero() || in.Departure.IsZero() {
		return nil, domain.ErrMissingFields
	}

	arrival := week.Midnight(in.Arrival)
	departure := week.Midnight(in.Departure)
	if !arrival.Before(departure) {
		return nil, domain.ErrInvalidDateRange
	}

	if err := s.ensureFree(ctx, in.House, in.Room, arrival, departure, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	occ, err := s.repo.Create(ctx, &domain.Occupancy{
		OccupantCode: code,
		House:        in.House,
		Room:         in.Room,
		Arrival:      arrival,
		Departure:    departure,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("house", in.House).Str("room", in.Room).Msg("failed to create occupancy")
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		ActorEmail: actor.Email,
		Action:     domain.ActionOccupancyCreate,
		Remarks: fmt.Sprintf("%s booked %s / %s from %s to %s",
			code, occ.House, occ.Room,
			arrival.Format(auditDateFormat), departure.Format(auditDateFormat)),
	})
	s.log.Info().Str("id", occ.ID).Str("occupant", code).Str("house", occ.House).Str("room", occ.Room).Msg("occupancy created")

	return occ, nil
}

// Update applies a partial change to a booking. The audit entry carries a
// field-by-field diff covering exactly the fields present in the input.
func (s *OccupancyService) Update(ctx context.Context, actor domain.User, id string, in ports.UpdateOccupancyInput) (*domain.Occupancy, error) {
	occ, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanEditOccupancy(actor, *occ) {
		return nil, domain.ErrNotAllowed
	}

	diff := map[string]domain.FieldChange{}
	if in.OccupantCode != nil {
		diff["occupant_code"] = domain.FieldChange{Old: occ.OccupantCode, New: *in.OccupantCode}
		occ.OccupantCode = *in.OccupantCode
	}
	if in.House != nil {
		diff["house"] = domain.FieldChange{Old: occ.House, New: *in.House}
		occ.House = *in.House
	}
	if in.Room != nil {
		diff["room"] = domain.FieldChange{Old: occ.Room, New: *in.Room}
		occ.Room = *in.Room
	}
	if in.Arrival != nil {
		arrival := week.Midnight(*in.Arrival)
		diff["arrival"] = domain.FieldChange{
			Old: occ.Arrival.Format(time.DateOnly),
			New: arrival.Format(time.DateOnly),
		}
		occ.Arrival = arrival
	}
	if in.Departure != nil {
		departure := week.Midnight(*in.Departure)
		diff["departure"] = domain.FieldChange{
			Old: occ.Departure.Format(time.DateOnly),
			New: departure.Format(time.DateOnly),
		}
		occ.Departure = departure
	}

	if !week.Midnight(occ.Arrival).Before(week.Midnight(occ.Departure)) {
		return nil, domain.ErrInvalidDateRange
	}
	if err := s.ensureFree(ctx, occ.House, occ.Room, occ.Arrival, occ.Departure, occ.ID); err != nil {
		return nil, err
	}

	occ.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, occ); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to update occupancy")
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		ActorEmail: actor.Email,
		Action:     domain.ActionOccupancyUpdate,
		Remarks:    fmt.Sprintf("updated booking %s of %s: %s", id, occ.OccupantCode, encodeDiff(diff)),
	})

	return occ, nil
}

// Delete cancels a booking. The record is loaded first so its fields survive
// in the audit trail.
func (s *OccupancyService) Delete(ctx context.Context, actor domain.User, id string) error {
	occ, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanEditOccupancy(actor, *occ) {
		return domain.ErrNotAllowed
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEntry{
		ActorEmail: actor.Email,
		Action:     domain.ActionOccupancyDelete,
		Remarks: fmt.Sprintf("cancelled booking of %s at %s / %s from %s to %s",
			occ.OccupantCode, occ.House, occ.Room,
			occ.Arrival.Format(auditDateFormat), occ.Departure.Format(auditDateFormat)),
	})
	s.log.Info().Str("id", id).Str("occupant", occ.OccupantCode).Msg("occupancy deleted")

	return nil
}

func (s *OccupancyService) ensureFree(ctx context.Context, house, room string, arrival, departure time.Time, excludeID string) error {
	other, err := s.repo.FindOverlapping(ctx, house, room, arrival, departure, excludeID)
	if err != nil {
		if errors.Is(err, domain.ErrOccupancyNotFound) {
			return nil
		}
		return fmt.Errorf("overlap check: %w", err)
	}
	s.log.Warn().Str("house", house).Str("room", room).Str("conflicts_with", other.ID).Msg("double booking rejected")
	return domain.ErrOccupancyConflict
}

func encodeDiff(diff map[string]domain.FieldChange) string {
	b, err := json.Marshal(diff)
	if err != nil {
		return "{}"
	}
	return string(b)
}
