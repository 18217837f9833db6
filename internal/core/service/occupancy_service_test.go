package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
	"github.com/jackvpt/hhguesthouses-api/internal/core/ports"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

var (
	guestActor = domain.User{ID: "u1", CodeName: "JDO", Email: "jeanne@example.com", Role: domain.RoleGuest}
	otherActor = domain.User{ID: "u2", CodeName: "MLE", Email: "marc@example.com", Role: domain.RoleGuest}
	adminActor = domain.User{ID: "u3", CodeName: "ADM", Email: "admin@example.com", Role: domain.RoleAdmin}
)

func newOccupancyService(repo *stubOccupancyRepo, audit *auditStub) *OccupancyService {
	return NewOccupancyService(repo, audit, zerolog.Nop())
}

func bookingInput() ports.CreateOccupancyInput {
	return ports.CreateOccupancyInput{
		House:     "Maison Bleue",
		Room:      "Chambre Rose",
		Arrival:   day(2025, time.September, 20),
		Departure: day(2025, time.September, 25),
	}
}

func TestOccupancyService_Create(t *testing.T) {
	repo := &stubOccupancyRepo{}
	audit := &auditStub{}
	svc := newOccupancyService(repo, audit)

	occ, err := svc.Create(context.Background(), guestActor, bookingInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if occ.ID == "" || occ.OccupantCode != "JDO" {
		t.Fatalf("unexpected occupancy: %+v", occ)
	}

	e := audit.last()
	if e == nil || e.Action != domain.ActionOccupancyCreate {
		t.Fatalf("expected create audit entry, got %+v", e)
	}
	// Dates are logged in DD/MM form.
	if !strings.Contains(e.Remarks, "20/09") || !strings.Contains(e.Remarks, "25/09") {
		t.Fatalf("remarks missing DD/MM dates: %q", e.Remarks)
	}
}

func TestOccupancyService_Create_Validation(t *testing.T) {
	svc := newOccupancyService(&stubOccupancyRepo{}, &auditStub{})
	ctx := context.Background()

	in := bookingInput()
	in.Room = ""
	if _, err := svc.Create(ctx, guestActor, in); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}

	in = bookingInput()
	in.Departure = in.Arrival
	if _, err := svc.Create(ctx, guestActor, in); err != domain.ErrInvalidDateRange {
		t.Fatalf("zero-night booking: got %v", err)
	}

	in = bookingInput()
	in.Arrival, in.Departure = in.Departure, in.Arrival
	if _, err := svc.Create(ctx, guestActor, in); err != domain.ErrInvalidDateRange {
		t.Fatalf("reversed dates: got %v", err)
	}
}

func TestOccupancyService_Create_RejectsOverlap(t *testing.T) {
	repo := &stubOccupancyRepo{}
	svc := newOccupancyService(repo, &auditStub{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, guestActor, bookingInput()); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	in := bookingInput()
	in.Arrival = day(2025, time.September, 24)
	in.Departure = day(2025, time.September, 27)
	if _, err := svc.Create(ctx, otherActor, in); err != domain.ErrOccupancyConflict {
		t.Fatalf("expected ErrOccupancyConflict, got %v", err)
	}

	// Back-to-back is fine: previous guest departs on the 25th.
	in.Arrival = day(2025, time.September, 25)
	if _, err := svc.Create(ctx, otherActor, in); err != nil {
		t.Fatalf("back-to-back booking rejected: %v", err)
	}

	// Same dates in a different room are fine too.
	in = bookingInput()
	in.Room = "Chambre Jaune"
	if _, err := svc.Create(ctx, otherActor, in); err != nil {
		t.Fatalf("different room rejected: %v", err)
	}
}

func TestOccupancyService_Update_DiffContainsOnlyProvidedFields(t *testing.T) {
	repo := &stubOccupancyRepo{}
	audit := &auditStub{}
	svc := newOccupancyService(repo, audit)
	ctx := context.Background()

	occ, err := svc.Create(ctx, guestActor, bookingInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	room := "Chambre Jaune"
	updated, err := svc.Update(ctx, guestActor, occ.ID, ports.UpdateOccupancyInput{Room: &room})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Room != "Chambre Jaune" {
		t.Fatalf("room not updated: %+v", updated)
	}

	e := audit.last()
	if e == nil || e.Action != domain.ActionOccupancyUpdate {
		t.Fatalf("expected update audit entry, got %+v", e)
	}
	start := strings.Index(e.Remarks, "{")
	if start < 0 {
		t.Fatalf("remarks carry no diff: %q", e.Remarks)
	}
	var diff map[string]domain.FieldChange
	if err := json.Unmarshal([]byte(e.Remarks[start:]), &diff); err != nil {
		t.Fatalf("diff not parseable: %v (%q)", err, e.Remarks)
	}
	if len(diff) != 1 {
		t.Fatalf("diff must contain exactly the provided field, got %+v", diff)
	}
	change, ok := diff["room"]
	if !ok || change.Old != "Chambre Rose" || change.New != "Chambre Jaune" {
		t.Fatalf("unexpected room change: %+v", diff)
	}
}

func TestOccupancyService_Update_Permissions(t *testing.T) {
	repo := &stubOccupancyRepo{}
	svc := newOccupancyService(repo, &auditStub{})
	ctx := context.Background()

	occ, err := svc.Create(ctx, guestActor, bookingInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	room := "Chambre Jaune"

	if _, err := svc.Update(ctx, otherActor, occ.ID, ports.UpdateOccupancyInput{Room: &room}); err != domain.ErrNotAllowed {
		t.Fatalf("other guest: expected ErrNotAllowed, got %v", err)
	}
	if _, err := svc.Update(ctx, guestActor, occ.ID, ports.UpdateOccupancyInput{Room: &room}); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	room = "Chambre Rose"
	if _, err := svc.Update(ctx, adminActor, occ.ID, ports.UpdateOccupancyInput{Room: &room}); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
}

func TestOccupancyService_Update_NotFound(t *testing.T) {
	svc := newOccupancyService(&stubOccupancyRepo{}, &auditStub{})
	room := "Chambre Jaune"
	if _, err := svc.Update(context.Background(), adminActor, "missing", ports.UpdateOccupancyInput{Room: &room}); err != domain.ErrOccupancyNotFound {
		t.Fatalf("expected ErrOccupancyNotFound, got %v", err)
	}
}

func TestOccupancyService_Update_OverlapExcludesSelf(t *testing.T) {
	repo := &stubOccupancyRepo{}
	svc := newOccupancyService(repo, &auditStub{})
	ctx := context.Background()

	occ, err := svc.Create(ctx, guestActor, bookingInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Extending the stay by one night overlaps only the booking itself.
	departure := day(2025, time.September, 26)
	if _, err := svc.Update(ctx, guestActor, occ.ID, ports.UpdateOccupancyInput{Departure: &departure}); err != nil {
		t.Fatalf("self-overlapping update rejected: %v", err)
	}
}

func TestOccupancyService_Delete(t *testing.T) {
	repo := &stubOccupancyRepo{}
	audit := &auditStub{}
	svc := newOccupancyService(repo, audit)
	ctx := context.Background()

	occ, err := svc.Create(ctx, guestActor, bookingInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, otherActor, occ.ID); err != domain.ErrNotAllowed {
		t.Fatalf("other guest delete: expected ErrNotAllowed, got %v", err)
	}
	if err := svc.Delete(ctx, guestActor, occ.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(ctx, guestActor, occ.ID); err != domain.ErrOccupancyNotFound {
		t.Fatalf("second delete: expected ErrOccupancyNotFound, got %v", err)
	}

	e := audit.last()
	if e == nil || e.Action != domain.ActionOccupancyDelete {
		t.Fatalf("expected delete audit entry, got %+v", e)
	}
	if !strings.Contains(e.Remarks, "JDO") || !strings.Contains(e.Remarks, "Maison Bleue") {
		t.Fatalf("remarks missing captured fields: %q", e.Remarks)
	}
}
