package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
)

// In-memory stubs implementing the repository ports.

type auditStub struct {
	entries []domain.AuditEntry
}

func (a *auditStub) Record(e domain.AuditEntry) {
	a.entries = append(a.entries, e)
}

func (a *auditStub) last() *domain.AuditEntry {
	if len(a.entries) == 0 {
		return nil
	}
	return &a.entries[len(a.entries)-1]
}

type stubUserRepo struct {
	users  map[string]*domain.User
	creds  map[string]*domain.Credential
	nextID int

	failCredential bool // force UpsertCredential to fail
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users: make(map[string]*domain.User),
		creds: make(map[string]*domain.Credential),
	}
}

func (r *stubUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListUsers(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) UpdateUser(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) DeleteUser(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) UpsertCredential(_ context.Context, cred *domain.Credential) error {
	if r.failCredential {
		return errors.New("credential store unavailable")
	}
	clone := *cred
	r.creds[cred.UserID] = &clone
	return nil
}

func (r *stubUserRepo) FindCredential(_ context.Context, userID string) (*domain.Credential, error) {
	c, ok := r.creds[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubUserRepo) DeleteCredential(_ context.Context, userID string) error {
	delete(r.creds, userID)
	return nil
}

type stubOccupancyRepo struct {
	occs   []domain.Occupancy
	nextID int
}

func (r *stubOccupancyRepo) Create(_ context.Context, occ *domain.Occupancy) (*domain.Occupancy, error) {
	r.nextID++
	clone := *occ
	clone.ID = fmt.Sprintf("o%d", r.nextID)
	r.occs = append(r.occs, clone)
	out := clone
	return &out, nil
}

func (r *stubOccupancyRepo) FindByID(_ context.Context, id string) (*domain.Occupancy, error) {
	for _, o := range r.occs {
		if o.ID == id {
			clone := o
			return &clone, nil
		}
	}
	return nil, domain.ErrOccupancyNotFound
}

func (r *stubOccupancyRepo) List(_ context.Context) ([]domain.Occupancy, error) {
	return append([]domain.Occupancy(nil), r.occs...), nil
}

func (r *stubOccupancyRepo) ListRange(_ context.Context, house string, from, to time.Time) ([]domain.Occupancy, error) {
	var out []domain.Occupancy
	for _, o := range r.occs {
		if o.House == house && o.Overlaps(from, to) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOccupancyRepo) FindOverlapping(_ context.Context, house, room string, arrival, departure time.Time, excludeID string) (*domain.Occupancy, error) {
	for _, o := range r.occs {
		if o.ID == excludeID || o.House != house || o.Room != room {
			continue
		}
		if o.Overlaps(arrival, departure) {
			clone := o
			return &clone, nil
		}
	}
	return nil, domain.ErrOccupancyNotFound
}

func (r *stubOccupancyRepo) Update(_ context.Context, occ *domain.Occupancy) error {
	for i := range r.occs {
		if r.occs[i].ID == occ.ID {
			r.occs[i] = *occ
			return nil
		}
	}
	return domain.ErrOccupancyNotFound
}

func (r *stubOccupancyRepo) Delete(_ context.Context, id string) error {
	for i := range r.occs {
		if r.occs[i].ID == id {
			r.occs = append(r.occs[:i], r.occs[i+1:]...)
			return nil
		}
	}
	return domain.ErrOccupancyNotFound
}

type stubGuestHouseRepo struct {
	houses []domain.GuestHouse
}

func (r *stubGuestHouseRepo) Create(_ context.Context, gh *domain.GuestHouse) (*domain.GuestHouse, error) {
	for _, h := range r.houses {
		if h.Name == gh.Name {
			return nil, domain.ErrGuestHouseExists
		}
	}
	clone := *gh
	clone.ID = fmt.Sprintf("g%d", len(r.houses)+1)
	r.houses = append(r.houses, clone)
	out := clone
	return &out, nil
}

func (r *stubGuestHouseRepo) FindByName(_ context.Context, name string) (*domain.GuestHouse, error) {
	for _, h := range r.houses {
		if h.Name == name {
			clone := h
			return &clone, nil
		}
	}
	return nil, domain.ErrGuestHouseNotFound
}

func (r *stubGuestHouseRepo) List(_ context.Context) ([]domain.GuestHouse, error) {
	return append([]domain.GuestHouse(nil), r.houses...), nil
}
