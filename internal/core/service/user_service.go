package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
	"github.com/jackvpt/hhguesthouses-api/internal/core/ports"
)

// UserService implements profile management. Deleting a user cascades to its
// credential record.
type UserService struct {
	repo  ports.UserRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, log: log}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

// Update applies a partial profile change. Users may edit their own profile;
// moderating roles may edit anyone's.
func (s *UserService) Update(ctx context.Context, actor domain.User, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if actor.ID != id && !actor.Role.CanModerate() {
		return nil, domain.ErrNotAllowed
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	diff := map[string]domain.FieldChange{}
	if in.FirstName != nil {
		diff["first_name"] = domain.FieldChange{Old: user.FirstName, New: *in.FirstName}
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		diff["last_name"] = domain.FieldChange{Old: user.LastName, New: *in.LastName}
		user.LastName = *in.LastName
	}
	if in.CodeName != nil {
		diff["code_name"] = domain.FieldChange{Old: user.CodeName, New: *in.CodeName}
		user.CodeName = *in.CodeName
	}
	if in.Email != nil {
		diff["email"] = domain.FieldChange{Old: user.Email, New: *in.Email}
		user.Email = *in.Email
	}
	if in.Role != nil {
		// Only moderators may change roles, including their own.
		if !actor.Role.CanModerate() {
			return nil, domain.ErrNotAllowed
		}
		role, err := domain.ParseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		diff["role"] = domain.FieldChange{Old: string(user.Role), New: string(role)}
		user.Role = role
	}
	if in.Settings != nil {
		diff["settings"] = domain.FieldChange{Old: user.Settings, New: *in.Settings}
		user.Settings = *in.Settings
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEntry{
		ActorEmail: actor.Email,
		Action:     domain.ActionUserUpdate,
		Remarks:    fmt.Sprintf("updated profile of %s: %s", user.CodeName, encodeDiff(diff)),
	})

	return user, nil
}

// Delete removes a user and its credential. Moderating roles only.
func (s *UserService) Delete(ctx context.Context, actor domain.User, id string) error {
	if !actor.Role.CanModerate() {
		return domain.ErrNotAllowed
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteCredential(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("user_id", id).Msg("credential cleanup failed after user delete")
	}

	s.audit.Record(domain.AuditEntry{
		ActorEmail: actor.Email,
		Action:     domain.ActionUserDelete,
		Remarks:    fmt.Sprintf("deleted user %s (%s)", user.CodeName, user.Email),
	})

	return nil
}
