package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
	"github.com/jackvpt/hhguesthouses-api/internal/core/ports"
)

// AuthService implements signup, login, token validation and password change.
type AuthService struct {
	repo       ports.UserRepository
	audit      ports.AuditRecorder
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, audit ports.AuditRecorder, jwtSecret string, tokenTTL time.Duration, bcryptCost int, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		repo:       repo,
		audit:      audit,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

// Signup registers a new account. The password is hashed before the user
// record is written; if the credential insert fails afterwards, the user
// record is deleted again so no orphaned account remains.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	if in.FirstName == "" || in.LastName == "" || in.CodeName == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	if !ValidPassword(in.Password) {
		return nil, domain.ErrWeakPassword
	}

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.repo.CreateUser(ctx, &domain.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		CodeName:  in.CodeName,
		Email:     in.Email,
		Role:      role,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	cred := &domain.Credential{UserID: user.ID, PasswordHash: string(hash), UpdatedAt: now}
	if err := s.repo.UpsertCredential(ctx, cred); err != nil {
		// Compensate: never leave a user without a credential record.
		if delErr := s.repo.DeleteUser(ctx, user.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("user_id", user.ID).Msg("failed to roll back user after credential insert failure")
		}
		return nil, fmt.Errorf("signup: store credential: %w", err)
	}

	s.audit.Record(domain.AuditEntry{
		ActorEmail: user.Email,
		Action:     domain.ActionSignup,
		Remarks:    fmt.Sprintf("%s signed up as %s", user.CodeName, user.Role),
	})
	s.log.Info().Str("user_id", user.ID).Str("code_name", user.CodeName).Msg("user registered")

	return user, nil
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	cred, err := s.repo.FindCredential(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.audit.Record(domain.AuditEntry{
		ActorEmail: user.Email,
		Action:     domain.ActionLogin,
		Remarks:    fmt.Sprintf("%s logged in", user.CodeName),
	})

	return &ports.LoginResult{Token: token, User: user}, nil
}

// Validate resolves a bearer token to its current user. A token whose user no
// longer exists is treated the same as an invalid token.
func (s *AuthService) Validate(ctx context.Context, token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByID(ctx, sub)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("validate: %w", err)
	}

	s.audit.Record(domain.AuditEntry{
		ActorEmail: user.Email,
		Action:     domain.ActionTokenValidate,
		Remarks:    fmt.Sprintf("%s validated a token", user.CodeName),
	})

	return user, nil
}

// UpdatePassword replaces the caller's credential after verifying the current
// password and checking the new one against the policy.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	cred, err := s.repo.FindCredential(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}
	if !ValidPassword(next) {
		return domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("update password: hash: %w", err)
	}
	if err := s.repo.UpsertCredential(ctx, &domain.Credential{
		UserID:       userID,
		PasswordHash: string(hash),
		UpdatedAt:    time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.audit.Record(domain.AuditEntry{
		ActorEmail: user.Email,
		Action:     domain.ActionPasswordChange,
		Remarks:    fmt.Sprintf("%s changed their password", user.CodeName),
	})
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":       user.ID,
		"role":      string(user.Role),
		"code_name": user.CodeName,
		"email":     user.Email,
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
