package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
	"github.com/jackvpt/hhguesthouses-api/internal/core/ports"
)

func newAuthService(repo *stubUserRepo, audit *auditStub) *AuthService {
	return NewAuthService(repo, audit, "secret", time.Hour, bcrypt.MinCost, zerolog.Nop())
}

func validSignup() ports.SignupInput {
	return ports.SignupInput{
		FirstName: "Jeanne",
		LastName:  "Dorel",
		CodeName:  "JDO",
		Email:     "jeanne@example.com",
		Password:  "Valid123!",
		Role:      "guest",
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	audit := &auditStub{}
	svc := newAuthService(repo, audit)

	user, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.ID == "" || user.CodeName != "JDO" || user.Role != domain.RoleGuest {
		t.Fatalf("unexpected user: %+v", user)
	}

	cred, err := repo.FindCredential(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("credential missing: %v", err)
	}
	if cred.PasswordHash == "Valid123!" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte("Valid123!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	if e := audit.last(); e == nil || e.Action != domain.ActionSignup || e.ActorEmail != "jeanne@example.com" {
		t.Fatalf("expected signup audit entry, got %+v", e)
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &auditStub{})
	ctx := context.Background()

	in := validSignup()
	in.Email = ""
	if _, err := svc.Signup(ctx, in); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}

	in = validSignup()
	in.Password = "alllowercase1!"
	if _, err := svc.Signup(ctx, in); err != domain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	in = validSignup()
	in.Role = "root"
	if _, err := svc.Signup(ctx, in); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &auditStub{})
	ctx := context.Background()

	if _, err := svc.Signup(ctx, validSignup()); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	in := validSignup()
	in.CodeName = "JD2"
	if _, err := svc.Signup(ctx, in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Signup_RollsBackUserOnCredentialFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.failCredential = true
	svc := newAuthService(repo, &auditStub{})

	if _, err := svc.Signup(context.Background(), validSignup()); err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.users) != 0 {
		t.Fatalf("user record left behind after credential failure")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	audit := &auditStub{}
	svc := newAuthService(repo, audit)
	ctx := context.Background()

	created, err := svc.Signup(ctx, validSignup())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	res, err := svc.Login(ctx, "jeanne@example.com", "Valid123!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" || res.User == nil || res.User.ID != created.ID {
		t.Fatalf("unexpected result: %+v", res)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != created.ID || claims["role"] != "guest" || claims["code_name"] != "JDO" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if e := audit.last(); e == nil || e.Action != domain.ActionLogin {
		t.Fatalf("expected login audit entry, got %+v", e)
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &auditStub{})
	ctx := context.Background()

	if _, err := svc.Signup(ctx, validSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// Wrong password and unknown email must yield the same error so callers
	// cannot probe which accounts exist.
	_, errWrongPw := svc.Login(ctx, "jeanne@example.com", "Wrong123!")
	_, errNoUser := svc.Login(ctx, "ghost@example.com", "Valid123!")

	if errWrongPw != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: got %v", errWrongPw)
	}
	if errNoUser != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: got %v", errNoUser)
	}
}

func TestAuthService_Validate(t *testing.T) {
	repo := newStubUserRepo()
	audit := &auditStub{}
	svc := newAuthService(repo, audit)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, validSignup()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	res, err := svc.Login(ctx, "jeanne@example.com", "Valid123!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	user, err := svc.Validate(ctx, res.Token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if user.CodeName != "JDO" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if e := audit.last(); e == nil || e.Action != domain.ActionTokenValidate {
		t.Fatalf("expected token_validate audit entry, got %+v", e)
	}

	if _, err := svc.Validate(ctx, "not-a-token"); err != domain.ErrInvalidCredentials {
		t.Fatalf("garbage token: got %v", err)
	}
}

func TestAuthService_Validate_DeletedUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &auditStub{})
	ctx := context.Background()

	user, err := svc.Signup(ctx, validSignup())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	res, err := svc.Login(ctx, "jeanne@example.com", "Valid123!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := repo.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Validate(ctx, res.Token); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for deleted user, got %v", err)
	}
}

func TestAuthService_UpdatePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &auditStub{})
	ctx := context.Background()

	user, err := svc.Signup(ctx, validSignup())
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if err := svc.UpdatePassword(ctx, user.ID, "Wrong123!", "Another1!"); err != domain.ErrInvalidCredentials {
		t.Fatalf("wrong current password: got %v", err)
	}
	if err := svc.UpdatePassword(ctx, user.ID, "Valid123!", "weak"); err != domain.ErrWeakPassword {
		t.Fatalf("weak new password: got %v", err)
	}
	if err := svc.UpdatePassword(ctx, "missing", "Valid123!", "Another1!"); err != domain.ErrUserNotFound {
		t.Fatalf("unknown user: got %v", err)
	}

	if err := svc.UpdatePassword(ctx, user.ID, "Valid123!", "Another1!"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := svc.Login(ctx, "jeanne@example.com", "Another1!"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(ctx, "jeanne@example.com", "Valid123!"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password still accepted: %v", err)
	}
}
