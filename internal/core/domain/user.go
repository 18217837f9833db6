package domain

import (
	"errors"
	"time"
)

// Role is the closed set of user roles. Authorization decisions consult the
// rank table below rather than comparing raw strings.
type Role string

const (
	RoleGuest      Role = "guest"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

var roleRank = map[Role]int{
	RoleGuest:      0,
	RoleManager:    1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

var ErrInvalidRole = errors.New("invalid role")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrWeakPassword = errors.New("password does not meet the strength policy")
var ErrMissingFields = errors.New("missing required fields")
var ErrNotAllowed = errors.New("not allowed")

// ParseRole validates a raw role string against the closed enumeration.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleRank[r]; !ok {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Valid reports whether the role belongs to the enumeration.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// CanModerate reports whether the role may edit records it does not own.
func (r Role) CanModerate() bool {
	return roleRank[r] >= roleRank[RoleAdmin]
}

// Settings holds per-user UI preferences, echoed back on login.
type Settings struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

// User is an account identity. The password hash lives in Credential, never here.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CodeName  string    `json:"code_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Settings  Settings  `json:"settings"`
	CreatedAt time.Time `json:"created_at"`
}

// Credential is the one-to-one password record for a user. It is internal to
// the authentication core and is never serialized in any API response.
type Credential struct {
	UserID       string    `bson:"user_id"`
	PasswordHash string    `bson:"password_hash"`
	UpdatedAt    time.Time `bson:"updated_at"`
}
