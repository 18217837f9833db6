package domain

import "time"

// Audit action labels.
const (
	ActionSignup          = "signup"
	ActionLogin           = "login"
	ActionTokenValidate   = "token_validate"
	ActionPasswordChange  = "password_change"
	ActionOccupancyCreate = "occupancy_create"
	ActionOccupancyUpdate = "occupancy_update"
	ActionOccupancyDelete = "occupancy_delete"
	ActionUserUpdate      = "user_update"
	ActionUserDelete      = "user_delete"
)

// AuditEntry is an immutable, append-only record of a user-initiated action.
type AuditEntry struct {
	ID         string    `json:"id"`
	ActorEmail string    `json:"actor_email"`
	Action     string    `json:"action"`
	Remarks    string    `json:"remarks"`
	CreatedAt  time.Time `json:"created_at"`
}

// FieldChange records one before/after value pair inside an update diff.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}
