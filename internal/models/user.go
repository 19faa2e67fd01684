package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID             uuid.UUID  `json:"id" db:"user_id"`              // Primary key
	Username           string     `json:"username" db:"username"`       // Display name, not unique
	Email              string     `json:"email" db:"email"`             // Unique, case-sensitive
	PasswordHash       string     `json:"-" db:"password_hash"`         // bcrypt hash
	ResetCode          *string    `json:"-" db:"reset_code"`            // Set only during a reset flow
	ResetCodeExpiresAt *time.Time `json:"-" db:"reset_code_expires_at"` // Paired with ResetCode
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`   // Creation timestamp
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`   // Last update timestamp
}

// HasValidResetCode reports whether code matches the stored reset code and
// the code has not expired at now. A code expiring exactly at now is expired.
func (u *UserDB) HasValidResetCode(code string, now time.Time) bool {
	if u.ResetCode == nil || u.ResetCodeExpiresAt == nil {
		return false
	}
	return *u.ResetCode == code && u.ResetCodeExpiresAt.After(now)
}

// Summary returns the public view of the user.
func (u *UserDB) Summary() UserSummary {
	return UserSummary{
		ID:       u.UserID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}

// UserSummary is the public part of a user returned to clients.
// swagger:model UserSummary
type UserSummary struct {
	// User identifier
	// example: 2f6c1c1e-8d1f-4f57-9a0b-0f2b9f1f0c11
	ID string `json:"id"`

	// Username
	// example: john_doe
	Username string `json:"username"`

	// Email
	// example: john@example.com
	Email string `json:"email"`
}
