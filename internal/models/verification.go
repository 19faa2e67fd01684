package models

import "time"

// PendingVerification is a one-time registration code waiting to be consumed.
type PendingVerification struct {
	Email     string    `json:"email" db:"email"`           // Key, one entry per email
	Code      string    `json:"code" db:"code"`             // 6 lowercase hex chars
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"` // Strict upper bound of validity
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Time of the last upsert
}

// IsValid reports whether code matches and the entry has not expired at now.
func (p *PendingVerification) IsValid(code string, now time.Time) bool {
	return p.Code == code && p.ExpiresAt.After(now)
}
