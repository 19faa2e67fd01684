package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPendingVerification_IsValid(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		code      string
		want      bool
	}{
		{"valid", now.Add(10 * time.Minute), "abc123", true},
		{"one millisecond before expiry", now.Add(time.Millisecond), "abc123", true},
		{"expires exactly now", now, "abc123", false},
		{"expired", now.Add(-time.Millisecond), "abc123", false},
		{"code mismatch", now.Add(10 * time.Minute), "abc124", false},
		{"case sensitive", now.Add(10 * time.Minute), "ABC123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PendingVerification{Email: "a@x.com", Code: "abc123", ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, p.IsValid(tt.code, now))
		})
	}
}
