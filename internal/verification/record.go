// Package verification stores pending email-verification records.
package verification

import (
	"time"

	"github.com/google/uuid"
)

// Record is one outstanding verification token for a user.
type Record struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	HashedToken string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the record lapsed before now.
func (r Record) Expired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}
