// Package passwordreset stores pending password-reset records. A user has at
// most one active record.
package passwordreset

import (
	"time"

	"github.com/google/uuid"
)

// Record is an outstanding reset token for a user.
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
