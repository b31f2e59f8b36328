package users

import (
	"time"

	"github.com/google/uuid"
)

// User is an account held by the credential store.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	DateOfBirth  time.Time
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public is the projection of a User that may leave the service.
type Public struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	DateOfBirth string    `json:"dateOfBirth"`
	Verified    bool      `json:"verified"`
}

// Public strips the password hash.
func (u User) Public() Public {
	return Public{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth.Format(time.DateOnly),
		Verified:    u.Verified,
	}
}
