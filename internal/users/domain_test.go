package users

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicOmitsPasswordHash(t *testing.T) {
	u := User{
		ID:           uuid.New(),
		Name:         "George Doe",
		Email:        "george@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		DateOfBirth:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Verified:     true,
	}

	raw, err := json.Marshal(u.Public())
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "$2a$")
	assert.NotContains(t, string(raw), "password")
	assert.Contains(t, string(raw), `"dateOfBirth":"1990-01-01"`)
	assert.Contains(t, string(raw), `"verified":true`)
}
