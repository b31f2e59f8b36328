package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsAreGooseAnnotated(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		raw, err := fs.ReadFile(migrations, "migrations/"+entry.Name())
		require.NoError(t, err)
		body := string(raw)
		assert.True(t, strings.Contains(body, "-- +goose Up"), entry.Name())
		assert.True(t, strings.Contains(body, "-- +goose Down"), entry.Name())
	}
}

func TestUsersEmailIsUnique(t *testing.T) {
	raw, err := fs.ReadFile(migrations, "migrations/00001_accounts.sql")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "CREATE UNIQUE INDEX users_email_key ON users (email)")
}

func TestBudgetNamesAreUniquePerUser(t *testing.T) {
	raw, err := fs.ReadFile(migrations, "migrations/00002_budgets.sql")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "CREATE UNIQUE INDEX budgets_user_name_key ON budgets (user_id, name)")
}
