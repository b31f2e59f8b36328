package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	ok, err := h.Compare(hash, "password123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(hash, "password124")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasherSalts(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	a, err := h.Hash("same-secret")
	require.NoError(t, err)
	b, err := h.Hash("same-secret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasherDefaultsAndBounds(t *testing.T) {
	h, err := NewBcryptHasher(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, h.Cost())

	_, err = NewBcryptHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
	_, err = NewBcryptHasher(1)
	assert.Error(t, err)
}

func TestBcryptHasherRejectsEmptyAndMalformed(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	_, err = h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyInput)

	ok, err := h.Compare("not-a-bcrypt-hash", "x")
	assert.Error(t, err)
	assert.False(t, ok)
}
