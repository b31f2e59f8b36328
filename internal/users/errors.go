package users

import (
	"errors"

	"github.com/budgetly/budgetly/internal/shared"
)

var (
	// ErrNotFound indicates no user matched.
	ErrNotFound = shared.ErrNotFound
	// ErrDuplicateEmail indicates the unique email index rejected a write.
	ErrDuplicateEmail = errors.New("users: email already registered")
)
