// Package security holds the hashing primitive shared by account passwords
// and one-time tokens.
package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// MaxInputBytes is the longest input bcrypt accepts.
const MaxInputBytes = 72

// ErrEmptyInput is returned when asked to hash an empty string.
var ErrEmptyInput = errors.New("security: empty input")

// Hasher hashes secrets and checks candidates against stored hashes.
type Hasher interface {
	Hash(plain string) (string, error)
	// Compare reports whether plain matches hash. A mismatch is (false, nil);
	// err is reserved for malformed hashes.
	Compare(hash, plain string) (bool, error)
}

// BcryptHasher is a salted bcrypt Hasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher validates cost and builds the hasher.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("security: bcrypt cost %d outside [%d,%d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

// Cost returns the configured work factor.
func (h *BcryptHasher) Cost() int { return h.cost }

// Hash returns the bcrypt hash of plain.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyInput
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("security: hash: %w", err)
	}
	return string(out), nil
}

// Compare checks plain against hash in constant time.
func (h *BcryptHasher) Compare(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("security: compare: %w", err)
	}
}

var _ Hasher = (*BcryptHasher)(nil)
