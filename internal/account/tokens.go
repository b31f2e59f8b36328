package account

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

const tokenEntropyBytes = 16

// TokenSource produces plaintext one-time tokens.
type TokenSource func(userID uuid.UUID) (string, error)

// RandomToken returns 128 random bits in hex followed by the user id without
// dashes. The result is 64 characters and fits bcrypt's input limit.
func RandomToken(userID uuid.UUID) (string, error) {
	return randomToken(rand.Reader, userID)
}

func randomToken(r io.Reader, userID uuid.UUID) (string, error) {
	buf := make([]byte, tokenEntropyBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("account: token entropy: %w", err)
	}
	return hex.EncodeToString(buf) + strings.ReplaceAll(userID.String(), "-", ""), nil
}
