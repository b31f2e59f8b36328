package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token, so a
// lock that expired and was re-acquired elsewhere is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out short-lived mutual-exclusion keys in redis.
type Locker struct {
	client *redis.Client
	prefix string
}

// NewLocker builds a Locker whose keys are namespaced by prefix.
func NewLocker(client *redis.Client, prefix string) *Locker {
	return &Locker{client: client, prefix: prefix}
}

// SignupLockKey builds the key guarding signups for one email address.
func SignupLockKey(email string) string {
	return fmt.Sprintf("signup:email:%s:lock", email)
}

// ResetLockKey builds the key guarding reset issuance for one user.
func ResetLockKey(userID string) string {
	return fmt.Sprintf("reset:user:%s:lock", userID)
}

// Acquire tries to take key for ttl. ok is false when someone else holds it.
// The returned release func is safe to call more than once.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error) {
	if l == nil || l.client == nil {
		return func() {}, true, nil
	}
	token, err := lockToken()
	if err != nil {
		return nil, false, err
	}
	full := l.prefix + key
	ok, err = l.client.SetNX(ctx, full, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("platform/cache: acquire %s: %w", key, err)
	}
	if !ok {
		return func() {}, false, nil
	}
	return func() {
		// the request context may already be done
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{full}, token).Err()
	}, true, nil
}

func lockToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("platform/cache: lock token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
