package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// incrWithTTL bumps the counter and starts the window on the first failure.
// A counter never exists without an expiry.
var incrWithTTL = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// LoginThrottle counts failed logins per email in a fixed window.
// Key format: login:failures:<lowercased email>
type LoginThrottle struct {
	client      redis.Cmdable
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle blocks an email after maxAttempts failures inside window.
func NewLoginThrottle(client redis.Cmdable, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginThrottle{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Blocked reports whether the email has used up its attempts.
func (t *LoginThrottle) Blocked(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxAttempts, nil
}

// RecordFailure counts one failed attempt.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	if err := incrWithTTL.Run(ctx, t.client, []string{t.key(email)}, t.window.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	return t.client.Del(ctx, t.key(email)).Err()
}

func (t *LoginThrottle) key(email string) string {
	return "login:failures:" + strings.ToLower(strings.TrimSpace(email))
}
