package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newThrottle(t *testing.T, max int, window time.Duration) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client, max, window), mr
}

func TestLoginThrottle_BlocksAfterMaxAttempts(t *testing.T) {
	th, _ := newThrottle(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := th.RecordFailure(ctx, "a@b.com"); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	blocked, err := th.Blocked(ctx, "a@b.com")
	if err != nil || blocked {
		t.Fatalf("expected not blocked after 2 failures, got blocked=%v err=%v", blocked, err)
	}

	if err := th.RecordFailure(ctx, "A@B.com "); err != nil {
		t.Fatalf("record: %v", err)
	}
	blocked, err = th.Blocked(ctx, "a@b.com")
	if err != nil || !blocked {
		t.Fatalf("expected blocked after 3 failures, got blocked=%v err=%v", blocked, err)
	}
}

func TestLoginThrottle_UnknownEmailNotBlocked(t *testing.T) {
	th, _ := newThrottle(t, 3, time.Minute)

	blocked, err := th.Blocked(context.Background(), "nobody@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocked {
		t.Error("expected not blocked")
	}
}

func TestLoginThrottle_WindowExpires(t *testing.T) {
	th, mr := newThrottle(t, 1, time.Minute)
	ctx := context.Background()

	if err := th.RecordFailure(ctx, "a@b.com"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if ttl := mr.TTL("login:failures:a@b.com"); ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected ttl within window, got %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)

	blocked, err := th.Blocked(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocked {
		t.Error("expected counter to expire with the window")
	}
}

func TestLoginThrottle_WindowNotExtendedByLaterFailures(t *testing.T) {
	th, mr := newThrottle(t, 10, time.Minute)
	ctx := context.Background()

	_ = th.RecordFailure(ctx, "a@b.com")
	mr.FastForward(40 * time.Second)
	_ = th.RecordFailure(ctx, "a@b.com")

	if ttl := mr.TTL("login:failures:a@b.com"); ttl > 20*time.Second {
		t.Errorf("expected the window to keep its original expiry, ttl=%v", ttl)
	}
}

func TestLoginThrottle_Reset(t *testing.T) {
	th, mr := newThrottle(t, 1, time.Minute)
	ctx := context.Background()

	_ = th.RecordFailure(ctx, "a@b.com")
	if err := th.Reset(ctx, "a@b.com"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if mr.Exists("login:failures:a@b.com") {
		t.Error("expected key to be deleted")
	}
}

func TestLoginThrottle_StoreDown(t *testing.T) {
	th, mr := newThrottle(t, 1, time.Minute)
	mr.Close()

	if _, err := th.Blocked(context.Background(), "a@b.com"); err == nil {
		t.Error("expected error when the store is unreachable")
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := Connect(context.Background(), Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_ = client.Close()

	mr.Close()
	if _, err := Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond}); err == nil {
		t.Error("expected ping failure against a stopped server")
	}
}
