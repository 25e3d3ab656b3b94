package importlock

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestMemoryLockerBlocksSecondAcquire(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	release, err := l.Acquire(ctx, "quiz-1", time.Minute)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if _, err := l.Acquire(ctx, "quiz-1", time.Minute); !errors.Is(err, ErrBusy) {
		t.Fatalf("second acquire err = %v, want ErrBusy", err)
	}
	if _, err := l.Acquire(ctx, "quiz-2", time.Minute); err != nil {
		t.Fatalf("other key should be free: %v", err)
	}
	release()
	release()
	if _, err := l.Acquire(ctx, "quiz-1", time.Minute); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
}

func TestMemoryLockerExpires(t *testing.T) {
	now := time.Unix(1000, 0)
	l := &memoryLocker{held: map[string]time.Time{}, now: func() time.Time { return now }}
	ctx := context.Background()

	stale, err := l.Acquire(ctx, "quiz-1", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Second)
	if _, err := l.Acquire(ctx, "quiz-1", time.Second); err != nil {
		t.Fatalf("expired hold should be taken over: %v", err)
	}
	// releasing the stale hold must not free the new one
	stale()
	if _, err := l.Acquire(ctx, "quiz-1", time.Second); !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
}

// TestRedisLocker runs against a real server when REDIS_ADDR is set.
func TestRedisLocker(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	l := NewRedisLocker(client)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "test-quiz", 5*time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := l.Acquire(ctx, "test-quiz", 5*time.Second); !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
	release()
	again, err := l.Acquire(ctx, "test-quiz", 5*time.Second)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	again()
}
