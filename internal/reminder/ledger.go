package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ledger records which reminders were already attempted. Claim returns true
// exactly once per key within ttl; later claims return false.
type Ledger interface {
	Claim(ctx context.Context, key string) (bool, error)
}

// LedgerKey identifies one reminder of one deadline. A new deadline gets new keys.
func LedgerKey(pt PendingTimer) string {
	return fmt.Sprintf("%s:%d:%d", pt.ApplicationID, pt.Offset, pt.Deadline.Unix())
}

type MemoryLedger struct {
	ttl time.Duration
	now func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewMemoryLedger(ttl time.Duration) *MemoryLedger {
	return &MemoryLedger{ttl: ttl, now: time.Now, seen: map[string]time.Time{}}
}

func (l *MemoryLedger) Claim(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	// sweep on write; the map only holds a few keys per live deadline
	for k, exp := range l.seen {
		if now.After(exp) {
			delete(l.seen, k)
		}
	}
	if _, ok := l.seen[key]; ok {
		return false, nil
	}
	l.seen[key] = now.Add(l.ttl)
	return true, nil
}

const redisLedgerPrefix = "reminder:sent:"

// RedisLedger keeps claims across restarts so a recovery scan after a crash
// doesn't resend a reminder that already went out.
type RedisLedger struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLedger(rdb *redis.Client, ttl time.Duration) *RedisLedger {
	return &RedisLedger{rdb: rdb, ttl: ttl}
}

func (l *RedisLedger) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, redisLedgerPrefix+key, time.Now().Unix(), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("ledger claim: %w", err)
	}
	return ok, nil
}
