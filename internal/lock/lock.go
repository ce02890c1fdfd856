package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RefreshLock serializes disposable-list refresh runs across replicas using
// a Redis SETNX lease. Without a Redis client the lock is a no-op, so a
// single-instance deployment never blocks on it.
type RefreshLock struct {
	client redis.UniversalClient
	key    string
	token  string
	ttl    time.Duration
}

// New creates a RefreshLock with a unique holder token. client may be nil.
func New(client redis.UniversalClient, key string, ttl time.Duration) *RefreshLock {
	return &RefreshLock{
		client: client,
		key:    key,
		token:  fmt.Sprintf("refresh:%d", time.Now().UnixNano()),
		ttl:    ttl,
	}
}

// Acquire attempts to take the lease. Returns true when this instance may
// run the refresh.
func (l *RefreshLock) Acquire(ctx context.Context) bool {
	if l.client == nil {
		return true
	}
	return l.client.SetNX(ctx, l.key, l.token, l.ttl).Val()
}

// Release drops the lease if this instance still holds it. The compare and
// delete runs as a Lua script so an expired lease taken over by another
// instance is never released by mistake.
func (l *RefreshLock) Release(ctx context.Context) {
	if l.client == nil {
		return
	}
	script := `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		end
		return 0
	`
	l.client.Eval(ctx, script, []string{l.key}, l.token)
}

// Extend pushes the lease expiry out by the configured TTL. Long refresh
// runs call this between batches so the lease survives slow sources.
func (l *RefreshLock) Extend(ctx context.Context) bool {
	if l.client == nil {
		return true
	}
	return l.client.Expire(ctx, l.key, l.ttl).Val()
}
