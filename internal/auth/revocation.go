package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationRegistry tracks credentials invalidated before their
// natural expiry. Revoke is idempotent; Contains must observe every
// Revoke that completed before it within the same backing store.
type RevocationRegistry interface {
	Contains(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}

// MemoryRegistry is a process-local registry. Entries are never
// collected; they disappear only on process restart, and revocations
// are not visible to other instances. Deployments running more than
// one replica must use the Redis-backed registry instead.
type MemoryRegistry struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{tokens: make(map[string]struct{})}
}

// Contains reports whether the token has been revoked.
func (r *MemoryRegistry) Contains(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tokens[token]
	return ok, nil
}

// Revoke adds the token to the registry.
func (r *MemoryRegistry) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = struct{}{}
	return nil
}

// Len returns the number of revoked tokens held.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}

const redisRevocationPrefix = "revoked_token:"

// RedisRegistry stores revocations in Redis so they are shared across
// instances and survive restarts. Entries carry a TTL equal to the
// token lifetime: once a token is past its natural expiry the
// signature check rejects it anyway, so the entry can lapse.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRegistry creates a registry on top of an existing client.
func NewRedisRegistry(client *redis.Client, tokenTTL time.Duration) *RedisRegistry {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &RedisRegistry{client: client, ttl: tokenTTL}
}

// Contains reports whether the token has been revoked.
func (r *RedisRegistry) Contains(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, redisRevocationPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Revoke adds the token to the registry.
func (r *RedisRegistry) Revoke(ctx context.Context, token string) error {
	return r.client.Set(ctx, redisRevocationPrefix+token, "1", r.ttl).Err()
}
