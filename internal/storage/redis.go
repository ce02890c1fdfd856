package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/okorotenko/email-risk/pkg/types"
)

// Key layout in Redis. Domain records live under a shared prefix so that one
// point read resolves a lookup; the metadata record has a fixed key.
const (
	domainKeyPrefix = "disposable:"
	metadataKey     = "disposable:__metadata__"

	// Records expire if the updater stops running; the refresh job rewrites
	// them well inside this window.
	domainTTL = 30 * 24 * time.Hour
)

// RedisStore implements DomainStore on a Redis instance or cluster.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a DomainStore backed by the given Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// GetDomain performs a point read for the lowercase domain key.
func (r *RedisStore) GetDomain(ctx context.Context, domain string) (*types.DomainRecord, error) {
	key := domainKeyPrefix + strings.ToLower(domain)
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var rec types.DomainRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode domain record: %w", err)
	}
	return &rec, nil
}

// PutDomains writes a batch of records in a single pipeline round trip.
func (r *RedisStore) PutDomains(ctx context.Context, records []types.DomainRecord) error {
	pipe := r.client.Pipeline()
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode domain record %q: %w", rec.Domain, err)
		}
		pipe.Set(ctx, domainKeyPrefix+strings.ToLower(rec.Domain), data, domainTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline exec: %w", err)
	}
	return nil
}

// PutMetadata stores the refresh-run summary. Metadata outlives domain
// records so the last successful run stays inspectable.
func (r *RedisStore) PutMetadata(ctx context.Context, meta types.RefreshMetadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode refresh metadata: %w", err)
	}
	return r.client.Set(ctx, metadataKey, data, 365*24*time.Hour).Err()
}

// GetMetadata retrieves the last refresh-run summary.
func (r *RedisStore) GetMetadata(ctx context.Context) (*types.RefreshMetadata, error) {
	data, err := r.client.Get(ctx, metadataKey).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var meta types.RefreshMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode refresh metadata: %w", err)
	}
	return &meta, nil
}
