package storage

import (
	"context"
	"strings"
	"sync"

	"github.com/okorotenko/email-risk/internal/cache"
	"github.com/okorotenko/email-risk/pkg/types"
)

// MemoryStore implements DomainStore on the in-process cache. Used in CLI
// mode and in tests, where no Redis is configured.
type MemoryStore struct {
	cache cache.Provider
	mu    sync.RWMutex
	meta  *types.RefreshMetadata
}

// NewMemoryStore creates a DomainStore backed by the given cache provider.
func NewMemoryStore(provider cache.Provider) *MemoryStore {
	return &MemoryStore{cache: provider}
}

// GetDomain performs a point read against the cache.
func (m *MemoryStore) GetDomain(_ context.Context, domain string) (*types.DomainRecord, error) {
	val, ok := m.cache.Get(domainKeyPrefix + strings.ToLower(domain))
	if !ok {
		return nil, ErrNotFound
	}
	rec := val.(types.DomainRecord)
	return &rec, nil
}

// PutDomains stores each record under its lowercase domain key.
func (m *MemoryStore) PutDomains(_ context.Context, records []types.DomainRecord) error {
	for _, rec := range records {
		m.cache.Set(domainKeyPrefix+strings.ToLower(rec.Domain), rec, domainTTL)
	}
	return nil
}

// PutMetadata keeps the last refresh summary in memory.
func (m *MemoryStore) PutMetadata(_ context.Context, meta types.RefreshMetadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta = &meta
	return nil
}

// GetMetadata returns the last refresh summary, if any run has completed.
func (m *MemoryStore) GetMetadata(_ context.Context) (*types.RefreshMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.meta == nil {
		return nil, ErrNotFound
	}
	meta := *m.meta
	return &meta, nil
}
