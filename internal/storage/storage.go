package storage

import (
	"context"
	"errors"

	"github.com/okorotenko/email-risk/pkg/types"
)

// ErrNotFound is returned by GetDomain when the domain is absent from the
// store. Callers must treat absence as "not disposable", never as an outage.
var ErrNotFound = errors.New("domain not found")

// DomainStore is the persistence interface for the disposable-domain list.
// The validation engine only ever performs single-key point reads; the
// updater job performs batched writes plus one metadata record per run.
type DomainStore interface {
	// GetDomain retrieves a disposable-domain record by lowercase domain key.
	// Returns ErrNotFound when the domain is not listed.
	GetDomain(ctx context.Context, domain string) (*types.DomainRecord, error)

	// PutDomains writes a batch of records. Partial failures surface as an
	// error for the whole batch so the caller can retry it.
	PutDomains(ctx context.Context, records []types.DomainRecord) error

	// PutMetadata stores the summary of a refresh run.
	PutMetadata(ctx context.Context, meta types.RefreshMetadata) error

	// GetMetadata retrieves the summary of the last refresh run, or
	// ErrNotFound when no refresh has completed yet.
	GetMetadata(ctx context.Context) (*types.RefreshMetadata, error)
}
