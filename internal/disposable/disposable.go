// Package disposable answers "is this domain a known disposable provider"
// with an exact point lookup against the domain store. The store is
// populated by the updater job; this package is read-only against it.
package disposable

import (
	"context"
	"errors"
	"strings"

	"github.com/okorotenko/email-risk/internal/storage"
	"github.com/okorotenko/email-risk/pkg/types"
)

// Checker wraps a DomainStore for validation-time lookups.
type Checker struct {
	store storage.DomainStore
}

// NewChecker creates a Checker over the given store.
func NewChecker(store storage.DomainStore) *Checker {
	return &Checker{store: store}
}

// Lookup checks the domain against the store. Store failures fail open: the
// domain reads as not disposable, with the error recorded in-band. Absence
// of information is "not found", never "disposable".
func (c *Checker) Lookup(ctx context.Context, domain string) types.DisposableCheck {
	rec, err := c.store.GetDomain(ctx, strings.ToLower(domain))
	if errors.Is(err, storage.ErrNotFound) {
		return types.DisposableCheck{IsDisposable: false}
	}
	if err != nil {
		return types.DisposableCheck{IsDisposable: false, Error: err.Error()}
	}

	return types.DisposableCheck{
		IsDisposable: true,
		Source:       rec.Source,
		LastUpdated:  rec.LastUpdated,
	}
}
