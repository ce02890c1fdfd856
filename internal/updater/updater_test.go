package updater

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okorotenko/email-risk/internal/cache"
	"github.com/okorotenko/email-risk/internal/storage"
	"github.com/okorotenko/email-risk/pkg/types"
)

func TestValidDomain(t *testing.T) {
	tests := []struct {
		domain string
		valid  bool
	}{
		{"tempmail.org", true},
		{"sub.temp-mail.co.uk", true},
		{"single", true},
		{"", false},
		{".leadingdot.com", false},
		{"trailingdot.com.", false},
		{"double..dot.com", false},
		{"-leadinghyphen.com", false},
		{"under_score.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidDomain(tt.domain))
		})
	}
}

func TestParseTextList(t *testing.T) {
	body := "tempmail.org\n# a comment\n  throwaway.tk  \n\n// another comment\n/* block */\nspam.ml"
	assert.Equal(t, []string{"tempmail.org", "throwaway.tk", "spam.ml"}, parseTextList(body))
}

func TestRunMergesSourcesAndGeneratesPatterns(t *testing.T) {
	text := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tempmail.org\n# comment\nthrowaway.tk\nnot a domain!!\n"))
	}))
	defer text.Close()
	jsonSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["tempmail.org", "burner.example"]`))
	}))
	defer jsonSrv.Close()

	store := storage.NewMemoryStore(cache.NewInMemoryCache())
	u := New(store)
	u.sources = []source{
		{"Text Source", text.URL, false},
		{"JSON Source", jsonSrv.URL, true},
	}

	res, err := u.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Zero(t, res.ErrorCount)
	assert.Equal(t, res.TotalDomains, res.SuccessCount)

	// First listing source wins the attribution; the invalid line is dropped.
	rec, err := store.GetDomain(context.Background(), "tempmail.org")
	require.NoError(t, err)
	assert.Equal(t, "Text Source", rec.Source)

	rec, err = store.GetDomain(context.Background(), "burner.example")
	require.NoError(t, err)
	assert.Equal(t, "JSON Source", rec.Source)

	_, err = store.GetDomain(context.Background(), "not a domain!!")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Generated permutations land alongside the fetched lists.
	rec, err = store.GetDomain(context.Background(), "mailinator.com")
	require.NoError(t, err)
	assert.Equal(t, "generated", rec.Source)
	_, err = store.GetDomain(context.Background(), "temp7.tk")
	require.NoError(t, err)

	// Metadata describes the run.
	meta, err := store.GetMetadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res.TotalDomains, meta.TotalDomains)
	assert.Len(t, meta.Sources, 3)
}

func TestRunToleratesFailedSource(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tempmail.org\n"))
	}))
	defer ok.Close()
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer broken.Close()

	store := storage.NewMemoryStore(cache.NewInMemoryCache())
	u := New(store)
	u.sources = []source{
		{"Broken Source", broken.URL, false},
		{"OK Source", ok.URL, false},
	}

	res, err := u.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success, "a failed source degrades, not fails, the run")

	rec, err := store.GetDomain(context.Background(), "tempmail.org")
	require.NoError(t, err)
	assert.Equal(t, "OK Source", rec.Source)
}

// flakyStore fails the first write attempts for each batch, then succeeds.
type flakyStore struct {
	storage.DomainStore
	mu       sync.Mutex
	failures int
	attempts int
}

func (f *flakyStore) PutDomains(ctx context.Context, records []types.DomainRecord) error {
	f.mu.Lock()
	f.attempts++
	fail := f.failures > 0
	if fail {
		f.failures--
	}
	f.mu.Unlock()
	if fail {
		return errors.New("transient write failure")
	}
	return f.DomainStore.PutDomains(ctx, records)
}

func TestWriteRetriesWithBackoff(t *testing.T) {
	inner := storage.NewMemoryStore(cache.NewInMemoryCache())
	store := &flakyStore{DomainStore: inner, failures: 2}

	u := New(store)
	start := time.Now()
	err := u.putWithRetry(context.Background(), []types.DomainRecord{
		{Domain: "tempmail.org", Source: "generated", LastUpdated: time.Now().UTC().Format(time.RFC3339)},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, store.attempts)
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond, "100ms then 200ms backoff")

	_, err = inner.GetDomain(context.Background(), "tempmail.org")
	assert.NoError(t, err)
}

func TestWriteGivesUpAfterMaxRetries(t *testing.T) {
	inner := storage.NewMemoryStore(cache.NewInMemoryCache())
	store := &flakyStore{DomainStore: inner, failures: 10}

	u := New(store)
	err := u.putWithRetry(context.Background(), []types.DomainRecord{
		{Domain: "tempmail.org", Source: "generated", LastUpdated: time.Now().UTC().Format(time.RFC3339)},
	})
	require.Error(t, err)
	assert.Equal(t, maxRetries, store.attempts)
}
