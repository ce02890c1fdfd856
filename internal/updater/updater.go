// Package updater rebuilds the disposable-domain store from community
// blocklists plus a generated set of suspicious name permutations.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/okorotenko/email-risk/internal/logger"
	"github.com/okorotenko/email-risk/internal/metrics"
	"github.com/okorotenko/email-risk/internal/storage"
	"github.com/okorotenko/email-risk/pkg/types"
)

const (
	fetchTimeout = 30 * time.Second
	userAgent    = "email-risk-updater/1.0"
	batchSize    = 500
	maxRetries   = 3
)

// source is one remote blocklist. JSON sources carry a plain array of
// domains; text sources are newline-separated with comment lines.
type source struct {
	Name string
	URL  string
	JSON bool
}

var defaultSources = []source{
	{"Disposable Email Domains", "https://raw.githubusercontent.com/disposable-email-domains/disposable-email-domains/master/disposable_email_blocklist.conf", false},
	{"Ivolo Disposable Domains", "https://raw.githubusercontent.com/ivolo/disposable-email-domains/master/index.json", true},
	{"Martenson Disposable Domains", "https://raw.githubusercontent.com/martenson/disposable-email-domains/master/disposable_email_blocklist.conf", false},
	{"Wesbos Burner Emails", "https://raw.githubusercontent.com/wesbos/burner-email-providers/master/emails.txt", false},
	{"MailChecker List", "https://raw.githubusercontent.com/FGRibreau/mailchecker/master/list.txt", false},
}

var domainRe = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// Result summarizes one refresh run.
type Result struct {
	Success      bool      `json:"success"`
	Timestamp    time.Time `json:"timestamp"`
	TotalDomains int       `json:"totalDomains"`
	SuccessCount int       `json:"successCount"`
	ErrorCount   int       `json:"errorCount"`
	Sources      []string  `json:"sources"`
	Errors       []string  `json:"errors,omitempty"`
}

// Updater collects domains from all sources and writes them to the store.
type Updater struct {
	store   storage.DomainStore
	client  *http.Client
	sources []source
}

// New creates an Updater over the given store with the default source list.
func New(store storage.DomainStore) *Updater {
	return &Updater{
		store:   store,
		client:  &http.Client{Timeout: fetchTimeout},
		sources: defaultSources,
	}
}

// Run executes one full refresh: fetch every source, merge with the
// generated permutations, then write batches with retries. A single failed
// source degrades the run but does not abort it.
func (u *Updater) Run(ctx context.Context) (*Result, error) {
	domains := map[string]string{} // domain -> source name, first writer wins
	var sourceNotes []string

	for _, src := range u.sources {
		added, err := u.loadSource(ctx, src, domains)
		if err != nil {
			logger.Errorf("source %s failed: %v", src.Name, err)
			metrics.RefreshErrors.Inc()
			sourceNotes = append(sourceNotes, fmt.Sprintf("%s: error - %v", src.Name, err))
			continue
		}
		logger.Logf("source %s contributed %d new domains", src.Name, added)
		sourceNotes = append(sourceNotes, fmt.Sprintf("%s: %d new domains", src.Name, added))
	}

	generated := addGenerated(domains)
	sourceNotes = append(sourceNotes, fmt.Sprintf("Generated patterns: %d domains", generated))

	if len(domains) == 0 {
		return nil, fmt.Errorf("no domains collected from any source")
	}

	res := u.write(ctx, domains, sourceNotes)
	return res, nil
}

func (u *Updater) loadSource(ctx context.Context, src source, domains map[string]string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	if src.JSON {
		req.Header.Set("Accept", "application/json")
	} else {
		req.Header.Set("Accept", "text/plain")
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var list []string
	if src.JSON {
		if err := json.Unmarshal(body, &list); err != nil {
			return 0, fmt.Errorf("decode json list: %w", err)
		}
	} else {
		list = parseTextList(string(body))
	}

	added := 0
	for _, d := range list {
		d = strings.ToLower(strings.TrimSpace(d))
		if !ValidDomain(d) {
			continue
		}
		if _, seen := domains[d]; !seen {
			domains[d] = src.Name
			added++
		}
	}
	return added, nil
}

// parseTextList splits a newline-separated blocklist, skipping blanks and
// comment lines.
func parseTextList(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "//") || strings.HasPrefix(line, "/*") {
			continue
		}
		out = append(out, line)
	}
	return out
}

var suspiciousNames = []string{
	"tempmail", "temp-mail", "temporarymail", "temporary-mail",
	"throwaway", "throw-away", "disposable", "fake", "spam",
	"trash", "junk", "dummy", "test", "demo", "sample",

	"10minutemail", "10minute", "tenminutemail", "guerrillamail",
	"mailinator", "mailtrap", "mailhog", "mailcatch",

	"email1", "email2", "email3", "mail1", "mail2", "mail3",
	"temp1", "temp2", "temp3", "test1", "test2", "test3",
}

var patternTLDs = []string{"com", "net", "org", "info", "biz", "us", "tk", "ml", "ga", "cf"}

// addGenerated expands the suspicious name list and numbered variants across
// the common TLDs and merges them into the set. Returns the number added.
func addGenerated(domains map[string]string) int {
	added := 0
	put := func(d string) {
		if !ValidDomain(d) {
			return
		}
		if _, seen := domains[d]; !seen {
			domains[d] = "generated"
			added++
		}
	}
	for _, name := range suspiciousNames {
		for _, tld := range patternTLDs {
			put(name + "." + tld)
		}
	}
	for i := 1; i <= 20; i++ {
		for _, base := range []string{"temp", "mail", "email", "test"} {
			for _, tld := range patternTLDs {
				put(fmt.Sprintf("%s%d.%s", base, i, tld))
			}
		}
	}
	return added
}

// ValidDomain reports whether s is a syntactically plausible domain name.
func ValidDomain(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	return domainRe.MatchString(s)
}

func (u *Updater) write(ctx context.Context, domains map[string]string, sourceNotes []string) *Result {
	now := time.Now().UTC()
	stamp := now.Format(time.RFC3339)
	keys := make([]string, 0, len(domains))
	for d := range domains {
		keys = append(keys, d)
	}
	sort.Strings(keys)

	successCount, errorCount := 0, 0
	var errs []string

	for start := 0; start < len(keys); start += batchSize {
		end := start + batchSize
		if end > len(keys) {
			end = len(keys)
		}
		batch := make([]types.DomainRecord, 0, end-start)
		for _, d := range keys[start:end] {
			batch = append(batch, types.DomainRecord{
				Domain:      d,
				Source:      domains[d],
				LastUpdated: stamp,
			})
		}

		if err := u.putWithRetry(ctx, batch); err != nil {
			logger.Errorf("batch starting at %d failed after retries: %v", start, err)
			metrics.RefreshErrors.Inc()
			errorCount += len(batch)
			errs = append(errs, fmt.Sprintf("batch %d: %v", start/batchSize+1, err))
			continue
		}
		successCount += len(batch)
	}
	metrics.DomainsRefreshed.Add(float64(successCount))

	meta := types.RefreshMetadata{
		LastUpdated:  stamp,
		TotalDomains: len(keys),
		Sources:      sourceNotes,
		SuccessCount: successCount,
		ErrorCount:   errorCount,
		Errors:       errs,
	}
	if err := u.store.PutMetadata(ctx, meta); err != nil {
		logger.Errorf("metadata write failed: %v", err)
		errs = append(errs, fmt.Sprintf("metadata update failed: %v", err))
	}

	return &Result{
		Success:      errorCount == 0,
		Timestamp:    now,
		TotalDomains: len(keys),
		SuccessCount: successCount,
		ErrorCount:   errorCount,
		Sources:      sourceNotes,
		Errors:       errs,
	}
}

// putWithRetry attempts one batch up to maxRetries times with exponential
// backoff between attempts.
func (u *Updater) putWithRetry(ctx context.Context, batch []types.DomainRecord) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<(attempt-1)) * 100 * time.Millisecond
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err = u.store.PutDomains(ctx, batch); err == nil {
			return nil
		}
	}
	return err
}
