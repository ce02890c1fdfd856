package dnscheck

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/okorotenko/email-risk/pkg/types"
)

// suspiciousMXHosts flag a lone MX record pointing at a relay favoured by
// disposable-mail operators.
var suspiciousMXHosts = []string{
	"mail.ru", "yandex.ru", "guerrillamail.com", "tempmail.org",
}

// Prober resolves MX, A and TXT records for a domain. The lookup functions
// are swappable so tests can run without a network.
type Prober struct {
	lookupMX  func(ctx context.Context, domain string) ([]*net.MX, error)
	lookupA   func(ctx context.Context, domain string) ([]string, error)
	lookupTXT func(ctx context.Context, domain string) ([]string, error)
}

// NewProber builds a Prober on top of the given resolver.
func NewProber(resolver *net.Resolver) *Prober {
	return &Prober{
		lookupMX:  resolver.LookupMX,
		lookupA:   resolver.LookupHost,
		lookupTXT: resolver.LookupTXT,
	}
}

// Probe issues the three resolutions concurrently and joins them with a
// settle-all barrier: a failure in one lookup never cancels the others, and
// whichever records resolved are used. The result never carries a Go error
// across this boundary; total failure is reported as the dns_error flag.
func (p *Prober) Probe(ctx context.Context, domain string) types.DNSCheck {
	var wg sync.WaitGroup
	var mxRecords []*net.MX
	var aRecords, txtRecords []string
	var mxErr, aErr, txtErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		mxRecords, mxErr = p.lookupMX(ctx, domain)
	}()
	go func() {
		defer wg.Done()
		aRecords, aErr = p.lookupA(ctx, domain)
	}()
	go func() {
		defer wg.Done()
		txtRecords, txtErr = p.lookupTXT(ctx, domain)
	}()
	wg.Wait()

	// Total resolution failure (NXDOMAIN and the like) settles as a defined
	// failure value, not an error: undeliverable and flagged.
	if mxErr != nil && aErr != nil && txtErr != nil {
		return types.DNSCheck{
			SuspiciousFlags: []string{"dns_error"},
			DNSValid:        false,
		}
	}

	// Individually failed lookups settle as empty record sets.
	if mxErr != nil {
		mxRecords = nil
	}
	if aErr != nil {
		aRecords = nil
	}
	if txtErr != nil {
		txtRecords = nil
	}

	flags := []string{}
	if len(mxRecords) == 0 {
		flags = append(flags, "no_mx_records")
	}
	if len(mxRecords) == 1 {
		host := strings.ToLower(mxRecords[0].Host)
		for _, sus := range suspiciousMXHosts {
			if strings.Contains(host, sus) {
				flags = append(flags, "suspicious_mx")
				break
			}
		}
	}
	txt := strings.ToLower(strings.Join(txtRecords, " "))
	if strings.Contains(txt, "temporary") || strings.Contains(txt, "disposable") || strings.Contains(txt, "free") {
		flags = append(flags, "suspicious_txt")
	}

	hosts := make([]string, 0, len(mxRecords))
	for _, mx := range mxRecords {
		hosts = append(hosts, strings.TrimSuffix(mx.Host, "."))
	}

	return types.DNSCheck{
		HasMX:           len(mxRecords) > 0,
		HasA:            len(aRecords) > 0,
		MXCount:         len(mxRecords),
		MXRecords:       hosts,
		SuspiciousFlags: flags,
		DNSValid:        len(mxRecords) > 0 && len(aRecords) > 0,
	}
}
