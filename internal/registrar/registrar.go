// Package registrar evaluates registration-level risk signals for a domain:
// local TLD and naming heuristics first, then a best-effort WHOIS lookup.
// The WHOIS call is enrichment only; its failure never fails the probe.
package registrar

import (
	"context"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/likexian/whois"

	"github.com/okorotenko/email-risk/pkg/types"
)

const whoisTimeout = 5 * time.Second

// suspiciousRegistrars are matched as substrings of the registrar name
// reported by WHOIS.
var suspiciousRegistrars = []string{
	"freenom", "dot.tk", "namecheap", "porkbun", "namebright",
	"reg.ru", "nic.ru", "r01.ru", "regtime", "webnic",
}

var disposableTLDs = map[string]struct{}{
	"tk": {}, "ml": {}, "ga": {}, "cf": {}, "gq": {}, "xyz": {}, "top": {},
	"info": {}, "biz": {}, "club": {}, "work": {}, "online": {}, "site": {},
	"website": {}, "space": {},
}

// freeTLDs can be registered at no cost, a favourite of bulk registrations.
var freeTLDs = map[string]struct{}{
	"tk": {}, "ml": {}, "ga": {}, "cf": {}, "gq": {},
}

var (
	digitRunRe  = regexp.MustCompile(`\d{4,}`)
	registrarRe = regexp.MustCompile(`registrar:\s*(.*)`)
)

// Prober performs the registrar check. The WHOIS call is swappable so tests
// can run without a network.
type Prober struct {
	whoisLookup func(ctx context.Context, rootDomain string) (string, error)
}

// NewProber builds a Prober using the WHOIS client with a bounded timeout.
func NewProber() *Prober {
	client := whois.NewClient().SetTimeout(whoisTimeout)
	return &Prober{
		whoisLookup: func(_ context.Context, rootDomain string) (string, error) {
			return client.Whois(rootDomain)
		},
	}
}

// Probe computes the registrar signals. Local heuristics always populate the
// result; the WHOIS enrichment is attempted once and swallowed on failure.
func (p *Prober) Probe(ctx context.Context, domain string) types.RegistrarCheck {
	check := types.RegistrarCheck{}
	lower := strings.ToLower(domain)

	// A literal IP address has no registrar to inspect.
	if net.ParseIP(domain) != nil {
		check.IsIP = true
		return check
	}

	labels := strings.Split(lower, ".")
	tld := labels[len(labels)-1]
	_, check.DisposableTLD = disposableTLDs[tld]
	_, check.FreeRegistration = freeTLDs[tld]

	name := labels[0]
	check.BulkRegistration = digitRunRe.MatchString(name) ||
		hasRepeatedRun(name, 4) ||
		len(name) > 25

	raw, err := p.whoisLookup(ctx, rootDomain(lower))
	if err != nil {
		// Best effort only: return the locally computed fields.
		return check
	}

	if m := registrarRe.FindStringSubmatch(strings.ToLower(raw)); m != nil {
		check.Registrar = strings.TrimSpace(m[1])
		for _, sus := range suspiciousRegistrars {
			if strings.Contains(check.Registrar, sus) {
				check.SuspiciousRegistrar = true
				break
			}
		}
	}

	return check
}

// rootDomain returns the registrable root: the last two labels, unless the
// domain already has two or fewer.
func rootDomain(domain string) string {
	labels := strings.Split(domain, ".")
	if len(labels) <= 2 {
		return domain
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// hasRepeatedRun reports a run of n or more identical characters.
func hasRepeatedRun(s string, n int) bool {
	run := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
