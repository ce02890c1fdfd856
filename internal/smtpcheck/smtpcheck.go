// Package smtpcheck tests reachability of a domain's primary mail exchanger.
// One TCP connection attempt per validation, bounded by a hard timeout; the
// connection is closed on every outcome path.
package smtpcheck

import (
	"context"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/okorotenko/email-risk/pkg/types"
)

const (
	// Standard SMTP relay port. Submission ports are not probed: the check
	// answers "does this domain run a mail exchanger", nothing more.
	smtpPort = "25"

	defaultTimeout = 5 * time.Second
)

// Prober opens one TCP connection to the best-priority MX host. The lookup
// and dial functions are swappable so tests can run without a network.
type Prober struct {
	lookupMX func(ctx context.Context, domain string) ([]*net.MX, error)
	dial     func(ctx context.Context, network, addr string) (net.Conn, error)
	timeout  time.Duration
	port     string
}

// NewProber builds a Prober that resolves MX records through the given
// resolver. The prober resolves independently of the DNS prober so it can
// also be used standalone.
func NewProber(resolver *net.Resolver) *Prober {
	dialer := net.Dialer{Timeout: defaultTimeout}
	return &Prober{
		lookupMX: resolver.LookupMX,
		dial:     dialer.DialContext,
		timeout:  defaultTimeout,
		port:     smtpPort,
	}
}

// Probe attempts a single TCP connection to the domain's primary MX on the
// mail port. Outcomes are exactly one of: available, timeout,
// connection_failed, no_mx_records or dns_error. No retry is performed.
func (p *Prober) Probe(ctx context.Context, domain string) types.SMTPCheck {
	mxRecords, err := p.lookupMX(ctx, domain)
	if err != nil {
		return types.SMTPCheck{SMTPAvailable: false, Reason: "dns_error"}
	}
	if len(mxRecords) == 0 {
		return types.SMTPCheck{SMTPAvailable: false, Reason: "no_mx_records"}
	}

	// Lowest preference number is the highest-priority exchanger.
	sort.Slice(mxRecords, func(i, j int) bool { return mxRecords[i].Pref < mxRecords[j].Pref })
	host := strings.TrimSuffix(mxRecords[0].Host, ".")

	conn, err := p.dial(ctx, "tcp", net.JoinHostPort(host, p.port))
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return types.SMTPCheck{SMTPAvailable: false, Reason: "timeout"}
		}
		return types.SMTPCheck{SMTPAvailable: false, Reason: "connection_failed"}
	}
	conn.Close()

	return types.SMTPCheck{SMTPAvailable: true, Server: host}
}
