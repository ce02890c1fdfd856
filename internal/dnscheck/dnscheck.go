// Package dnscheck probes a domain's MX, A and TXT records and derives
// mail-deliverability and suspicious-record signals.
package dnscheck

import (
	"context"
	"net"
	"time"
)

const lookupTimeout = 5 * time.Second

// NewResolver returns a resolver bound to the given DNS server address
// (host or host:port). An empty server selects the system resolver.
func NewResolver(server string) *net.Resolver {
	if server == "" {
		return net.DefaultResolver
	}
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}
	return &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			d := net.Dialer{Timeout: lookupTimeout}
			return d.DialContext(ctx, network, server)
		},
	}
}
