package registrar

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func proberWith(raw string, err error) *Prober {
	return &Prober{
		whoisLookup: func(ctx context.Context, rootDomain string) (string, error) {
			return raw, err
		},
	}
}

func TestProbeIPLiteral(t *testing.T) {
	p := proberWith("", errors.New("must not be called"))

	got := p.Probe(context.Background(), "192.168.1.1")
	assert.True(t, got.IsIP)
	assert.False(t, got.DisposableTLD)
	assert.Empty(t, got.Registrar)
}

func TestProbeTLDSignals(t *testing.T) {
	p := proberWith("", errors.New("offline"))

	got := p.Probe(context.Background(), "something.tk")
	assert.True(t, got.DisposableTLD)
	assert.True(t, got.FreeRegistration)

	got = p.Probe(context.Background(), "something.xyz")
	assert.True(t, got.DisposableTLD)
	assert.False(t, got.FreeRegistration)

	got = p.Probe(context.Background(), "something.com")
	assert.False(t, got.DisposableTLD)
	assert.False(t, got.FreeRegistration)
}

func TestProbeBulkRegistration(t *testing.T) {
	p := proberWith("", errors.New("offline"))

	tests := []struct {
		domain string
		bulk   bool
	}{
		{"mail1234.com", true},
		{"aaaa-mail.com", true},
		{strings.Repeat("x", 26) + ".com", true},
		{"mail123.com", false},
		{"acme-corp.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			assert.Equal(t, tt.bulk, p.Probe(context.Background(), tt.domain).BulkRegistration)
		})
	}
}

func TestProbeWhoisEnrichment(t *testing.T) {
	raw := "Domain Name: SOMETHING.TK\nRegistrar: Freenom World\nCreation Date: 2026-01-01"
	p := proberWith(raw, nil)

	got := p.Probe(context.Background(), "something.tk")
	assert.Equal(t, "freenom world", got.Registrar)
	assert.True(t, got.SuspiciousRegistrar)
}

func TestProbeWhoisUnknownRegistrar(t *testing.T) {
	p := proberWith("Registrar: MarkMonitor Inc.", nil)

	got := p.Probe(context.Background(), "example.com")
	assert.Equal(t, "markmonitor inc.", got.Registrar)
	assert.False(t, got.SuspiciousRegistrar)
}

func TestProbeWhoisFailureIsLocalOnly(t *testing.T) {
	p := proberWith("", errors.New("rate limited"))

	got := p.Probe(context.Background(), "something.tk")
	assert.True(t, got.DisposableTLD, "local signals survive a WHOIS outage")
	assert.Empty(t, got.Registrar)
	assert.Empty(t, got.Error)
}

func TestProbeUsesRootDomain(t *testing.T) {
	var asked string
	p := &Prober{
		whoisLookup: func(ctx context.Context, rootDomain string) (string, error) {
			asked = rootDomain
			return "", nil
		},
	}

	p.Probe(context.Background(), "deep.sub.example.co")
	assert.Equal(t, "example.co", asked)
}
