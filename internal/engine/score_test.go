package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okorotenko/email-risk/pkg/types"
)

// cleanChecks is a baseline set that scores zero: valid DNS, reachable SMTP,
// established domain, no pattern signals. Tests flip individual fields from
// here to verify each weight in isolation.
func cleanChecks() *types.CheckSet {
	return &types.CheckSet{
		DNSRecords: types.DNSCheck{HasMX: true, HasA: true, DNSValid: true},
		SMTPServer: types.SMTPCheck{SMTPAvailable: true},
		DomainAge:  types.AgeCheck{IsEstablished: true},
	}
}

func TestScoreCleanBaseline(t *testing.T) {
	assert.Equal(t, 0, Score(cleanChecks()))
}

func TestScoreSingleSignals(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(c *types.CheckSet)
		delta int
	}{
		{"disposable domain", func(c *types.CheckSet) { c.DisposableDomain.IsDisposable = true }, 50},
		{"invalid dns", func(c *types.CheckSet) { c.DNSRecords.DNSValid = false }, 30},
		{"suspicious dns flags", func(c *types.CheckSet) { c.DNSRecords.SuspiciousFlags = []string{"no_mx_records"} }, 15},
		{"random local part", func(c *types.CheckSet) { c.EmailPattern.IsRandom = true }, 20},
		{"disposable words", func(c *types.CheckSet) { c.EmailPattern.HasDisposableWords = true }, 25},
		{"multiple numbers", func(c *types.CheckSet) { c.EmailPattern.HasMultipleNumbers = true }, 10},
		{"throwaway words", func(c *types.CheckSet) { c.EmailPattern.HasCommonWords = true }, 15},
		{"local part too short", func(c *types.CheckSet) { c.EmailPattern.TooShort = true }, 5},
		{"local part too long", func(c *types.CheckSet) { c.EmailPattern.TooLong = true }, 5},
		{"all numbers", func(c *types.CheckSet) { c.EmailPattern.AllNumbers = true }, 15},
		{"high risk tld", func(c *types.CheckSet) { c.DomainReputation.IsHighRiskTLD = true }, 20},
		{"free hosting", func(c *types.CheckSet) { c.DomainReputation.IsFreeHosting = true }, 15},
		{"digits in domain", func(c *types.CheckSet) { c.DomainReputation.HasNumbers = true }, 5},
		{"seems new", func(c *types.CheckSet) { c.DomainAge.SeemsNew = true }, 10},
		{"not established", func(c *types.CheckSet) { c.DomainAge.IsEstablished = false }, 5},
		{"smtp unavailable", func(c *types.CheckSet) { c.SMTPServer.SMTPAvailable = false }, 15},
		{"spam words", func(c *types.CheckSet) { c.SuspiciousPatterns.CommonSpamWords = true }, 10},
		{"starts with number", func(c *types.CheckSet) { c.SuspiciousPatterns.StartsWithNumber = true }, 5},
		{"domain label too short", func(c *types.CheckSet) { c.DomainLength.TooShort = true }, 5},
		{"domain label too long", func(c *types.CheckSet) { c.DomainLength.TooLong = true }, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cleanChecks()
			tt.mut(c)
			assert.Equal(t, tt.delta, Score(c))
		})
	}
}

func TestScoreNegativeSignalsAndFloor(t *testing.T) {
	c := cleanChecks()
	c.CommonProviders.IsLegitimate = true
	assert.Equal(t, 0, Score(c), "score never goes below zero")

	c = cleanChecks()
	c.CommonProviders.IsBusiness = true
	c.DomainReputation.IsHighRiskTLD = true
	assert.Equal(t, 10, Score(c))
}

func TestScoreClampCeiling(t *testing.T) {
	c := &types.CheckSet{
		DisposableDomain: types.DisposableCheck{IsDisposable: true},
		DNSRecords:       types.DNSCheck{DNSValid: false, SuspiciousFlags: []string{"no_mx_records"}},
		EmailPattern: types.PatternCheck{
			IsRandom:           true,
			HasDisposableWords: true,
			HasMultipleNumbers: true,
			HasCommonWords:     true,
			AllNumbers:         true,
		},
		DomainReputation: types.ReputationCheck{IsHighRiskTLD: true, IsFreeHosting: true, HasNumbers: true},
		DomainAge:        types.AgeCheck{SeemsNew: true},
	}
	assert.Equal(t, 100, Score(c))
}

func TestScoreErroredSlotsAreNeutral(t *testing.T) {
	// A disposable hit with an error marker must not score.
	c := cleanChecks()
	c.DisposableDomain = types.DisposableCheck{IsDisposable: true, Error: "store down"}
	assert.Equal(t, 0, Score(c))

	// An errored DNS slot neither adds the invalid-dns weight nor the flags.
	c = cleanChecks()
	c.DNSRecords = types.DNSCheck{DNSValid: false, SuspiciousFlags: []string{"no_mx_records"}, Error: "probe panic"}
	assert.Equal(t, 0, Score(c))

	// An errored provider slot loses its discount too.
	c = cleanChecks()
	c.CommonProviders = types.ProviderCheck{IsLegitimate: true, Error: "probe panic"}
	c.DomainReputation.IsHighRiskTLD = true
	assert.Equal(t, 20, Score(c))
}

func TestScoreRegistrarIsNeutral(t *testing.T) {
	c := cleanChecks()
	base := Score(c)
	c.DomainRegistrar = types.RegistrarCheck{
		FreeRegistration:    true,
		BulkRegistration:    true,
		SuspiciousRegistrar: true,
		DisposableTLD:       true,
	}
	assert.Equal(t, base, Score(c), "registrar signals are informational only")
}

func TestFactors(t *testing.T) {
	c := cleanChecks()
	c.DisposableDomain.IsDisposable = true
	c.DNSRecords.DNSValid = false
	c.EmailPattern.IsRandom = true
	c.EmailPattern.HasDisposableWords = true
	c.DomainReputation.IsHighRiskTLD = true
	c.SMTPServer.SMTPAvailable = false
	c.CommonProviders.IsLegitimate = true

	assert.Equal(t, []string{
		"Domain is in disposable email database",
		"Invalid or missing DNS records",
		"Username appears randomly generated",
		"Contains disposable email keywords",
		"High-risk top-level domain",
		"SMTP server not accessible",
		"Legitimate email provider",
	}, Factors(c))

	assert.Empty(t, Factors(cleanChecks()))
	assert.NotNil(t, Factors(cleanChecks()))
}
