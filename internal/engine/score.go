package engine

import "github.com/okorotenko/email-risk/pkg/types"

// rule is one scoring contribution. Every predicate is gated on the owning
// check having settled without an error marker, so a failed probe is neutral.
type rule struct {
	when  func(c *types.CheckSet) bool
	delta int
}

var rules = []rule{
	{func(c *types.CheckSet) bool { return c.DisposableDomain.Error == "" && c.DisposableDomain.IsDisposable }, 50},
	{func(c *types.CheckSet) bool { return c.DNSRecords.Error == "" && !c.DNSRecords.DNSValid }, 30},
	{func(c *types.CheckSet) bool { return c.DNSRecords.Error == "" && len(c.DNSRecords.SuspiciousFlags) > 0 }, 15},
	{func(c *types.CheckSet) bool { return c.EmailPattern.Error == "" && c.EmailPattern.IsRandom }, 20},
	{func(c *types.CheckSet) bool { return c.EmailPattern.Error == "" && c.EmailPattern.HasDisposableWords }, 25},
	{func(c *types.CheckSet) bool { return c.EmailPattern.Error == "" && c.EmailPattern.HasMultipleNumbers }, 10},
	{func(c *types.CheckSet) bool { return c.EmailPattern.Error == "" && c.EmailPattern.HasCommonWords }, 15},
	{func(c *types.CheckSet) bool {
		return c.EmailPattern.Error == "" && (c.EmailPattern.TooShort || c.EmailPattern.TooLong)
	}, 5},
	{func(c *types.CheckSet) bool { return c.EmailPattern.Error == "" && c.EmailPattern.AllNumbers }, 15},
	{func(c *types.CheckSet) bool { return c.DomainReputation.Error == "" && c.DomainReputation.IsHighRiskTLD }, 20},
	{func(c *types.CheckSet) bool { return c.DomainReputation.Error == "" && c.DomainReputation.IsFreeHosting }, 15},
	{func(c *types.CheckSet) bool { return c.DomainReputation.Error == "" && c.DomainReputation.HasNumbers }, 5},
	{func(c *types.CheckSet) bool { return c.DomainAge.Error == "" && c.DomainAge.SeemsNew }, 10},
	{func(c *types.CheckSet) bool { return c.DomainAge.Error == "" && !c.DomainAge.IsEstablished }, 5},
	{func(c *types.CheckSet) bool { return c.SMTPServer.Error == "" && !c.SMTPServer.SMTPAvailable }, 15},
	{func(c *types.CheckSet) bool { return c.SuspiciousPatterns.Error == "" && c.SuspiciousPatterns.CommonSpamWords }, 10},
	{func(c *types.CheckSet) bool { return c.SuspiciousPatterns.Error == "" && c.SuspiciousPatterns.StartsWithNumber }, 5},
	{func(c *types.CheckSet) bool { return c.CommonProviders.Error == "" && c.CommonProviders.IsLegitimate }, -20},
	{func(c *types.CheckSet) bool { return c.CommonProviders.Error == "" && c.CommonProviders.IsBusiness }, -10},
	{func(c *types.CheckSet) bool {
		return c.DomainLength.Error == "" && (c.DomainLength.TooShort || c.DomainLength.TooLong)
	}, 5},
}

// Score folds the check set into a risk score clamped to [0, 100].
func Score(c *types.CheckSet) int {
	score := 0
	for _, r := range rules {
		if r.when(c) {
			score += r.delta
		}
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Factors lists the human-readable risk factors present in the check set.
// The one positive factor, a legitimate provider, is included as context.
func Factors(c *types.CheckSet) []string {
	factors := []string{}
	if c.DisposableDomain.Error == "" && c.DisposableDomain.IsDisposable {
		factors = append(factors, "Domain is in disposable email database")
	}
	if c.DNSRecords.Error == "" && !c.DNSRecords.DNSValid {
		factors = append(factors, "Invalid or missing DNS records")
	}
	if c.EmailPattern.Error == "" && c.EmailPattern.IsRandom {
		factors = append(factors, "Username appears randomly generated")
	}
	if c.EmailPattern.Error == "" && c.EmailPattern.HasDisposableWords {
		factors = append(factors, "Contains disposable email keywords")
	}
	if c.DomainReputation.Error == "" && c.DomainReputation.IsHighRiskTLD {
		factors = append(factors, "High-risk top-level domain")
	}
	if c.SMTPServer.Error == "" && !c.SMTPServer.SMTPAvailable {
		factors = append(factors, "SMTP server not accessible")
	}
	if c.CommonProviders.Error == "" && c.CommonProviders.IsLegitimate {
		factors = append(factors, "Legitimate email provider")
	}
	return factors
}
