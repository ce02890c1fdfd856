// Package reputation holds the pure domain-string classifiers: TLD and
// free-hosting reputation, age heuristics, known-provider membership and
// label-length checks. All rule sets are immutable after init and safe for
// concurrent reads.
package reputation

import (
	"strings"

	"github.com/okorotenko/email-risk/pkg/types"
)

var highRiskTLDs = map[string]struct{}{
	"tk": {}, "ml": {}, "ga": {}, "cf": {}, "xyz": {}, "online": {},
	"site": {}, "tech": {}, "club": {}, "info": {}, "biz": {}, "us": {},
	"cc": {}, "tv": {}, "ws": {}, "me": {}, "nu": {}, "be": {},
}

var legitimateTLDs = map[string]struct{}{
	"com": {}, "org": {}, "net": {}, "edu": {}, "gov": {}, "mil": {}, "int": {},
}

// freeHostingPatterns are matched as substrings of the whole domain. This is
// deliberately imprecise (a legitimate domain containing "wix" matches too);
// the behaviour is part of the heuristic's contract and kept as is.
var freeHostingPatterns = []string{
	"blogspot", "wordpress", "wix", "weebly", "squarespace",
	"github.io", "herokuapp", "netlify", "vercel",
}

// Classify computes the reputation signals for a domain. A TLD absent from
// both sets is neutral, neither high-risk nor legitimate.
func Classify(domain string) types.ReputationCheck {
	lower := strings.ToLower(domain)
	labels := strings.Split(lower, ".")
	tld := labels[len(labels)-1]

	_, highRisk := highRiskTLDs[tld]
	_, legit := legitimateTLDs[tld]

	return types.ReputationCheck{
		TLD:                  tld,
		IsHighRiskTLD:        highRisk,
		IsLegitimateProvider: legit,
		IsFreeHosting:        containsAny(lower, freeHostingPatterns),
		DomainLength:         len(domain),
		SubdomainCount:       len(labels) - 2,
		HasNumbers:           strings.ContainsAny(domain, "0123456789"),
		HasDashes:            strings.Contains(domain, "-"),
	}
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
