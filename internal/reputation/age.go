package reputation

import (
	"regexp"
	"strings"

	"github.com/okorotenko/email-risk/pkg/types"
)

// knownEstablished are domains old enough that age is not a risk signal.
var knownEstablished = map[string]struct{}{
	"gmail.com": {}, "yahoo.com": {}, "hotmail.com": {}, "outlook.com": {},
	"aol.com": {}, "protonmail.com": {}, "icloud.com": {}, "me.com": {},
	"live.com": {}, "msn.com": {},
}

// newDomainRes match shapes typical of freshly registered throwaway domains.
var newDomainRes = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}`),
	regexp.MustCompile(`temp`),
	regexp.MustCompile(`test`),
	regexp.MustCompile(`new`),
	regexp.MustCompile(`demo`),
}

// EstimateAge produces the heuristic domain-age signals. This is a pure
// string classifier; no registration data is consulted.
func EstimateAge(domain string) types.AgeCheck {
	_, established := knownEstablished[strings.ToLower(domain)]

	seemsNew := false
	for _, re := range newDomainRes {
		if re.MatchString(domain) {
			seemsNew = true
			break
		}
	}

	confidence := "low"
	if established {
		confidence = "high"
	} else if seemsNew {
		confidence = "medium"
	}

	return types.AgeCheck{
		IsEstablished: established,
		SeemsNew:      seemsNew,
		Confidence:    confidence,
	}
}
