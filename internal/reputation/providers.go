package reputation

import (
	"strings"

	"github.com/okorotenko/email-risk/pkg/types"
)

// legitimateProviders is the known consumer-provider set. Distinct from the
// trusted fast-path list: membership here only adjusts the score, it does
// not bypass probes.
var legitimateProviders = map[string]struct{}{
	"gmail.com": {}, "yahoo.com": {}, "hotmail.com": {}, "outlook.com": {},
	"aol.com": {}, "icloud.com": {}, "me.com": {}, "live.com": {},
	"msn.com": {}, "protonmail.com": {}, "tutanota.com": {},
	"fastmail.com": {}, "zoho.com": {}, "yandex.com": {}, "mail.ru": {},
}

// Providers classifies the domain against the known-provider set. A domain
// outside the set that does not read like a mail host counts as a business
// domain, which lowers risk slightly.
func Providers(domain string) types.ProviderCheck {
	lower := strings.ToLower(domain)
	_, legit := legitimateProviders[lower]

	business := !legit &&
		!strings.Contains(lower, "mail") &&
		!strings.Contains(lower, "email")

	return types.ProviderCheck{
		IsLegitimate: legit,
		IsBusiness:   business,
		IsPopular:    legit,
	}
}
