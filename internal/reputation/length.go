package reputation

import (
	"strings"

	"github.com/okorotenko/email-risk/pkg/types"
)

// Length measures the first label of the domain and flags it as too short,
// too long or optimal.
func Length(domain string) types.LengthCheck {
	main := strings.Split(domain, ".")[0]

	return types.LengthCheck{
		TotalLength:      len(domain),
		MainDomainLength: len(main),
		TooShort:         len(main) < 4,
		TooLong:          len(main) > 25,
		OptimalLength:    len(main) >= 4 && len(main) <= 15,
	}
}
