package engine

import "github.com/okorotenko/email-risk/pkg/types"

// Recommend derives the policy recommendation from the score and check set.
// Strict mode tightens the allow and verification thresholds; the additional
// checks ladder and block reasons are the same in both modes.
func Recommend(score int, c *types.CheckSet, strictMode bool) types.Recommendation {
	allowBelow, verifyFrom := 60, 30
	if strictMode {
		allowBelow, verifyFrom = 20, 10
	}

	rec := types.Recommendation{
		AllowRegistration:   score < allowBelow,
		RequireVerification: score >= verifyFrom,
		AdditionalChecks:    []string{},
	}

	switch {
	case score >= 80:
		rec.AdditionalChecks = append(rec.AdditionalChecks, "manual_review", "phone_verification")
		rec.BlockReason = "High risk - likely disposable email"
	case score >= 60:
		rec.AdditionalChecks = append(rec.AdditionalChecks, "phone_verification", "email_verification")
	case score >= 30:
		rec.AdditionalChecks = append(rec.AdditionalChecks, "email_verification")
	}

	// Hard overrides replace only the score-derived reason; the allow
	// decision stays threshold-derived. DNS applies last: a disposable
	// domain with broken DNS reports the DNS reason.
	if c.DisposableDomain.Error == "" && c.DisposableDomain.IsDisposable {
		rec.BlockReason = "Known disposable email domain"
	}
	if c.DNSRecords.Error == "" && !c.DNSRecords.DNSValid {
		rec.BlockReason = "Invalid email domain"
	}

	return rec
}
