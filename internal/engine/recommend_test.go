package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okorotenko/email-risk/pkg/types"
)

func TestRecommendThresholds(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		strict  bool
		allow   bool
		verify  bool
		checks  []string
		blocked string
	}{
		{"clean", 0, false, true, false, []string{}, ""},
		{"low edge", 29, false, true, false, []string{}, ""},
		{"medium start", 30, false, true, true, []string{"email_verification"}, ""},
		{"medium end", 59, false, true, true, []string{"email_verification"}, ""},
		{"deny start", 60, false, false, true, []string{"phone_verification", "email_verification"}, ""},
		{"high band", 79, false, false, true, []string{"phone_verification", "email_verification"}, ""},
		{"manual review band", 80, false, false, true, []string{"manual_review", "phone_verification"}, "High risk - likely disposable email"},
		{"maximum", 100, false, false, true, []string{"manual_review", "phone_verification"}, "High risk - likely disposable email"},

		{"strict clean", 9, true, true, false, []string{}, ""},
		{"strict verify", 10, true, true, true, []string{}, ""},
		{"strict deny", 20, true, false, true, []string{}, ""},
		{"strict mid band", 45, true, false, true, []string{"email_verification"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(tt.score, cleanChecks(), tt.strict)
			assert.Equal(t, tt.allow, rec.AllowRegistration, "AllowRegistration")
			assert.Equal(t, tt.verify, rec.RequireVerification, "RequireVerification")
			assert.Equal(t, tt.checks, rec.AdditionalChecks)
			assert.Equal(t, tt.blocked, rec.BlockReason)
		})
	}
}

func TestRecommendStrictIsMonotone(t *testing.T) {
	// Strict mode never allows what normal mode denies.
	for score := 0; score <= 100; score++ {
		normal := Recommend(score, cleanChecks(), false)
		strict := Recommend(score, cleanChecks(), true)
		if !normal.AllowRegistration {
			assert.False(t, strict.AllowRegistration, "score %d", score)
		}
		if normal.RequireVerification {
			assert.True(t, strict.RequireVerification, "score %d", score)
		}
	}
}

func TestRecommendDisposableOverride(t *testing.T) {
	c := cleanChecks()
	c.DisposableDomain.IsDisposable = true

	// The override replaces only the reason; the allow decision remains a
	// pure function of the score. A disposable hit netting below the allow
	// threshold still registers, with the reason attached.
	rec := Recommend(30, c, false)
	assert.True(t, rec.AllowRegistration)
	assert.Equal(t, "Known disposable email domain", rec.BlockReason)

	// At the manual-review band the disposable reason replaces the generic one.
	rec = Recommend(85, c, false)
	assert.False(t, rec.AllowRegistration)
	assert.Equal(t, "Known disposable email domain", rec.BlockReason)
}

func TestRecommendDNSOverrideWinsLast(t *testing.T) {
	c := cleanChecks()
	c.DisposableDomain.IsDisposable = true
	c.DNSRecords.DNSValid = false

	rec := Recommend(85, c, false)
	assert.False(t, rec.AllowRegistration)
	assert.Equal(t, "Invalid email domain", rec.BlockReason)

	// Below the deny threshold the reason is informational, not a block.
	rec = Recommend(45, c, false)
	assert.True(t, rec.AllowRegistration)
	assert.Equal(t, "Invalid email domain", rec.BlockReason)
}

func TestRecommendErroredOverridesIgnored(t *testing.T) {
	c := cleanChecks()
	c.DisposableDomain = types.DisposableCheck{IsDisposable: true, Error: "store down"}
	c.DNSRecords = types.DNSCheck{DNSValid: false, Error: "probe panic"}

	rec := Recommend(10, c, false)
	assert.True(t, rec.AllowRegistration)
	assert.Empty(t, rec.BlockReason)
}
