package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateEmptyRange(t *testing.T) {
	report := aggregate(nil, "2026-08-01", "2026-08-07")

	assert.Equal(t, "2026-08-01 to 2026-08-07", report.Period)
	assert.Zero(t, report.Summary.TotalValidations)
	assert.Equal(t, map[string]int{"LOW": 0, "MEDIUM": 0, "HIGH": 0}, report.RiskLevels)
	assert.Empty(t, report.TopDomains)
	assert.NotNil(t, report.TopDomains)
	assert.Empty(t, report.Daily)
}

func TestAggregate(t *testing.T) {
	rows := []row{
		{Date: "2026-08-01", Domain: "acme-corp.com", RiskScore: 10},
		{Date: "2026-08-01", Domain: "acme-corp.com", RiskScore: 20},
		{Date: "2026-08-01", Domain: "tempmail42.xyz", RiskScore: 95},
		{Date: "2026-08-02", Domain: "example.org", RiskScore: 45},
		{Date: "2026-08-02", Domain: "tempmail42.xyz", RiskScore: 70},
		{Date: "2026-08-03", Domain: "example.org", RiskScore: 30},
	}

	report := aggregate(rows, "2026-08-01", "2026-08-03")

	assert.Equal(t, 6, report.Summary.TotalValidations)
	assert.Equal(t, 3, report.Summary.UniqueDomains)
	assert.InDelta(t, 45.0, report.Summary.AverageRiskScore, 0.01)
	assert.InDelta(t, 0.33, report.Summary.HighRiskShare, 0.01)

	assert.Equal(t, map[string]int{"LOW": 2, "MEDIUM": 2, "HIGH": 2}, report.RiskLevels)
	assert.Equal(t, map[string]int{
		"10-19": 1,
		"20-29": 1,
		"30-39": 1,
		"40-49": 1,
		"70-79": 1,
		"90-99": 1,
	}, report.ScoreDistribution)

	// Count descending, domain ascending on ties.
	require.Len(t, report.TopDomains, 3)
	assert.Equal(t, "acme-corp.com", report.TopDomains[0].Domain)
	assert.Equal(t, "example.org", report.TopDomains[1].Domain)
	assert.Equal(t, "tempmail42.xyz", report.TopDomains[2].Domain)
	assert.InDelta(t, 15.0, report.TopDomains[0].AverageRisk, 0.01)
	assert.InDelta(t, 82.5, report.TopDomains[2].AverageRisk, 0.01)

	require.Len(t, report.Daily, 3)
	assert.Equal(t, "2026-08-01", report.Daily[0].Date)
	assert.Equal(t, 3, report.Daily[0].Count)
	assert.Equal(t, "2026-08-03", report.Daily[2].Date)
}

func TestAggregateScoreEdges(t *testing.T) {
	rows := []row{
		{Date: "2026-08-01", Domain: "a.com", RiskScore: 0},
		{Date: "2026-08-01", Domain: "b.com", RiskScore: 100},
	}
	report := aggregate(rows, "2026-08-01", "2026-08-01")

	// A perfect score shares the top decile bucket instead of opening 100-109.
	assert.Equal(t, map[string]int{"0-9": 1, "90-99": 1}, report.ScoreDistribution)
	assert.Equal(t, 1, report.RiskLevels["HIGH"])
	assert.Equal(t, 1, report.RiskLevels["LOW"])
}

func TestQueryBounds(t *testing.T) {
	start, end, err := Query{Start: "2026-08-01", End: "2026-08-07"}.bounds()
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", start)
	assert.Equal(t, "2026-08-07", end)

	_, _, err = Query{Start: "not-a-date", End: "2026-08-07"}.bounds()
	assert.Error(t, err)

	// Days-based windows are inclusive of today.
	start, end, err = Query{Days: 1}.bounds()
	require.NoError(t, err)
	assert.Equal(t, end, start)
}
