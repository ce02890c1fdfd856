package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Query selects the validation rows a report covers. Days is ignored when
// Start and End are both set.
type Query struct {
	Days    int
	Start   string // YYYY-MM-DD, inclusive
	End     string // YYYY-MM-DD, inclusive
	Domain  string
	MinRisk int
	MaxRisk int
}

// Summary is the headline block of a report.
type Summary struct {
	TotalValidations int     `json:"totalValidations"`
	AverageRiskScore float64 `json:"averageRiskScore"`
	UniqueDomains    int     `json:"uniqueDomains"`
	HighRiskShare    float64 `json:"highRiskShare"`
}

// DomainCount is one entry of the top-domains table.
type DomainCount struct {
	Domain      string  `json:"domain"`
	Count       int     `json:"count"`
	AverageRisk float64 `json:"averageRisk"`
}

// DailyPoint is one entry of the daily time series.
type DailyPoint struct {
	Date        string  `json:"date"`
	Count       int     `json:"count"`
	AverageRisk float64 `json:"averageRisk"`
}

// Report is the full analytics response.
type Report struct {
	Period            string         `json:"period"`
	Summary           Summary        `json:"summary"`
	RiskLevels        map[string]int `json:"riskLevels"`
	ScoreDistribution map[string]int `json:"scoreDistribution"`
	TopDomains        []DomainCount  `json:"topDomains"`
	Daily             []DailyPoint   `json:"daily"`
}

const topDomainLimit = 10

// Reporter computes aggregate reports from the email_validations table.
type Reporter struct {
	db *sqlx.DB
}

// NewReporter creates a Reporter over an initialized database handle.
func NewReporter(db *sqlx.DB) *Reporter {
	return &Reporter{db: db}
}

type row struct {
	Date      string `db:"date"`
	Domain    string `db:"domain"`
	RiskScore int    `db:"risk_score"`
}

// Run executes the query and aggregates the matching rows in memory. Result
// sets are daily-scale, so a single scan is cheaper than five SQL rollups.
func (r *Reporter) Run(ctx context.Context, q Query) (*Report, error) {
	start, end, err := q.bounds()
	if err != nil {
		return nil, err
	}

	where := []string{"date >= $1", "date <= $2"}
	args := []interface{}{start, end}
	if q.Domain != "" {
		args = append(args, strings.ToLower(q.Domain))
		where = append(where, fmt.Sprintf("domain = $%d", len(args)))
	}
	if q.MinRisk > 0 {
		args = append(args, q.MinRisk)
		where = append(where, fmt.Sprintf("risk_score >= $%d", len(args)))
	}
	if q.MaxRisk > 0 {
		args = append(args, q.MaxRisk)
		where = append(where, fmt.Sprintf("risk_score <= $%d", len(args)))
	}

	var rows []row
	query := `SELECT to_char(date, 'YYYY-MM-DD') AS date, domain, risk_score
	          FROM email_validations WHERE ` + strings.Join(where, " AND ")
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("analytics query: %w", err)
	}

	return aggregate(rows, start, end), nil
}

func (q Query) bounds() (string, string, error) {
	const layout = "2006-01-02"
	if q.Start != "" && q.End != "" {
		if _, err := time.Parse(layout, q.Start); err != nil {
			return "", "", fmt.Errorf("invalid start date %q", q.Start)
		}
		if _, err := time.Parse(layout, q.End); err != nil {
			return "", "", fmt.Errorf("invalid end date %q", q.End)
		}
		return q.Start, q.End, nil
	}
	days := q.Days
	if days <= 0 {
		days = 7
	}
	now := time.Now().UTC()
	return now.AddDate(0, 0, -(days - 1)).Format(layout), now.Format(layout), nil
}

func aggregate(rows []row, start, end string) *Report {
	report := &Report{
		Period:            fmt.Sprintf("%s to %s", start, end),
		RiskLevels:        map[string]int{"LOW": 0, "MEDIUM": 0, "HIGH": 0},
		ScoreDistribution: map[string]int{},
		TopDomains:        []DomainCount{},
		Daily:             []DailyPoint{},
	}
	if len(rows) == 0 {
		return report
	}

	type bucket struct {
		count int
		sum   int
	}
	domains := map[string]*bucket{}
	days := map[string]*bucket{}
	total, highRisk := 0, 0

	for _, rw := range rows {
		total += rw.RiskScore
		switch {
		case rw.RiskScore >= 70:
			report.RiskLevels["HIGH"]++
			highRisk++
		case rw.RiskScore >= 30:
			report.RiskLevels["MEDIUM"]++
		default:
			report.RiskLevels["LOW"]++
		}
		decile := rw.RiskScore / 10 * 10
		if decile == 100 {
			decile = 90
		}
		report.ScoreDistribution[fmt.Sprintf("%d-%d", decile, decile+9)]++

		d := domains[rw.Domain]
		if d == nil {
			d = &bucket{}
			domains[rw.Domain] = d
		}
		d.count++
		d.sum += rw.RiskScore

		dy := days[rw.Date]
		if dy == nil {
			dy = &bucket{}
			days[rw.Date] = dy
		}
		dy.count++
		dy.sum += rw.RiskScore
	}

	n := len(rows)
	report.Summary = Summary{
		TotalValidations: n,
		AverageRiskScore: round2(float64(total) / float64(n)),
		UniqueDomains:    len(domains),
		HighRiskShare:    round2(float64(highRisk) / float64(n)),
	}

	for domain, b := range domains {
		report.TopDomains = append(report.TopDomains, DomainCount{
			Domain:      domain,
			Count:       b.count,
			AverageRisk: round2(float64(b.sum) / float64(b.count)),
		})
	}
	sort.Slice(report.TopDomains, func(i, j int) bool {
		if report.TopDomains[i].Count != report.TopDomains[j].Count {
			return report.TopDomains[i].Count > report.TopDomains[j].Count
		}
		return report.TopDomains[i].Domain < report.TopDomains[j].Domain
	})
	if len(report.TopDomains) > topDomainLimit {
		report.TopDomains = report.TopDomains[:topDomainLimit]
	}

	for date, b := range days {
		report.Daily = append(report.Daily, DailyPoint{
			Date:        date,
			Count:       b.count,
			AverageRisk: round2(float64(b.sum) / float64(b.count)),
		})
	}
	sort.Slice(report.Daily, func(i, j int) bool { return report.Daily[i].Date < report.Daily[j].Date })

	return report
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
