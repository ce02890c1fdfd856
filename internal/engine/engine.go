// Package engine is the risk-assessment core: it fans out the probe battery
// for one email address, joins the results with a settle-all barrier, folds
// them into a weighted risk score and derives the policy recommendation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/badoux/checkmail"

	"github.com/okorotenko/email-risk/internal/logger"
	"github.com/okorotenko/email-risk/internal/metrics"
	"github.com/okorotenko/email-risk/internal/pattern"
	"github.com/okorotenko/email-risk/internal/reputation"
	"github.com/okorotenko/email-risk/internal/trusted"
	"github.com/okorotenko/email-risk/pkg/types"
)

// ErrInvalidEmail is returned for malformed input. It is the only terminal
// error a validation can produce; probe failures are absorbed into the
// CheckSet.
var ErrInvalidEmail = errors.New("invalid email format")

// DisposableLookup resolves a domain against the disposable-domain store.
type DisposableLookup interface {
	Lookup(ctx context.Context, domain string) types.DisposableCheck
}

// DNSProber resolves MX/A/TXT signals for a domain.
type DNSProber interface {
	Probe(ctx context.Context, domain string) types.DNSCheck
}

// SMTPProber tests reachability of a domain's primary mail exchanger.
type SMTPProber interface {
	Probe(ctx context.Context, domain string) types.SMTPCheck
}

// RegistrarProber evaluates registration-level signals for a domain.
type RegistrarProber interface {
	Probe(ctx context.Context, domain string) types.RegistrarCheck
}

// Recorder receives the finished validation for analytics. Implementations
// must be fire-and-forget: a recorder failure never surfaces to the caller.
type Recorder interface {
	Record(rec types.AnalyticsRecord)
}

// Engine wires the probes together. Construct with New.
type Engine struct {
	disposable DisposableLookup
	dns        DNSProber
	smtp       SMTPProber
	registrar  RegistrarProber
	recorder   Recorder
}

// New creates an Engine. recorder may be nil, which disables analytics.
func New(disposable DisposableLookup, dns DNSProber, smtp SMTPProber, registrarProber RegistrarProber, recorder Recorder) *Engine {
	return &Engine{
		disposable: disposable,
		dns:        dns,
		smtp:       smtp,
		registrar:  registrarProber,
		recorder:   recorder,
	}
}

// Validate assesses one email address and returns the full report. The only
// error it returns is ErrInvalidEmail; every probe failure is recovered into
// the CheckSet and scored as neutral.
func (e *Engine) Validate(ctx context.Context, email string, metadata map[string]string, strictMode bool) (*types.Report, error) {
	email = strings.TrimSpace(email)
	localPart, domain, err := splitAddress(email)
	if err != nil {
		return nil, err
	}

	metrics.ValidationsTotal.Inc()

	// Fast path: known-trusted providers skip the whole pipeline.
	if provider, ok := trusted.Lookup(domain); ok {
		logger.Debugf("trusted provider %s, skipping probes", domain)
		metrics.TrustedHits.Inc()
		report := trusted.Report(email, provider)
		e.record(domain, report, metadata)
		return report, nil
	}

	checks := e.runProbes(ctx, localPart, domain)

	score := Score(checks)
	level := types.RiskLevelFor(score)
	metrics.RiskLevels.WithLabelValues(level).Inc()

	rec := Recommend(score, checks, strictMode)

	valid := score < 70
	if strictMode {
		valid = score < 30
	}

	report := &types.Report{
		Email:             email,
		IsValid:           valid,
		IsTrustedProvider: false,
		Checks:            *checks,
		RiskFactors:       Factors(checks),
		RiskScore:         score,
		RiskLevel:         level,
		AllowRegistration: rec.AllowRegistration,
		Recommendations:   rec,
	}

	e.record(domain, report, metadata)
	return report, nil
}

// runProbes executes all ten probes concurrently and joins them with a
// settle-all barrier: every task either writes its result or has its panic
// captured as an in-band error marker. No task can cancel a sibling, and the
// barrier does not release until every task settled.
func (e *Engine) runProbes(ctx context.Context, localPart, domain string) *types.CheckSet {
	checks := &types.CheckSet{}
	var wg sync.WaitGroup

	run := func(probe string, task func(), onFailure func(msg string)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					msg := fmt.Sprint(r)
					logger.Errorf("probe %s failed: %s", probe, msg)
					metrics.ProbeFailures.WithLabelValues(probe).Inc()
					onFailure(msg)
				}
			}()
			task()
		}()
	}

	run("disposableDomain",
		func() { checks.DisposableDomain = e.disposable.Lookup(ctx, domain) },
		func(msg string) { checks.DisposableDomain = types.DisposableCheck{Error: msg} })
	run("dnsRecords",
		func() { checks.DNSRecords = e.dns.Probe(ctx, domain) },
		func(msg string) { checks.DNSRecords = types.DNSCheck{Error: msg} })
	run("emailPattern",
		func() { checks.EmailPattern = pattern.Analyze(localPart) },
		func(msg string) { checks.EmailPattern = types.PatternCheck{Error: msg} })
	run("domainReputation",
		func() { checks.DomainReputation = reputation.Classify(domain) },
		func(msg string) { checks.DomainReputation = types.ReputationCheck{Error: msg} })
	run("domainAge",
		func() { checks.DomainAge = reputation.EstimateAge(domain) },
		func(msg string) { checks.DomainAge = types.AgeCheck{Error: msg} })
	run("smtpServer",
		func() { checks.SMTPServer = e.smtp.Probe(ctx, domain) },
		func(msg string) { checks.SMTPServer = types.SMTPCheck{Error: msg} })
	run("domainRegistrar",
		func() { checks.DomainRegistrar = e.registrar.Probe(ctx, domain) },
		func(msg string) { checks.DomainRegistrar = types.RegistrarCheck{Error: msg} })
	run("suspiciousPatterns",
		func() { checks.SuspiciousPatterns = pattern.Suspicious(localPart) },
		func(msg string) { checks.SuspiciousPatterns = types.SuspiciousCheck{Error: msg} })
	run("commonProviders",
		func() { checks.CommonProviders = reputation.Providers(domain) },
		func(msg string) { checks.CommonProviders = types.ProviderCheck{Error: msg} })
	run("domainLength",
		func() { checks.DomainLength = reputation.Length(domain) },
		func(msg string) { checks.DomainLength = types.LengthCheck{Error: msg} })

	wg.Wait()
	return checks
}

// record hands the finished validation to the analytics recorder. The
// recorder itself is fire-and-forget; this only assembles the row.
func (e *Engine) record(domain string, report *types.Report, metadata map[string]string) {
	if e.recorder == nil {
		return
	}
	now := time.Now().UTC()
	day := now.Format("2006-01-02")
	lower := strings.ToLower(domain)
	e.recorder.Record(types.AnalyticsRecord{
		ID:        fmt.Sprintf("%s-%s-%d", day, lower, now.UnixNano()),
		Date:      day,
		Domain:    lower,
		RiskScore: report.RiskScore,
		Timestamp: now,
		Metadata:  metadata,
		Checks:    report.Checks,
	})
}

// splitAddress validates the syntax and splits the address at the last "@".
// The local part keeps its case: several pattern signals depend on it.
func splitAddress(email string) (localPart, domain string, err error) {
	if email == "" {
		return "", "", ErrInvalidEmail
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return "", "", ErrInvalidEmail
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", "", ErrInvalidEmail
	}
	localPart, domain = email[:at], strings.ToLower(email[at+1:])
	if !strings.Contains(domain, ".") || strings.ContainsAny(email, " \t") {
		return "", "", ErrInvalidEmail
	}
	return localPart, domain, nil
}
