package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	ValidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "email_validations_total",
		Help: "Total email validations performed",
	})

	TrustedHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trusted_provider_hits_total",
		Help: "Validations short-circuited by the trusted-provider fast path",
	})

	RiskLevels = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "risk_level_total",
		Help: "Validation results by risk level",
	}, []string{"level"})

	ProbeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "probe_failures_total",
		Help: "Probe failures recovered by the aggregator",
	}, []string{"probe"})

	AnalyticsWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analytics_write_failures_total",
		Help: "Analytics records dropped due to store errors",
	})

	DomainsRefreshed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "disposable_domains_refreshed_total",
		Help: "Disposable domains written by the updater job",
	})

	RefreshErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "disposable_refresh_errors_total",
		Help: "Errors encountered during disposable-list refresh runs",
	})
)
