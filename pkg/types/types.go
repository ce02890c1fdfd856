package types

import "time"

// Risk levels for a validated email. Bands are contiguous: LOW is a score
// below 30, MEDIUM is 30-69, HIGH is 70 and above.
const (
	RiskLevelLow    = "LOW"
	RiskLevelMedium = "MEDIUM"
	RiskLevelHigh   = "HIGH"
)

// RiskLevelFor maps a clamped risk score onto its band.
func RiskLevelFor(score int) string {
	switch {
	case score < 30:
		return RiskLevelLow
	case score < 70:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

// DisposableCheck is the result of the disposable-domain store lookup.
// A failed lookup is reported with Error set and IsDisposable false: absence
// of information never escalates risk.
type DisposableCheck struct {
	IsDisposable bool   `json:"isDisposable"`
	Source       string `json:"source,omitempty"`      // Which block-list contributed the domain
	LastUpdated  string `json:"lastUpdated,omitempty"` // Timestamp of the store refresh that wrote it
	Error        string `json:"error,omitempty"`
}

// DNSCheck carries the signals derived from MX/A/TXT resolution.
type DNSCheck struct {
	HasMX           bool     `json:"hasMX"`
	HasA            bool     `json:"hasA"`
	MXCount         int      `json:"mxCount"`
	MXRecords       []string `json:"mxRecords,omitempty"`      // Exchange hostnames, priority order
	SuspiciousFlags []string `json:"suspiciousFlags"`          // no_mx_records, suspicious_mx, suspicious_txt, dns_error
	DNSValid        bool     `json:"dnsValid"`                 // MX and A records both present
	Error           string   `json:"error,omitempty"`
}

// PatternCheck holds the local-part heuristics. Every signal is always
// computed; none short-circuits another.
type PatternCheck struct {
	IsRandom           bool   `json:"isRandom"`
	HasMultipleNumbers bool   `json:"hasMultipleNumbers"` // Three or more digits anywhere
	HasRandomNumbers   bool   `json:"hasRandomNumbers"`   // A run of four or more digits
	HasCommonWords     bool   `json:"hasCommonWords"`     // Starts with test/demo/fake/...
	HasSequentialChars bool   `json:"hasSequentialChars"`
	TooShort           bool   `json:"tooShort"`
	TooLong            bool   `json:"tooLong"`
	HasSpecialChars    bool   `json:"hasSpecialChars"`
	AllNumbers         bool   `json:"allNumbers"`
	AllLetters         bool   `json:"allLetters"`
	HasRepeatedChars   bool   `json:"hasRepeatedChars"`
	HasDisposableWords bool   `json:"hasDisposableWords"`
	Error              string `json:"error,omitempty"`
}

// ReputationCheck classifies the domain string against static TLD and
// free-hosting rule sets.
type ReputationCheck struct {
	TLD                  string `json:"tld"`
	IsHighRiskTLD        bool   `json:"isHighRiskTld"`
	IsLegitimateProvider bool   `json:"isLegitimateProvider"`
	IsFreeHosting        bool   `json:"isFreeHosting"`
	DomainLength         int    `json:"domainLength"`
	SubdomainCount       int    `json:"subdomainCount"`
	HasNumbers           bool   `json:"hasNumbers"`
	HasDashes            bool   `json:"hasDashes"`
	Error                string `json:"error,omitempty"`
}

// AgeCheck is a heuristic estimate of domain establishment, not a WHOIS fact.
type AgeCheck struct {
	IsEstablished bool   `json:"isEstablished"`
	SeemsNew      bool   `json:"seemsNew"`
	Confidence    string `json:"confidence"` // high, medium or low
	Error         string `json:"error,omitempty"`
}

// SMTPCheck reports reachability of the domain's primary mail exchanger.
type SMTPCheck struct {
	SMTPAvailable bool   `json:"smtpAvailable"`
	Server        string `json:"server,omitempty"`
	Reason        string `json:"reason,omitempty"` // timeout, connection_failed, no_mx_records, dns_error
	Error         string `json:"error,omitempty"`
}

// RegistrarCheck combines local registration heuristics with a best-effort
// WHOIS lookup. WHOIS failure leaves Registrar empty and never sets Error.
type RegistrarCheck struct {
	FreeRegistration    bool   `json:"freeRegistration"`
	BulkRegistration    bool   `json:"bulkRegistration"`
	SuspiciousRegistrar bool   `json:"suspiciousRegistrar"`
	DisposableTLD       bool   `json:"disposableTLD"`
	IsIP                bool   `json:"isIP"`
	Registrar           string `json:"registrar,omitempty"`
	Error               string `json:"error,omitempty"`
}

// SuspiciousCheck holds secondary local-part shape signals.
type SuspiciousCheck struct {
	HasPlus          bool   `json:"hasPlus"`
	HasDots          bool   `json:"hasDots"`
	HasUnderscore    bool   `json:"hasUnderscore"`
	HasHyphen        bool   `json:"hasHyphen"`
	StartsWithNumber bool   `json:"startsWithNumber"`
	EndsWithNumber   bool   `json:"endsWithNumber"`
	AllCaps          bool   `json:"allCaps"`
	MixedCase        bool   `json:"mixedCase"`
	CommonSpamWords  bool   `json:"commonSpamWords"`
	Error            string `json:"error,omitempty"`
}

// ProviderCheck classifies the domain against the known-provider set. This is
// a scoring adjustment only; it does not bypass probes like the trusted list.
type ProviderCheck struct {
	IsLegitimate bool   `json:"isLegitimate"`
	IsBusiness   bool   `json:"isBusiness"`
	IsPopular    bool   `json:"isPopular"`
	Error        string `json:"error,omitempty"`
}

// LengthCheck flags the first domain label as too short, too long or optimal.
type LengthCheck struct {
	TotalLength      int    `json:"totalLength"`
	MainDomainLength int    `json:"mainDomainLength"`
	TooShort         bool   `json:"tooShort"`
	TooLong          bool   `json:"tooLong"`
	OptimalLength    bool   `json:"optimalLength"`
	Error            string `json:"error,omitempty"`
}

// CheckSet is the complete set of probe results for one validation. Every
// field is populated once the aggregator joins; a probe that failed carries
// its error in-band so the scorer can treat it as neutral.
type CheckSet struct {
	DisposableDomain   DisposableCheck `json:"disposableDomain"`
	DNSRecords         DNSCheck        `json:"dnsRecords"`
	EmailPattern       PatternCheck    `json:"emailPattern"`
	DomainReputation   ReputationCheck `json:"domainReputation"`
	DomainAge          AgeCheck        `json:"domainAge"`
	SMTPServer         SMTPCheck       `json:"smtpServer"`
	DomainRegistrar    RegistrarCheck  `json:"domainRegistrar"`
	SuspiciousPatterns SuspiciousCheck `json:"suspiciousPatterns"`
	CommonProviders    ProviderCheck   `json:"commonProviders"`
	DomainLength       LengthCheck     `json:"domainLength"`
}

// Recommendation is the policy decision derived from the risk score.
type Recommendation struct {
	AllowRegistration   bool     `json:"allowRegistration"`
	RequireVerification bool     `json:"requireVerification"`
	AdditionalChecks    []string `json:"additionalChecks"`
	BlockReason         string   `json:"blockReason,omitempty"`
}

// Report is the full validation result returned to the caller.
type Report struct {
	Email             string         `json:"email"`
	IsValid           bool           `json:"isValid"`
	IsTrustedProvider bool           `json:"isTrustedProvider"`
	Provider          string         `json:"provider,omitempty"`
	Checks            CheckSet       `json:"checks"`
	RiskFactors       []string       `json:"riskFactors"`
	RiskScore         int            `json:"riskScore"`
	RiskLevel         string         `json:"riskLevel"`
	AllowRegistration bool           `json:"allowRegistration"`
	Recommendations   Recommendation `json:"recommendations"`
}

// AnalyticsRecord is the write-once row appended for every validation.
type AnalyticsRecord struct {
	ID        string            `json:"id"`   // date-domain-unixnano, unique per submission
	Date      string            `json:"date"` // Day granularity, YYYY-MM-DD
	Domain    string            `json:"domain"`
	RiskScore int               `json:"riskScore"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Checks    CheckSet          `json:"checks"`
}

// DomainRecord is one entry in the disposable-domain store.
type DomainRecord struct {
	Domain      string `json:"domain"`
	Source      string `json:"source"`
	LastUpdated string `json:"lastUpdated"`
}

// RefreshMetadata summarises one run of the domain-updater job.
type RefreshMetadata struct {
	LastUpdated  string   `json:"lastUpdated"`
	TotalDomains int      `json:"totalDomains"`
	Sources      []string `json:"sources"`
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Errors       []string `json:"errors,omitempty"`
}
