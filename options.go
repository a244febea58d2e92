package domainkit

import (
	"net/http"
	"time"
)

// CheckerOptions configures the checker as a whole.
type CheckerOptions struct {
	// DNSServer routes all DNS queries to a custom server
	// ("host" or "host:port"). Empty means the system resolver.
	DNSServer string
	// GlobalTimeout bounds one whole Check call. Default: 15s
	GlobalTimeout time.Duration
}

func defaultCheckerOptions() CheckerOptions {
	return CheckerOptions{
		GlobalTimeout: 15 * time.Second,
	}
}

// MXOptions configures the MX probe.
type MXOptions struct {
	// Timeout is the maximum time for the MX lookup. Default: 5s
	Timeout time.Duration
}

func defaultMXOptions() MXOptions {
	return MXOptions{Timeout: 5 * time.Second}
}

// SPFOptions configures the SPF probe.
type SPFOptions struct {
	// Timeout is the maximum time for the TXT lookup. Default: 5s
	Timeout time.Duration
}

func defaultSPFOptions() SPFOptions {
	return SPFOptions{Timeout: 5 * time.Second}
}

// DKIMOptions configures the DKIM selector probe.
type DKIMOptions struct {
	// Selectors overrides the built-in candidate list. Order matters:
	// probing stops at the first selector with a DKIM-looking record.
	Selectors []string
	// Timeout applies per selector attempt. Default: 3s
	Timeout time.Duration
}

func defaultDKIMOptions() DKIMOptions {
	return DKIMOptions{Timeout: 3 * time.Second}
}

// DMARCOptions configures the DMARC probe.
type DMARCOptions struct {
	// Timeout is the maximum time for the TXT lookup. Default: 5s
	Timeout time.Duration
}

func defaultDMARCOptions() DMARCOptions {
	return DMARCOptions{Timeout: 5 * time.Second}
}

// WhoisOptions configures the registration-age probe.
type WhoisOptions struct {
	// Timeout is the maximum time for one gateway fetch. Default: 10s
	Timeout time.Duration
	// CacheTTL is the freshness window of the per-domain cache. Default: 1h
	CacheTTL time.Duration
	// GatewayURL is a printf template with one %s verb for the domain.
	// Default: "https://www.whois.com/whois/%s"
	GatewayURL string
	// HTTPClient overrides the default client when non-nil.
	HTTPClient *http.Client
}

func defaultWhoisOptions() WhoisOptions {
	return WhoisOptions{
		Timeout:    10 * time.Second,
		CacheTTL:   time.Hour,
		GatewayURL: "https://www.whois.com/whois/%s",
	}
}

// ConcurrencyOptions configures concurrent processing for CheckMany.
type ConcurrencyOptions struct {
	// Workers is the number of concurrent goroutines. Default: 5
	Workers int
}
