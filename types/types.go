// Package types contains the shared result types for domainkit.
// This package does not import anything from other domainkit packages
// to avoid circular imports.
package types

// Verdict is the three-valued readiness classification of a domain.
type Verdict = string

const (
	VerdictReady    Verdict = "ready"
	VerdictRisky    Verdict = "risky"
	VerdictNotReady Verdict = "notready"
)

// SPFPolicy is the enforcement level derived from the SPF record's
// trailing "all" qualifier.
type SPFPolicy = string

const (
	PolicyHardfail SPFPolicy = "hardfail" // -all
	PolicySoftfail SPFPolicy = "softfail" // ~all
	PolicyNeutral  SPFPolicy = "neutral"  // ?all
	PolicyNone     SPFPolicy = "none"     // no qualifier present
)

// KeyStrength classifies a DKIM public key by its bit length.
type KeyStrength = string

const (
	KeyWeak   KeyStrength = "weak"   // < 1024 bits
	KeyMedium KeyStrength = "medium" // 1024–2047 bits
	KeyStrong KeyStrength = "strong" // >= 2048 bits
)

// MXRecord is a single mail exchange entry.
type MXRecord struct {
	Exchange string `json:"exchange"`
	Priority uint16 `json:"priority"`
}

// MXResult is the outcome of the MX record probe.
// Records is sorted ascending by priority and truncated to the top 3.
type MXResult struct {
	Exists   bool       `json:"exists"`
	Records  []MXRecord `json:"records,omitempty"`
	Provider string     `json:"provider,omitempty"`
}

// SPFResult is the outcome of the SPF record probe.
// Multiple is true when more than one TXT record matched the SPF
// signature, which is itself a misconfiguration worth surfacing.
type SPFResult struct {
	Exists   bool      `json:"exists"`
	Record   string    `json:"record,omitempty"`
	Valid    bool      `json:"valid"`
	Multiple bool      `json:"multiple"`
	Policy   SPFPolicy `json:"policy,omitempty"`
}

// DKIMResult is the outcome of the DKIM selector probe.
// Selector names which well-known selector matched; KeyLength is the
// bit length decoded from the base64 public-key material.
type DKIMResult struct {
	Exists      bool        `json:"exists"`
	Selector    string      `json:"selector,omitempty"`
	Record      string      `json:"record,omitempty"`
	KeyLength   int         `json:"keyLength,omitempty"`
	KeyStrength KeyStrength `json:"keyStrength,omitempty"`
}

// DMARCResult is the outcome of the DMARC record probe.
type DMARCResult struct {
	Exists          bool   `json:"exists"`
	Record          string `json:"record,omitempty"`
	Policy          string `json:"policy,omitempty"`
	SubdomainPolicy string `json:"subdomainPolicy,omitempty"`
	Percentage      int    `json:"percentage,omitempty"`
	Reporting       string `json:"reporting,omitempty"`
}

// WhoisResult is the outcome of the registration-age lookup.
// AgeInDays is nil when the age could not be determined; callers must
// treat "unknown age" differently from "young domain". Err carries a
// diagnostic message when the lookup or parse failed.
type WhoisResult struct {
	CreationDate string `json:"creationDate,omitempty"`
	AgeInDays    *int   `json:"ageInDays,omitempty"`
	RawExcerpt   string `json:"rawExcerpt,omitempty"`
	Err          string `json:"error,omitempty"`
}

// AgeKnown reports whether the lookup produced a usable age figure.
func (w WhoisResult) AgeKnown() bool {
	return w.AgeInDays != nil
}
