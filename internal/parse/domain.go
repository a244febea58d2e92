package parse

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// Domain is the internal representation of a validated domain name.
// The probe/ packages receive the ASCII form as their query target.
type Domain struct {
	Raw     string // the original, trimmed input
	ASCII   string // Punycode form (for DNS and WHOIS queries)
	Unicode string // Unicode form (for display)
	Valid   bool   // false if Raw is not a plausible domain name
}

// domainPattern accepts one or more alphanumeric-hyphen labels separated
// by dots, ending in an alphabetic TLD of at least two characters.
var domainPattern = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// NewDomain validates and normalizes the given domain name.
// If validation fails, Valid=false but Raw is always populated.
// Internationalized domain names (IDNA2008) are converted to Punycode
// before the pattern check, so "münchen.de" is accepted.
func NewDomain(raw string) Domain {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Domain{Raw: raw, Valid: false}
	}

	lower := strings.ToLower(strings.TrimSuffix(raw, "."))

	ascii, unicode, ok := convert(lower)
	if !ok {
		return Domain{Raw: raw, Valid: false}
	}

	if !domainPattern.MatchString(ascii) || len(ascii) > 253 {
		return Domain{Raw: raw, Valid: false}
	}

	return Domain{
		Raw:     raw,
		ASCII:   ascii,
		Unicode: unicode,
		Valid:   true,
	}
}

// convert produces both the ASCII/Punycode and Unicode forms of a domain.
// Returns ok=false if the domain contains non-ASCII characters that fail
// IDNA2008 validation.
func convert(domain string) (ascii, unicode string, ok bool) {
	hasNonASCII := false
	for _, r := range domain {
		if r > 127 {
			hasNonASCII = true
			break
		}
	}

	if hasNonASCII {
		a, err := idna.Lookup.ToASCII(domain)
		if err != nil {
			return "", "", false
		}
		return a, domain, true
	}

	// Pure ASCII: derive the Unicode display form so existing Punycode
	// like xn--mnchen-3ya.de renders as münchen.de
	u, err := idna.Display.ToUnicode(domain)
	if err != nil {
		u = domain
	}
	return domain, u, true
}
