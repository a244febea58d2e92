package probe

import (
	"context"
	"encoding/base64"
	"regexp"
	"strings"
	"time"

	"github.com/optimode/domainkit/internal/dnsutil"
	"github.com/optimode/domainkit/types"
)

// DefaultSelectors is the ordered list of well-known DKIM selectors
// probed when none is configured. Probing stops at the first match.
var DefaultSelectors = []string{
	"google",    // Google Workspace
	"selector1", // Microsoft 365
	"selector2", // Microsoft 365
	"default",
	"dkim",
	"s1", // SendGrid
	"s2", // SendGrid
	"k1", // Mailchimp / Mandrill
	"k2", // Mailchimp / Mandrill
	"mx",
	"mail",
}

// DKIMConfig is the DKIM prober configuration.
type DKIMConfig struct {
	// Selectors overrides DefaultSelectors when non-empty.
	Selectors []string
	// Timeout applies to each selector attempt, not the whole scan.
	Timeout time.Duration
}

// DKIMProber hunts for a DKIM public key across well-known selectors.
type DKIMProber struct {
	cfg    DKIMConfig
	lookup func(ctx context.Context, name string) ([]string, error) // injectable for testability
}

// NewDKIMProber creates a DKIM prober backed by the given DNS client.
func NewDKIMProber(cfg DKIMConfig, client *dnsutil.Client) *DKIMProber {
	return &DKIMProber{cfg: cfg, lookup: client.LookupTXT}
}

// NewDKIMProberWithLookup is a test-oriented constructor that overrides
// the TXT lookup function.
func NewDKIMProberWithLookup(cfg DKIMConfig, fn func(context.Context, string) ([]string, error)) *DKIMProber {
	return &DKIMProber{cfg: cfg, lookup: fn}
}

// Probe tries each candidate selector in order and returns the first
// one whose TXT record looks like a DKIM key. A failed lookup on one
// selector is swallowed and probing continues; only exhausting the
// whole list yields Exists=false.
func (p *DKIMProber) Probe(ctx context.Context, domain string) (types.DKIMResult, error) {
	selectors := p.cfg.Selectors
	if len(selectors) == 0 {
		selectors = DefaultSelectors
	}

	for _, selector := range selectors {
		if err := ctx.Err(); err != nil {
			return types.DKIMResult{}, err
		}
		if res, ok := p.probeSelector(ctx, selector, domain); ok {
			return res, nil
		}
	}

	return types.DKIMResult{Exists: false}, nil
}

func (p *DKIMProber) probeSelector(ctx context.Context, selector, domain string) (types.DKIMResult, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	records, err := p.lookup(ctx, selector+"._domainkey."+domain)
	if err != nil {
		return types.DKIMResult{}, false
	}

	for _, record := range records {
		if !strings.Contains(record, "v=DKIM1") && !strings.Contains(record, "k=rsa") {
			continue
		}
		bits := keyLength(record)
		return types.DKIMResult{
			Exists:      true,
			Selector:    selector,
			Record:      record,
			KeyLength:   bits,
			KeyStrength: keyStrength(bits),
		}, true
	}

	return types.DKIMResult{}, false
}

// dkimKeyPattern locates the base64 public-key material in a
// "k=rsa; ...; p=<base64>" record.
var dkimKeyPattern = regexp.MustCompile(`k=rsa.*?p=([A-Za-z0-9+/=\s]+)`)

// keyLength estimates the key's bit length as 8x the decoded byte
// length of the p= material. Returns 0 when no key can be decoded.
func keyLength(record string) int {
	m := dkimKeyPattern.FindStringSubmatch(record)
	if m == nil {
		return 0
	}
	encoded := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, m[1])

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return 0
	}
	return len(raw) * 8
}

func keyStrength(bits int) types.KeyStrength {
	switch {
	case bits < 1024:
		return types.KeyWeak
	case bits < 2048:
		return types.KeyMedium
	}
	return types.KeyStrong
}
