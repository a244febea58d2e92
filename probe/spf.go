package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/optimode/domainkit/internal/dnsutil"
	"github.com/optimode/domainkit/types"
)

// SPFConfig is the SPF prober configuration.
type SPFConfig struct {
	Timeout time.Duration
}

// SPFProber finds a domain's SPF policy among its TXT records.
type SPFProber struct {
	cfg    SPFConfig
	lookup func(ctx context.Context, name string) ([]string, error) // injectable for testability
}

// NewSPFProber creates an SPF prober backed by the given DNS client.
func NewSPFProber(cfg SPFConfig, client *dnsutil.Client) *SPFProber {
	return &SPFProber{cfg: cfg, lookup: client.LookupTXT}
}

// NewSPFProberWithLookup is a test-oriented constructor that overrides
// the TXT lookup function.
func NewSPFProberWithLookup(cfg SPFConfig, fn func(context.Context, string) ([]string, error)) *SPFProber {
	return &SPFProber{cfg: cfg, lookup: fn}
}

// Probe queries the domain's TXT records and keeps the ones carrying an
// SPF signature. The first match is canonical; finding more than one is
// flagged via Multiple since RFC 7208 forbids it.
func (p *SPFProber) Probe(ctx context.Context, domain string) (types.SPFResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	records, err := p.lookup(ctx, domain)
	if err != nil {
		if dnsutil.IsNotFound(err) {
			return types.SPFResult{Exists: false}, nil
		}
		return types.SPFResult{}, fmt.Errorf("spf lookup: %w", err)
	}

	// "v=spf" also catches the malformed variant missing the version digit
	var matches []string
	for _, r := range records {
		if strings.Contains(r, "v=spf1") || strings.Contains(r, "v=spf") {
			matches = append(matches, r)
		}
	}

	if len(matches) == 0 {
		return types.SPFResult{Exists: false}, nil
	}

	record := matches[0]
	return types.SPFResult{
		Exists:   true,
		Record:   record,
		Valid:    strings.Contains(record, "v=spf1"),
		Multiple: len(matches) > 1,
		Policy:   spfPolicy(record),
	}, nil
}

// spfPolicy derives the enforcement level from the record's "all"
// qualifier. First match wins, checked strictest-first.
func spfPolicy(record string) types.SPFPolicy {
	switch {
	case strings.Contains(record, "-all"):
		return types.PolicyHardfail
	case strings.Contains(record, "~all"):
		return types.PolicySoftfail
	case strings.Contains(record, "?all"):
		return types.PolicyNeutral
	}
	return types.PolicyNone
}
