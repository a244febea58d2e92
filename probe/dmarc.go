package probe

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/optimode/domainkit/internal/dnsutil"
	"github.com/optimode/domainkit/types"
)

// DMARCConfig is the DMARC prober configuration.
type DMARCConfig struct {
	Timeout time.Duration
}

// DMARCProber reads a domain's DMARC policy from _dmarc.{domain}.
type DMARCProber struct {
	cfg    DMARCConfig
	lookup func(ctx context.Context, name string) ([]string, error) // injectable for testability
}

// NewDMARCProber creates a DMARC prober backed by the given DNS client.
func NewDMARCProber(cfg DMARCConfig, client *dnsutil.Client) *DMARCProber {
	return &DMARCProber{cfg: cfg, lookup: client.LookupTXT}
}

// NewDMARCProberWithLookup is a test-oriented constructor that
// overrides the TXT lookup function.
func NewDMARCProberWithLookup(cfg DMARCConfig, fn func(context.Context, string) ([]string, error)) *DMARCProber {
	return &DMARCProber{cfg: cfg, lookup: fn}
}

// Tag extraction patterns. \b keeps "p=" from matching inside "sp=".
var (
	dmarcPolicyPattern    = regexp.MustCompile(`\bp=([^;\s]+)`)
	dmarcSubPolicyPattern = regexp.MustCompile(`\bsp=([^;\s]+)`)
	dmarcPctPattern       = regexp.MustCompile(`\bpct=(\d+)`)
	dmarcRuaPattern       = regexp.MustCompile(`\brua=([^;\s]+)`)
)

// Probe queries TXT at _dmarc.{domain} and extracts the policy tags
// from the first record carrying a v=DMARC1 signature. Each tag is
// optional; a record without p= is tolerated and reported as policy
// "none", and pct= defaults to 100.
func (p *DMARCProber) Probe(ctx context.Context, domain string) (types.DMARCResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	records, err := p.lookup(ctx, "_dmarc."+domain)
	if err != nil {
		if dnsutil.IsNotFound(err) {
			return types.DMARCResult{Exists: false}, nil
		}
		return types.DMARCResult{}, fmt.Errorf("dmarc lookup: %w", err)
	}

	var record string
	for _, r := range records {
		if strings.Contains(r, "v=DMARC1") {
			record = r
			break
		}
	}
	if record == "" {
		return types.DMARCResult{Exists: false}, nil
	}

	res := types.DMARCResult{
		Exists:     true,
		Record:     record,
		Policy:     "none",
		Percentage: 100,
	}
	if m := dmarcPolicyPattern.FindStringSubmatch(record); m != nil {
		res.Policy = m[1]
	}
	if m := dmarcSubPolicyPattern.FindStringSubmatch(record); m != nil {
		res.SubdomainPolicy = m[1]
	}
	if m := dmarcPctPattern.FindStringSubmatch(record); m != nil {
		if pct, err := strconv.Atoi(m[1]); err == nil {
			res.Percentage = pct
		}
	}
	if m := dmarcRuaPattern.FindStringSubmatch(record); m != nil {
		res.Reporting = m[1]
	}

	return res, nil
}
