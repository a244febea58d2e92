package probe

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/optimode/domainkit/internal/dnsutil"
	"github.com/optimode/domainkit/types"
)

// maxMXRecords is how many exchanges the result keeps, lowest priority first.
const maxMXRecords = 3

// MXConfig is the MX prober configuration.
type MXConfig struct {
	Timeout time.Duration
}

// MXProber resolves a domain's mail exchangers and identifies the
// mailbox provider of the top-priority exchange.
type MXProber struct {
	cfg    MXConfig
	lookup func(ctx context.Context, domain string) ([]*net.MX, error) // injectable for testability
}

// NewMXProber creates an MX prober backed by the given DNS client.
func NewMXProber(cfg MXConfig, client *dnsutil.Client) *MXProber {
	return &MXProber{cfg: cfg, lookup: client.LookupMX}
}

// NewMXProberWithLookup is a test-oriented constructor that overrides
// the MX lookup function.
func NewMXProberWithLookup(cfg MXConfig, fn func(context.Context, string) ([]*net.MX, error)) *MXProber {
	return &MXProber{cfg: cfg, lookup: fn}
}

// Probe resolves the domain's MX records. A definitive "no such record"
// answer yields Exists=false with no error; transport failures are
// returned to the caller.
func (p *MXProber) Probe(ctx context.Context, domain string) (types.MXResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	records, err := p.lookup(ctx, domain)
	if err != nil {
		if dnsutil.IsNotFound(err) {
			return types.MXResult{Exists: false}, nil
		}
		return types.MXResult{}, fmt.Errorf("mx lookup: %w", err)
	}

	if len(records) == 0 {
		return types.MXResult{Exists: false}, nil
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Pref < records[j].Pref
	})
	if len(records) > maxMXRecords {
		records = records[:maxMXRecords]
	}

	out := make([]types.MXRecord, len(records))
	for i, r := range records {
		out[i] = types.MXRecord{
			Exchange: strings.TrimSuffix(r.Host, "."),
			Priority: r.Pref,
		}
	}

	return types.MXResult{
		Exists:   true,
		Records:  out,
		Provider: ProviderFor(out[0].Exchange),
	}, nil
}
