package domainkit

import (
	"sort"
	"time"

	"github.com/optimode/domainkit/types"
)

// Report is the full outcome of a domain readiness check.
// A nil result pointer together with an Errors entry for the same field
// means that probe failed; its siblings are still populated.
type Report struct {
	ID              string             `json:"id"`
	Domain          string             `json:"domain"`
	MX              *types.MXResult    `json:"mx,omitempty"`
	SPF             *types.SPFResult   `json:"spf,omitempty"`
	DKIM            *types.DKIMResult  `json:"dkim,omitempty"`
	DMARC           *types.DMARCResult `json:"dmarc,omitempty"`
	Whois           *types.WhoisResult `json:"whois,omitempty"`
	Errors          map[string]string  `json:"errors,omitempty"`
	Verdict         types.Verdict      `json:"verdict"`
	Recommendations []string           `json:"recommendations"`
	CheckedAt       time.Time          `json:"checkedAt"`
	DurationMs      int64              `json:"durationMs"`
}

// Ready reports whether the domain passed all blocking checks.
func (r Report) Ready() bool {
	return r.Verdict == types.VerdictReady
}

// FailedProbes returns the names of probes that failed, sorted for
// stable output. Empty when every probe completed.
func (r Report) FailedProbes() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Errors))
	for name := range r.Errors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
