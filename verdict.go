package domainkit

import "github.com/optimode/domainkit/types"

// minDomainAgeDays is the registration age below which a domain is
// considered too fresh for cold outreach volume.
const minDomainAgeDays = 30

// DeriveVerdict classifies a domain's readiness from its probe results.
// It is a pure function: deterministic for fixed inputs, no lookups.
//
// Missing MX, SPF or DKIM blocks readiness outright. A known age under
// 30 days downgrades an otherwise-ready domain to risky. DMARC absence
// deliberately does not block readiness; it only drives
// recommendations. An unknown age (whois nil, failed, or unparsable)
// is NOT treated as young.
//
// A nil result pointer (probe failed) counts the same as an absent
// record for MX/SPF/DKIM: readiness cannot be confirmed without them.
func DeriveVerdict(mx *types.MXResult, spf *types.SPFResult, dkim *types.DKIMResult, whois *types.WhoisResult) types.Verdict {
	switch {
	case mx == nil || !mx.Exists:
		return types.VerdictNotReady
	case spf == nil || !spf.Exists || dkim == nil || !dkim.Exists:
		return types.VerdictNotReady
	case whois != nil && whois.AgeKnown() && *whois.AgeInDays < minDomainAgeDays:
		return types.VerdictRisky
	}
	return types.VerdictReady
}
