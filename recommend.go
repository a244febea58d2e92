package domainkit

import (
	"fmt"

	"github.com/optimode/domainkit/types"
)

// Recommendations builds the ordered advisory list for a report.
// Pure function; the order is fixed (MX, SPF, DKIM, DMARC, age,
// verdict closing line, general advice) so output is reproducible.
func Recommendations(mx *types.MXResult, spf *types.SPFResult, dkim *types.DKIMResult, dmarc *types.DMARCResult, whois *types.WhoisResult, verdict types.Verdict) []string {
	var recs []string

	if mx == nil || !mx.Exists {
		recs = append(recs, "Add MX records for your domain - without them you cannot receive replies to your outreach.")
	}

	switch {
	case spf == nil || !spf.Exists:
		recs = append(recs, "Publish an SPF record (TXT), e.g. \"v=spf1 include:_spf.google.com ~all\", to authorize your sending servers.")
	case spf.Multiple:
		recs = append(recs, "Multiple SPF records found - consolidate them into a single TXT record; more than one is a standards violation and fails validation.")
	case spf.Policy == types.PolicyNeutral || spf.Policy == types.PolicyNone:
		recs = append(recs, "Strengthen your SPF policy - end the record with \"~all\" or \"-all\" instead of a neutral or missing qualifier.")
	}

	switch {
	case dkim == nil || !dkim.Exists:
		recs = append(recs, "Set up DKIM signing and publish the public key - unsigned mail is far more likely to land in spam.")
	case dkim.KeyStrength == types.KeyWeak:
		recs = append(recs, "Rotate your DKIM key to 2048 bits - keys under 1024 bits are considered breakable.")
	}

	switch {
	case dmarc == nil || !dmarc.Exists:
		recs = append(recs, "Publish a DMARC record at _dmarc.<domain> (start with \"v=DMARC1; p=none; rua=mailto:you@domain\") to monitor authentication results.")
	case dmarc.Policy == "none":
		recs = append(recs, "Your DMARC policy is \"none\" - move to \"quarantine\" or \"reject\" once your reports look clean.")
	case dmarc.Policy == "quarantine":
		recs = append(recs, "Good! Monitor reports before moving your DMARC policy from \"quarantine\" to \"reject\".")
	}

	if whois != nil && whois.AgeKnown() && *whois.AgeInDays < minDomainAgeDays {
		recs = append(recs, fmt.Sprintf("Your domain is only %d days old - warm it up gradually (10-20 emails/day at first) before scaling cold outreach.", *whois.AgeInDays))
	}

	switch verdict {
	case types.VerdictReady:
		recs = append(recs, "Your domain passes the core checks - keep volumes reasonable and monitor your sender reputation.")
	case types.VerdictRisky:
		recs = append(recs, "Technically set up, but the domain is young - expect reduced deliverability until it builds sending history.")
	case types.VerdictNotReady:
		recs = append(recs, "Do not start cold outreach yet - fix the missing records above first.")
	}

	recs = append(recs, "Use a dedicated sending domain or subdomain for cold outreach to protect your primary domain's reputation.")

	return recs
}
