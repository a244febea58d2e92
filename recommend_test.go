package domainkit_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimode/domainkit"
	"github.com/optimode/domainkit/types"
)

func containsLine(t *testing.T, recs []string, substr string) {
	t.Helper()
	for _, r := range recs {
		if strings.Contains(r, substr) {
			return
		}
	}
	t.Errorf("no recommendation contains %q in %v", substr, recs)
}

func notContainsLine(t *testing.T, recs []string, substr string) {
	t.Helper()
	for _, r := range recs {
		if strings.Contains(r, substr) {
			t.Errorf("unexpected recommendation containing %q: %q", substr, r)
		}
	}
}

func TestRecommendations_AllGood(t *testing.T) {
	dmarc := &types.DMARCResult{Exists: true, Record: "v=DMARC1; p=reject", Policy: "reject", Percentage: 100}
	recs := domainkit.Recommendations(mxPresent(), spfPresent(), dkimPresent(), dmarc, whoisAged(2000), types.VerdictReady)

	// Only the verdict closing line and the constant best-practice line
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0], "passes the core checks")
	assert.Contains(t, recs[1], "dedicated sending domain")
}

func TestRecommendations_NothingConfigured(t *testing.T) {
	recs := domainkit.Recommendations(
		&types.MXResult{Exists: false},
		&types.SPFResult{Exists: false},
		&types.DKIMResult{Exists: false},
		&types.DMARCResult{Exists: false},
		nil,
		types.VerdictNotReady,
	)

	// Fixed order: MX, SPF, DKIM, DMARC, verdict, general advice
	require.Len(t, recs, 6)
	assert.Contains(t, recs[0], "Add MX records")
	assert.Contains(t, recs[1], "Publish an SPF record")
	assert.Contains(t, recs[2], "Set up DKIM signing")
	assert.Contains(t, recs[3], "Publish a DMARC record")
	assert.Contains(t, recs[4], "Do not start cold outreach yet")
	assert.Contains(t, recs[5], "dedicated sending domain")
}

func TestRecommendations_SPFChainIsMutuallyExclusive(t *testing.T) {
	// multiple outranks the weak-qualifier warning
	spf := &types.SPFResult{Exists: true, Record: "v=spf1 ?all", Valid: true, Multiple: true, Policy: types.PolicyNeutral}
	recs := domainkit.Recommendations(mxPresent(), spf, dkimPresent(), nil, nil, types.VerdictReady)

	containsLine(t, recs, "Multiple SPF records")
	notContainsLine(t, recs, "Strengthen your SPF policy")
}

func TestRecommendations_SPFWeakQualifier(t *testing.T) {
	spf := &types.SPFResult{Exists: true, Record: "v=spf1 include:x", Valid: true, Policy: types.PolicyNone}
	recs := domainkit.Recommendations(mxPresent(), spf, dkimPresent(), nil, nil, types.VerdictReady)

	containsLine(t, recs, "Strengthen your SPF policy")
}

func TestRecommendations_WeakDKIMKey(t *testing.T) {
	dkim := &types.DKIMResult{Exists: true, Selector: "default", KeyLength: 512, KeyStrength: types.KeyWeak}
	recs := domainkit.Recommendations(mxPresent(), spfPresent(), dkim, nil, nil, types.VerdictReady)

	containsLine(t, recs, "2048 bits")
}

func TestRecommendations_DMARCPolicies(t *testing.T) {
	base := func(policy string) []string {
		dmarc := &types.DMARCResult{Exists: true, Policy: policy, Percentage: 100}
		return domainkit.Recommendations(mxPresent(), spfPresent(), dkimPresent(), dmarc, whoisAged(2000), types.VerdictReady)
	}

	recs := base("none")
	containsLine(t, recs, `policy is "none"`)
	notContainsLine(t, recs, "Good! Monitor reports")

	recs = base("quarantine")
	containsLine(t, recs, "Good! Monitor reports")
	notContainsLine(t, recs, `policy is "none"`)

	recs = base("reject")
	notContainsLine(t, recs, "Good! Monitor reports")
	notContainsLine(t, recs, `policy is "none"`)
}

func TestRecommendations_WarmingAdviceNamesExactDayCount(t *testing.T) {
	recs := domainkit.Recommendations(mxPresent(), spfPresent(), dkimPresent(), nil, whoisAged(12), types.VerdictRisky)

	containsLine(t, recs, fmt.Sprintf("only %d days old", 12))
	containsLine(t, recs, "domain is young")
}

func TestRecommendations_UnknownAgeGetsNoWarmingAdvice(t *testing.T) {
	whois := &types.WhoisResult{Err: "whois fetch failed: connection refused"}
	recs := domainkit.Recommendations(mxPresent(), spfPresent(), dkimPresent(), nil, whois, types.VerdictReady)

	notContainsLine(t, recs, "days old")
}

func TestRecommendations_GeneralAdviceAlwaysLast(t *testing.T) {
	for _, verdict := range []types.Verdict{types.VerdictReady, types.VerdictRisky, types.VerdictNotReady} {
		recs := domainkit.Recommendations(nil, nil, nil, nil, nil, verdict)
		require.NotEmpty(t, recs)
		assert.Contains(t, recs[len(recs)-1], "dedicated sending domain")
	}
}
