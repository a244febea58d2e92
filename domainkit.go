// Package domainkit evaluates whether an email-sending domain is
// technically ready for outbound cold email. It aggregates the domain's
// MX, SPF, DKIM and DMARC records plus the registration age into a
// single readiness verdict with actionable recommendations.
//
// Basic usage:
//
//	report, err := domainkit.New().Check(ctx, "example.com")
//
// With overrides:
//
//	report, err := domainkit.New(domainkit.CheckerOptions{
//	    DNSServer: "8.8.8.8",
//	}).
//	    WithDKIM(domainkit.DKIMOptions{
//	        Selectors: []string{"mycompany"},
//	    }).
//	    Check(ctx, "example.com")
package domainkit

import (
	"github.com/optimode/domainkit/probe"
	"github.com/optimode/domainkit/types"
)

// Result types re-exported from the types package so that consumers
// don't need to import the types package directly.
type (
	MXRecord    = types.MXRecord
	MXResult    = types.MXResult
	SPFResult   = types.SPFResult
	DKIMResult  = types.DKIMResult
	DMARCResult = types.DMARCResult
	WhoisResult = types.WhoisResult
)

// Verdict is a re-export.
type Verdict = types.Verdict

// Verdict constants re-exported.
const (
	VerdictReady    = types.VerdictReady
	VerdictRisky    = types.VerdictRisky
	VerdictNotReady = types.VerdictNotReady
)

// DefaultDKIMSelectors is the ordered selector list the DKIM probe
// scans when DKIMOptions.Selectors is empty.
var DefaultDKIMSelectors = probe.DefaultSelectors
