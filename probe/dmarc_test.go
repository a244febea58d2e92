package probe_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimode/domainkit/probe"
)

func TestDMARCProber_FullRecord(t *testing.T) {
	cfg := probe.DMARCConfig{Timeout: 2 * time.Second}
	p := probe.NewDMARCProberWithLookup(cfg, func(_ context.Context, name string) ([]string, error) {
		assert.Equal(t, "_dmarc.example.com", name)
		return []string{"v=DMARC1; p=quarantine; sp=reject; pct=50; rua=mailto:d@x.com"}, nil
	})

	res, err := p.Probe(context.Background(), "example.com")
	require.NoError(t, err)
	assert.True(t, res.Exists)
	assert.Equal(t, "quarantine", res.Policy)
	assert.Equal(t, "reject", res.SubdomainPolicy)
	assert.Equal(t, 50, res.Percentage)
	assert.Equal(t, "mailto:d@x.com", res.Reporting)
}

func TestDMARCProber_Defaults(t *testing.T) {
	// A v=DMARC1 record without p= is inconsistent but tolerated:
	// policy defaults to "none", pct to 100.
	cfg := probe.DMARCConfig{Timeout: 2 * time.Second}
	p := probe.NewDMARCProberWithLookup(cfg, txtLookup([]string{"v=DMARC1; rua=mailto:agg@example.com"}, nil))

	res, err := p.Probe(context.Background(), "example.com")
	require.NoError(t, err)
	assert.True(t, res.Exists)
	assert.Equal(t, "none", res.Policy)
	assert.Empty(t, res.SubdomainPolicy)
	assert.Equal(t, 100, res.Percentage)
	assert.Equal(t, "mailto:agg@example.com", res.Reporting)
}

func TestDMARCProber_SubdomainTagDoesNotShadowPolicy(t *testing.T) {
	cfg := probe.DMARCConfig{Timeout: 2 * time.Second}
	p := probe.NewDMARCProberWithLookup(cfg, txtLookup([]string{"v=DMARC1; sp=none; p=reject"}, nil))

	res, err := p.Probe(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "reject", res.Policy)
	assert.Equal(t, "none", res.SubdomainPolicy)
}

func TestDMARCProber_Absent(t *testing.T) {
	cfg := probe.DMARCConfig{Timeout: 2 * time.Second}

	// No v=DMARC1 signature among the TXT answers
	p := probe.NewDMARCProberWithLookup(cfg, txtLookup([]string{"some unrelated record"}, nil))
	res, err := p.Probe(context.Background(), "example.com")
	require.NoError(t, err)
	assert.False(t, res.Exists)

	// NXDOMAIN on _dmarc.{domain}
	p = probe.NewDMARCProberWithLookup(cfg, txtLookup(nil, &net.DNSError{
		Err:        "no such host",
		IsNotFound: true,
	}))
	res, err = p.Probe(context.Background(), "example.com")
	require.NoError(t, err)
	assert.False(t, res.Exists)
}

func TestDMARCProber_TransportFailurePropagates(t *testing.T) {
	cfg := probe.DMARCConfig{Timeout: 2 * time.Second}
	lookupErr := errors.New("read udp: i/o timeout")
	p := probe.NewDMARCProberWithLookup(cfg, txtLookup(nil, lookupErr))

	_, err := p.Probe(context.Background(), "example.com")
	assert.ErrorIs(t, err, lookupErr)
}
