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

func mxLookup(records []*net.MX, err error) func(context.Context, string) ([]*net.MX, error) {
	return func(context.Context, string) ([]*net.MX, error) {
		return records, err
	}
}

func TestMXProber_SortsAndTruncates(t *testing.T) {
	cfg := probe.MXConfig{Timeout: 2 * time.Second}
	p := probe.NewMXProberWithLookup(cfg, mxLookup([]*net.MX{
		{Host: "mx4.example.com.", Pref: 40},
		{Host: "mx2.example.com.", Pref: 20},
		{Host: "mx1.example.com.", Pref: 10},
		{Host: "mx3.example.com.", Pref: 30},
	}, nil))

	res, err := p.Probe(context.Background(), "example.com")
	require.NoError(t, err)
	assert.True(t, res.Exists)
	require.Len(t, res.Records, 3) // top 3 only
	assert.Equal(t, "mx1.example.com", res.Records[0].Exchange)
	assert.Equal(t, uint16(10), res.Records[0].Priority)
	assert.Equal(t, "mx2.example.com", res.Records[1].Exchange)
	assert.Equal(t, "mx3.example.com", res.Records[2].Exchange)
}

func TestMXProber_ProviderFromTopRecord(t *testing.T) {
	cfg := probe.MXConfig{Timeout: 2 * time.Second}
	p := probe.NewMXProberWithLookup(cfg, mxLookup([]*net.MX{
		{Host: "mx.zoho.eu.", Pref: 20},
		{Host: "aspmx.l.google.com.", Pref: 1},
	}, nil))

	res, err := p.Probe(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "Google Workspace", res.Provider)
}

func TestMXProber_NoRecords(t *testing.T) {
	cfg := probe.MXConfig{Timeout: 2 * time.Second}
	p := probe.NewMXProberWithLookup(cfg, mxLookup([]*net.MX{}, nil))

	res, err := p.Probe(context.Background(), "example.com")
	require.NoError(t, err)
	assert.False(t, res.Exists)
	assert.Empty(t, res.Records)
}

func TestMXProber_NotFoundIsNotAnError(t *testing.T) {
	cfg := probe.MXConfig{Timeout: 2 * time.Second}
	p := probe.NewMXProberWithLookup(cfg, mxLookup(nil, &net.DNSError{
		Err:        "no such host",
		IsNotFound: true,
	}))

	res, err := p.Probe(context.Background(), "example.com")
	require.NoError(t, err)
	assert.False(t, res.Exists)
}

func TestMXProber_TransportFailurePropagates(t *testing.T) {
	cfg := probe.MXConfig{Timeout: 2 * time.Second}
	lookupErr := errors.New("read udp: i/o timeout")
	p := probe.NewMXProberWithLookup(cfg, mxLookup(nil, lookupErr))

	_, err := p.Probe(context.Background(), "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, lookupErr)
}
