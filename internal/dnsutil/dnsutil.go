// Package dnsutil provides the DNS lookups behind the domainkit probes.
// By default it uses the system resolver; when a custom server is
// configured, queries go through github.com/miekg/dns instead.
package dnsutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	mdns "github.com/miekg/dns"
)

// ErrNotFound indicates the name or record definitively does not exist
// (NXDOMAIN or an empty answer). Probes map it to an "absent" result
// rather than a failure.
var ErrNotFound = errors.New("dnsutil: no such record")

// Client performs MX and TXT lookups with optional custom-server support.
// The zero value is not usable; create one with New.
type Client struct {
	server   string // "host" or "host:port"; empty means system resolver
	client   *mdns.Client
	resolver *net.Resolver
}

// New creates a DNS client. If server is empty, the system resolver is
// used; otherwise all queries are sent to the given server (":53" is
// appended when no port is present).
func New(server string) *Client {
	if server != "" && !strings.Contains(server, ":") {
		server += ":53"
	}
	return &Client{
		server:   server,
		client:   new(mdns.Client),
		resolver: &net.Resolver{},
	}
}

// LookupMX retrieves MX records for the domain.
// Returns ErrNotFound (possibly wrapped) when the domain or record
// does not exist.
func (c *Client) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	if c.server == "" {
		records, err := c.resolver.LookupMX(ctx, domain)
		return records, mapNotFound(err)
	}

	resp, err := c.query(ctx, domain, mdns.TypeMX)
	if err != nil {
		return nil, err
	}

	var records []*net.MX
	for _, rr := range resp.Answer {
		if mx, ok := rr.(*mdns.MX); ok {
			records = append(records, &net.MX{
				Host: strings.TrimSuffix(mx.Mx, "."),
				Pref: mx.Preference,
			})
		}
	}
	return records, nil
}

// LookupTXT retrieves TXT records for the name. Multi-segment TXT
// answers are flattened into single strings per RFC 7208 section 3.3.
// Returns ErrNotFound (possibly wrapped) when the name or record does
// not exist.
func (c *Client) LookupTXT(ctx context.Context, name string) ([]string, error) {
	if c.server == "" {
		records, err := c.resolver.LookupTXT(ctx, name)
		return records, mapNotFound(err)
	}

	resp, err := c.query(ctx, name, mdns.TypeTXT)
	if err != nil {
		return nil, err
	}

	var records []string
	for _, rr := range resp.Answer {
		if txt, ok := rr.(*mdns.TXT); ok {
			records = append(records, strings.Join(txt.Txt, ""))
		}
	}
	return records, nil
}

// query sends a single question to the configured server.
func (c *Client) query(ctx context.Context, name string, qtype uint16) (*mdns.Msg, error) {
	m := new(mdns.Msg)
	m.SetQuestion(mdns.Fqdn(name), qtype)
	m.RecursionDesired = true

	resp, _, err := c.client.ExchangeContext(ctx, m, c.server)
	if err != nil {
		return nil, fmt.Errorf("dns query failed: %w", err)
	}

	switch resp.Rcode {
	case mdns.RcodeSuccess:
		return resp, nil
	case mdns.RcodeNameError: // NXDOMAIN
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	default:
		return nil, fmt.Errorf("dns query failed with rcode %s", mdns.RcodeToString[resp.Rcode])
	}
}

// IsNotFound reports whether err indicates the name or record does not
// exist, as opposed to a transport or timeout failure.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsNotFound
}

// mapNotFound normalizes the system resolver's "no such host" errors
// onto ErrNotFound so callers only deal with one sentinel.
func mapNotFound(err error) error {
	if err == nil {
		return nil
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
