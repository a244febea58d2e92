package domainkit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/optimode/domainkit/internal/dnsutil"
	"github.com/optimode/domainkit/internal/parse"
	"github.com/optimode/domainkit/probe"
)

// Checker runs the five readiness probes against a domain.
// Instantiate with the New() function; the zero value is not usable.
// A Checker is safe for concurrent use and its WHOIS cache is shared
// across calls, so reuse one instance instead of creating per request.
type Checker struct {
	opts  CheckerOptions
	mx    *probe.MXProber
	spf   *probe.SPFProber
	dkim  *probe.DKIMProber
	dmarc *probe.DMARCProber
	whois *probe.WhoisProber
}

// New creates a Checker with all five probes at their default settings.
// Override individual probes with the With* methods.
func New(opts ...CheckerOptions) *Checker {
	o := defaultCheckerOptions()
	if len(opts) > 0 {
		o = opts[0]
		if o.GlobalTimeout == 0 {
			o.GlobalTimeout = defaultCheckerOptions().GlobalTimeout
		}
	}

	c := &Checker{opts: o}
	c.WithMX(defaultMXOptions())
	c.WithSPF(defaultSPFOptions())
	c.WithDKIM(defaultDKIMOptions())
	c.WithDMARC(defaultDMARCOptions())
	c.WithWhois(defaultWhoisOptions())
	return c
}

// dnsClient builds the shared lookup client honoring CheckerOptions.DNSServer.
func (c *Checker) dnsClient() *dnsutil.Client {
	return dnsutil.New(c.opts.DNSServer)
}

// WithMX replaces the MX probe configuration.
func (c *Checker) WithMX(opts MXOptions) *Checker {
	if opts.Timeout == 0 {
		opts.Timeout = defaultMXOptions().Timeout
	}
	c.mx = probe.NewMXProber(probe.MXConfig{Timeout: opts.Timeout}, c.dnsClient())
	return c
}

// WithSPF replaces the SPF probe configuration.
func (c *Checker) WithSPF(opts SPFOptions) *Checker {
	if opts.Timeout == 0 {
		opts.Timeout = defaultSPFOptions().Timeout
	}
	c.spf = probe.NewSPFProber(probe.SPFConfig{Timeout: opts.Timeout}, c.dnsClient())
	return c
}

// WithDKIM replaces the DKIM probe configuration.
func (c *Checker) WithDKIM(opts DKIMOptions) *Checker {
	if opts.Timeout == 0 {
		opts.Timeout = defaultDKIMOptions().Timeout
	}
	c.dkim = probe.NewDKIMProber(probe.DKIMConfig{
		Selectors: opts.Selectors,
		Timeout:   opts.Timeout,
	}, c.dnsClient())
	return c
}

// WithDMARC replaces the DMARC probe configuration.
func (c *Checker) WithDMARC(opts DMARCOptions) *Checker {
	if opts.Timeout == 0 {
		opts.Timeout = defaultDMARCOptions().Timeout
	}
	c.dmarc = probe.NewDMARCProber(probe.DMARCConfig{Timeout: opts.Timeout}, c.dnsClient())
	return c
}

// WithWhois replaces the WHOIS probe configuration.
// Note this resets the WHOIS cache.
func (c *Checker) WithWhois(opts WhoisOptions) *Checker {
	def := defaultWhoisOptions()
	if opts.Timeout == 0 {
		opts.Timeout = def.Timeout
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = def.CacheTTL
	}
	if opts.GatewayURL == "" {
		opts.GatewayURL = def.GatewayURL
	}
	c.whois = probe.NewWhoisProber(probe.WhoisConfig{
		Timeout:    opts.Timeout,
		CacheTTL:   opts.CacheTTL,
		GatewayURL: opts.GatewayURL,
		HTTPClient: opts.HTTPClient,
	})
	return c
}

// Check runs all five probes concurrently and assembles the report.
//
// Each probe races its own per-operation timeout; a failing probe
// contributes an entry to Report.Errors instead of aborting its
// siblings. The whole batch additionally races the global timeout, and
// if that fires first the partial results are discarded and
// ErrGlobalTimeout is returned.
func (c *Checker) Check(ctx context.Context, domain string) (Report, error) {
	d := parse.NewDomain(domain)
	if !d.Valid {
		return Report{}, fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.opts.GlobalTimeout)
	defer cancel()

	report := Report{
		ID:        ulid.Make().String(),
		Domain:    d.ASCII,
		Errors:    make(map[string]string),
		CheckedAt: start,
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	run := func(field string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				report.Errors[field] = err.Error()
				mu.Unlock()
			}
		}()
	}

	run("mx", func() error {
		res, err := c.mx.Probe(ctx, d.ASCII)
		if err != nil {
			return err
		}
		mu.Lock()
		report.MX = &res
		mu.Unlock()
		return nil
	})
	run("spf", func() error {
		res, err := c.spf.Probe(ctx, d.ASCII)
		if err != nil {
			return err
		}
		mu.Lock()
		report.SPF = &res
		mu.Unlock()
		return nil
	})
	run("dkim", func() error {
		res, err := c.dkim.Probe(ctx, d.ASCII)
		if err != nil {
			return err
		}
		mu.Lock()
		report.DKIM = &res
		mu.Unlock()
		return nil
	})
	run("dmarc", func() error {
		res, err := c.dmarc.Probe(ctx, d.ASCII)
		if err != nil {
			return err
		}
		mu.Lock()
		report.DMARC = &res
		mu.Unlock()
		return nil
	})
	run("whois", func() error {
		// WHOIS failures are carried inside the result, never as errors
		res := c.whois.Probe(ctx, d.ASCII)
		mu.Lock()
		report.Whois = &res
		mu.Unlock()
		return nil
	})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// Cancelling ctx makes the in-flight lookups return; the probe
		// goroutines drain via wg rather than leak.
		if ctx.Err() == context.DeadlineExceeded {
			return Report{}, fmt.Errorf("%w after %s", ErrGlobalTimeout, c.opts.GlobalTimeout)
		}
		return Report{}, ctx.Err()
	}

	if len(report.Errors) == 0 {
		report.Errors = nil
	}
	report.Verdict = DeriveVerdict(report.MX, report.SPF, report.DKIM, report.Whois)
	report.Recommendations = Recommendations(report.MX, report.SPF, report.DKIM, report.DMARC, report.Whois, report.Verdict)
	report.DurationMs = time.Since(start).Milliseconds()

	return report, nil
}

// CheckMany checks multiple domains concurrently with a bounded worker
// pool. The result order matches the input slice order. The first
// request-level error (invalid domain, global timeout) is returned
// after all workers finish; per-probe failures stay inside each report.
func (c *Checker) CheckMany(ctx context.Context, domains []string, opts ...ConcurrencyOptions) ([]Report, error) {
	workers := 5
	if len(opts) > 0 && opts[0].Workers > 0 {
		workers = opts[0].Workers
	}
	if workers > len(domains) {
		workers = len(domains)
	}

	type job struct {
		idx    int
		domain string
	}

	jobs := make(chan job)
	go func() {
		defer close(jobs)
		for i, d := range domains {
			select {
			case jobs <- job{idx: i, domain: d}:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]Report, len(domains))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res, err := c.Check(ctx, j.domain)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("checking %q: %w", j.domain, err)
					}
					mu.Unlock()
					continue
				}
				results[j.idx] = res
			}
		}()
	}

	wg.Wait()
	return results, firstErr
}
