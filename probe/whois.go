package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/optimode/domainkit/internal/whoiscache"
	"github.com/optimode/domainkit/types"
)

// maxWhoisBody caps how much of the gateway response is read.
const maxWhoisBody = 256 << 10

// excerptLen is how much of the source text the result carries for
// diagnostics.
const excerptLen = 500

// WhoisConfig is the WHOIS prober configuration.
type WhoisConfig struct {
	// Timeout is the budget for one gateway fetch.
	Timeout time.Duration
	// CacheTTL is the freshness window of the per-domain result cache.
	CacheTTL time.Duration
	// GatewayURL is a printf template with one %s verb for the domain.
	GatewayURL string
	// HTTPClient overrides the default client when non-nil.
	HTTPClient *http.Client
}

// WhoisProber derives a domain's registration age from a public WHOIS
// web gateway. Results are cached per domain; registrar text formats
// are unstandardized, so the extraction is best-effort only.
type WhoisProber struct {
	cfg   WhoisConfig
	cache *whoiscache.Cache
	fetch func(ctx context.Context, domain string) (string, error) // injectable for testability
	now   func() time.Time
}

// NewWhoisProber creates a WHOIS prober with its own result cache.
func NewWhoisProber(cfg WhoisConfig) *WhoisProber {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	p := &WhoisProber{
		cfg:   cfg,
		cache: whoiscache.New(cfg.CacheTTL),
		now:   time.Now,
	}
	p.fetch = func(ctx context.Context, domain string) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(cfg.GatewayURL, domain), nil)
		if err != nil {
			return "", err
		}
		resp, err := client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxWhoisBody))
		if err != nil {
			return "", err
		}
		return string(body), nil
	}
	return p
}

// NewWhoisProberWithFetch is a test-oriented constructor that overrides
// the gateway fetch and, when now is non-nil, the time source.
func NewWhoisProberWithFetch(cfg WhoisConfig, fn func(context.Context, string) (string, error), now func() time.Time) *WhoisProber {
	p := &WhoisProber{
		cfg:   cfg,
		fetch: fn,
		now:   time.Now,
	}
	if now != nil {
		p.now = now
	}
	p.cache = whoiscache.NewWithClock(cfg.CacheTTL, p.now)
	return p
}

// Probe returns the domain's registration age, from cache when fresh.
// Failures surface as a WhoisResult with Err set, never as a Go error:
// "unknown age" is a valid, non-fatal outcome.
func (p *WhoisProber) Probe(ctx context.Context, domain string) types.WhoisResult {
	return p.cache.Get(domain, func() types.WhoisResult {
		return p.lookup(ctx, domain)
	})
}

func (p *WhoisProber) lookup(ctx context.Context, domain string) types.WhoisResult {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	body, err := p.fetch(ctx, domain)
	if err != nil {
		return types.WhoisResult{Err: fmt.Sprintf("whois fetch failed: %v", err)}
	}

	excerpt := body
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen]
	}

	created, ok := extractCreationDate(body)
	if !ok {
		return types.WhoisResult{
			RawExcerpt: excerpt,
			Err:        "no recognizable creation date in whois response",
		}
	}

	t, err := time.Parse("2006-01-02", created)
	if err != nil {
		return types.WhoisResult{
			RawExcerpt: excerpt,
			Err:        fmt.Sprintf("creation date %q did not parse: %v", created, err),
		}
	}

	age := int(p.now().Sub(t).Hours() / 24)
	if age < 0 {
		age = 0
	}

	return types.WhoisResult{
		CreationDate: created,
		AgeInDays:    &age,
		RawExcerpt:   excerpt,
	}
}

// Labeled registrar date formats, tried in order. The bare pattern is
// the last-resort fallback for registrars that print DD-MM-YYYY or
// DD/MM/YYYY without a label.
var (
	labeledDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Creation Date:\s*(\d{4}-\d{2}-\d{2})`),
		regexp.MustCompile(`Created On:\s*(\d{4}-\d{2}-\d{2})`),
		regexp.MustCompile(`Registration Date:\s*(\d{4}-\d{2}-\d{2})`),
		regexp.MustCompile(`Domain Create Date:\s*(\d{4}-\d{2}-\d{2})`),
	}
	bareDatePattern = regexp.MustCompile(`(\d{2})[-/](\d{2})[-/](\d{4})`)
)

// extractCreationDate pulls a YYYY-MM-DD creation date out of loosely
// structured WHOIS text. First match wins; the scan stops at the first
// pattern that hits.
func extractCreationDate(body string) (string, bool) {
	for _, re := range labeledDatePatterns {
		if m := re.FindStringSubmatch(body); m != nil {
			return m[1], true
		}
	}
	if m := bareDatePattern.FindStringSubmatch(body); m != nil {
		// DD[-/]MM[-/]YYYY, normalized to ISO order with hyphens
		return m[3] + "-" + m[2] + "-" + m[1], true
	}
	return "", false
}
