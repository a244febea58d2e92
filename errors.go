package domainkit

import "errors"

var (
	// ErrInvalidDomain is returned when the input does not look like a
	// domain name. No lookups are performed in that case.
	ErrInvalidDomain = errors.New("domainkit: invalid domain name")

	// ErrGlobalTimeout is returned when the whole check exceeds the
	// global budget. Partial results are discarded; callers should map
	// this to a "try again" outcome.
	ErrGlobalTimeout = errors.New("domainkit: check timed out")
)
