package engine

import "time"

// Default knobs. Flights-scale providers answer fast; hotel-inventory
// providers are slower, so the hotels service overrides the timeouts.
const (
	DefaultMaxResults      = 5
	DefaultMaxRetries      = 2
	DefaultProviderTimeout = 5 * time.Second
	DefaultRoundTimeout    = 20 * time.Second
	DefaultInitialBackoff  = 500 * time.Millisecond
	DefaultCacheTTL        = 300 * time.Second
)

// Config controls one engine instance.
type Config struct {
	// Domain names the instance in logs and round records ("flights",
	// "hotels").
	Domain string

	// MaxResults is the hard cap a request limit is clamped to.
	// Default: 5.
	MaxResults int

	// MaxRetries is the number of retry attempts after the first call of a
	// provider fails transiently. Default: 2.
	MaxRetries int

	// ProviderTimeout bounds each individual provider call.
	ProviderTimeout time.Duration

	// RoundTimeout bounds the whole fan-out round. Expiry abandons
	// outstanding providers and proceeds with whatever has accumulated.
	RoundTimeout time.Duration

	// InitialBackoff is the sleep before the first retry; it doubles after
	// each attempt. Default: 500ms.
	InitialBackoff time.Duration

	// CacheTTL bounds final-result memoization. Zero disables caching.
	CacheTTL time.Duration

	// Tolerated lists business-error substrings recognized
	// case-insensitively in a provider error's text. A match is treated as
	// a non-retriable empty result, not a malfunction.
	Tolerated []string
}

func (c Config) withDefaults() Config {
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.ProviderTimeout <= 0 {
		c.ProviderTimeout = DefaultProviderTimeout
	}
	if c.RoundTimeout <= 0 {
		c.RoundTimeout = DefaultRoundTimeout
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = DefaultInitialBackoff
	}
	return c
}

// clampLimit forces the caller limit into [1, max]. Out-of-range limits are
// an invariant correction, never a validation error.
func clampLimit(limit, max int) int {
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}
