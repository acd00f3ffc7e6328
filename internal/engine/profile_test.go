package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
aggregation:
  flights:
    max_results: 3
    provider_timeout_seconds: 2
    tolerated_errors:
      - "NO FARES"
  hotels:
    max_retries: 0
    cache_ttl_seconds: 0
`)

	p, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, 3, p.Flights.MaxResults)
	assert.Equal(t, 2, p.Flights.ProviderTimeoutSecs)
	assert.Equal(t, []string{"NO FARES"}, p.Flights.ToleratedErrors)
	require.NotNil(t, p.Hotels.MaxRetries)
	assert.Equal(t, 0, *p.Hotels.MaxRetries)
	require.NotNil(t, p.Hotels.CacheTTLSecs)
	assert.Equal(t, 0, *p.Hotels.CacheTTLSecs)
}

func TestLoadProfile_MissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadProfile_BadYAML(t *testing.T) {
	path := writeProfile(t, "aggregation: [not a map")
	_, err := LoadProfile(path)
	assert.Error(t, err)
}

func TestRoundProfileApply(t *testing.T) {
	base := Config{
		MaxResults:      5,
		MaxRetries:      2,
		ProviderTimeout: 5 * time.Second,
		RoundTimeout:    20 * time.Second,
		CacheTTL:        300 * time.Second,
		Tolerated:       []string{"NO FARES"},
	}

	t.Run("empty profile leaves config untouched", func(t *testing.T) {
		got := RoundProfile{}.Apply(base)
		assert.Equal(t, base, got)
	})

	t.Run("set fields override", func(t *testing.T) {
		retries := 0
		ttl := 0
		rp := RoundProfile{
			MaxResults:       2,
			MaxRetries:       &retries,
			AgentTimeoutSecs: 45,
			CacheTTLSecs:     &ttl,
			ToleratedErrors:  []string{"SOLD OUT"},
		}
		got := rp.Apply(base)

		assert.Equal(t, 2, got.MaxResults)
		assert.Equal(t, 0, got.MaxRetries)
		assert.Equal(t, 45*time.Second, got.RoundTimeout)
		assert.Equal(t, time.Duration(0), got.CacheTTL, "explicit zero disables caching")
		assert.Equal(t, []string{"SOLD OUT"}, got.Tolerated)
		// Untouched field.
		assert.Equal(t, 5*time.Second, got.ProviderTimeout)
	})
}
