package engine

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Profile is an optional YAML file tuning both aggregation rounds without
// touching the main application config.
type Profile struct {
	Flights RoundProfile `yaml:"flights"`
	Hotels  RoundProfile `yaml:"hotels"`
}

// RoundProfile overrides one domain's round settings. Zero values (nil for
// pointers) leave the configured value untouched.
type RoundProfile struct {
	MaxResults          int      `yaml:"max_results"`
	MaxRetries          *int     `yaml:"max_retries"`
	ProviderTimeoutSecs int      `yaml:"provider_timeout_seconds"`
	AgentTimeoutSecs    int      `yaml:"agent_timeout_seconds"`
	CacheTTLSecs        *int     `yaml:"cache_ttl_seconds"`
	ToleratedErrors     []string `yaml:"tolerated_errors"`
}

// LoadProfile reads an aggregation profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "engine: read profile %s", path)
	}

	// The YAML has a top-level "aggregation" key.
	var wrapper struct {
		Aggregation Profile `yaml:"aggregation"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "engine: parse profile")
	}

	return &wrapper.Aggregation, nil
}

// Apply overlays the profile onto cfg and returns the result.
func (rp RoundProfile) Apply(cfg Config) Config {
	if rp.MaxResults > 0 {
		cfg.MaxResults = rp.MaxResults
	}
	if rp.MaxRetries != nil && *rp.MaxRetries >= 0 {
		cfg.MaxRetries = *rp.MaxRetries
	}
	if rp.ProviderTimeoutSecs > 0 {
		cfg.ProviderTimeout = time.Duration(rp.ProviderTimeoutSecs) * time.Second
	}
	if rp.AgentTimeoutSecs > 0 {
		cfg.RoundTimeout = time.Duration(rp.AgentTimeoutSecs) * time.Second
	}
	if rp.CacheTTLSecs != nil {
		cfg.CacheTTL = time.Duration(*rp.CacheTTLSecs) * time.Second
	}
	if len(rp.ToleratedErrors) > 0 {
		cfg.Tolerated = rp.ToleratedErrors
	}
	return cfg
}
