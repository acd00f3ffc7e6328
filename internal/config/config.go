package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tripdeck/travelsearch/internal/engine"
)

// Config holds the full application configuration.
type Config struct {
	Amadeus AmadeusConfig `yaml:"amadeus" mapstructure:"amadeus"`
	Flights RoundConfig   `yaml:"flights" mapstructure:"flights"`
	Hotels  RoundConfig   `yaml:"hotels" mapstructure:"hotels"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// AmadeusConfig holds Amadeus Self-Service API credentials.
type AmadeusConfig struct {
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	Currency     string `yaml:"currency" mapstructure:"currency"`
}

// RoundConfig configures one domain's aggregation round.
type RoundConfig struct {
	MaxResults          int `yaml:"max_results" mapstructure:"max_results"`
	ProviderMaxRetries  int `yaml:"provider_max_retries" mapstructure:"provider_max_retries"`
	ProviderTimeoutSecs int `yaml:"provider_timeout_seconds" mapstructure:"provider_timeout_seconds"`
	AgentTimeoutSecs    int `yaml:"agent_timeout_seconds" mapstructure:"agent_timeout_seconds"`
	CacheTTLSecs        int `yaml:"cache_ttl_seconds" mapstructure:"cache_ttl_seconds"`
}

// EngineConfig converts the round settings into an engine configuration.
func (rc RoundConfig) EngineConfig() engine.Config {
	return engine.Config{
		MaxResults:      rc.MaxResults,
		MaxRetries:      rc.ProviderMaxRetries,
		ProviderTimeout: time.Duration(rc.ProviderTimeoutSecs) * time.Second,
		RoundTimeout:    time.Duration(rc.AgentTimeoutSecs) * time.Second,
		CacheTTL:        time.Duration(rc.CacheTTLSecs) * time.Second,
	}
}

// StoreConfig configures the search log.
type StoreConfig struct {
	// Path is the SQLite file path. Empty disables search history.
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml and TRAVEL_* environment
// variables, applying defaults for everything unset.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TRAVEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("store.path", "travelsearch.db")
	v.SetDefault("amadeus.client_id", "")
	v.SetDefault("amadeus.client_secret", "")
	v.SetDefault("amadeus.base_url", "https://test.api.amadeus.com")
	v.SetDefault("amadeus.currency", "USD")
	v.SetDefault("flights.max_results", engine.DefaultMaxResults)
	v.SetDefault("flights.provider_max_retries", engine.DefaultMaxRetries)
	v.SetDefault("flights.provider_timeout_seconds", 5)
	v.SetDefault("flights.agent_timeout_seconds", 20)
	v.SetDefault("flights.cache_ttl_seconds", 300)
	v.SetDefault("hotels.max_results", engine.DefaultMaxResults)
	v.SetDefault("hotels.provider_max_retries", engine.DefaultMaxRetries)
	v.SetDefault("hotels.provider_timeout_seconds", 15)
	v.SetDefault("hotels.agent_timeout_seconds", 60)
	v.SetDefault("hotels.cache_ttl_seconds", 300)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger from the log settings.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
