package config

import "time"

// Config represents the complete application configuration, merged from the
// config file, environment variables, and flag overrides.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	API     APIConfig     `mapstructure:"api"`
	Quota   QuotaConfig   `mapstructure:"quota"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Health  HealthConfig  `mapstructure:"health"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig contains database configuration for libsql/Turso. The request
// ledger lives here.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// APIConfig contains the Spoonacular client configuration. Key is a secret
// and must come from the environment or config file, never source.
type APIConfig struct {
	Key           string        `mapstructure:"key"`
	BaseURL       string        `mapstructure:"base_url"`
	SearchTimeout time.Duration `mapstructure:"search_timeout"`
	BulkTimeout   time.Duration `mapstructure:"bulk_timeout"`
}

// QuotaConfig bounds outbound API calls per calendar day. MaxDailyRequests
// should stay below the remote API's hard cap to leave a safety buffer.
type QuotaConfig struct {
	MaxDailyRequests int `mapstructure:"max_daily_requests"`
}

// CacheConfig controls the in-process search result cache.
type CacheConfig struct {
	Capacity    int           `mapstructure:"capacity"`
	NegativeTTL time.Duration `mapstructure:"negative_ttl"`
}

// LoggingConfig contains logging configuration.
// Valid levels: trace, debug, info, warn, error.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HealthConfig contains health check configuration.
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
