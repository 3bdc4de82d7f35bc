// Package config carries the client configuration with defaults, config
// file and environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds the configuration for the error-handling client.
type Config struct {
	// Authentication
	APIKey string `mapstructure:"api_key" json:"api_key"`

	// Connection settings
	BaseURL string        `mapstructure:"base_url" json:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`

	// Retry configuration
	MaxRetries       int           `mapstructure:"max_retries" json:"max_retries"`
	RetryWaitTime    time.Duration `mapstructure:"retry_wait_time" json:"retry_wait_time"`
	RetryMaxWaitTime time.Duration `mapstructure:"retry_max_wait_time" json:"retry_max_wait_time"`

	// Circuit breaker configuration
	CircuitBreakerEnabled          bool          `mapstructure:"circuit_breaker_enabled" json:"circuit_breaker_enabled"`
	CircuitBreakerFailureThreshold uint32        `mapstructure:"circuit_breaker_failure_threshold" json:"circuit_breaker_failure_threshold"`
	CircuitBreakerTimeout          time.Duration `mapstructure:"circuit_breaker_timeout" json:"circuit_breaker_timeout"`
	CircuitBreakerMaxRequests      uint32        `mapstructure:"circuit_breaker_max_requests" json:"circuit_breaker_max_requests"`

	// Rate limiting (client-side)
	EnableRateLimit bool `mapstructure:"enable_rate_limit" json:"enable_rate_limit"`
	RateLimit       int  `mapstructure:"rate_limit" json:"rate_limit"`
	RateBurst       int  `mapstructure:"rate_burst" json:"rate_burst"`

	// Observability
	EnableMetrics  bool   `mapstructure:"enable_metrics" json:"enable_metrics"`
	EnableTracing  bool   `mapstructure:"enable_tracing" json:"enable_tracing"`
	LogLevel       string `mapstructure:"log_level" json:"log_level"`
	LogJSON        bool   `mapstructure:"log_json" json:"log_json"`
	ServiceName    string `mapstructure:"service_name" json:"service_name"`
	ServiceVersion string `mapstructure:"service_version" json:"service_version"`

	// User Agent and custom headers
	UserAgent     string            `mapstructure:"user_agent" json:"user_agent"`
	CustomHeaders map[string]string `mapstructure:"custom_headers" json:"custom_headers"`

	// Development/Debug
	Debug bool `mapstructure:"debug" json:"debug"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeout:                        30 * time.Second,
		MaxRetries:                     3,
		RetryWaitTime:                  1 * time.Second,
		RetryMaxWaitTime:               30 * time.Second,
		CircuitBreakerEnabled:          true,
		CircuitBreakerFailureThreshold: 5,
		CircuitBreakerTimeout:          60 * time.Second,
		CircuitBreakerMaxRequests:      3,
		EnableRateLimit:                false,
		RateLimit:                      100,
		RateBurst:                      200,
		EnableMetrics:                  true,
		EnableTracing:                  false,
		LogLevel:                       "info",
		ServiceName:                    "errorhandler-client",
		ServiceVersion:                 "1.0.0",
		UserAgent:                      "errorhandler-go-sdk/1.0.0",
		CustomHeaders:                  make(map[string]string),
	}
}

// Load reads configuration from defaults, an optional errorhandler.yaml
// config file and ERRORHANDLER_* environment variables, in increasing
// precedence.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("errorhandler")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.errorhandler")
	v.AddConfigPath("/etc/errorhandler")

	// Config file is optional; env and defaults still apply without one.
	if err := v.ReadInConfig(); err == nil {
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config file: %w", err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadFromEnv applies ERRORHANDLER_* environment overrides.
func loadFromEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if val := os.Getenv("ERRORHANDLER_" + key); val != "" {
			*dst = val
		}
	}
	setBool := func(key string, dst *bool) {
		if val := os.Getenv("ERRORHANDLER_" + key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				*dst = b
			}
		}
	}
	setInt := func(key string, dst *int) {
		if val := os.Getenv("ERRORHANDLER_" + key); val != "" {
			if n, err := strconv.Atoi(val); err == nil && n >= 0 {
				*dst = n
			}
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if val := os.Getenv("ERRORHANDLER_" + key); val != "" {
			if d, err := time.ParseDuration(val); err == nil {
				*dst = d
			}
		}
	}

	setString("API_KEY", &cfg.APIKey)
	setString("BASE_URL", &cfg.BaseURL)
	setDuration("TIMEOUT", &cfg.Timeout)

	setInt("MAX_RETRIES", &cfg.MaxRetries)
	setDuration("RETRY_WAIT_TIME", &cfg.RetryWaitTime)
	setDuration("RETRY_MAX_WAIT_TIME", &cfg.RetryMaxWaitTime)

	setBool("CIRCUIT_BREAKER_ENABLED", &cfg.CircuitBreakerEnabled)
	if val := os.Getenv("ERRORHANDLER_CB_FAILURE_THRESHOLD"); val != "" {
		if n, err := strconv.ParseUint(val, 10, 32); err == nil && n > 0 {
			cfg.CircuitBreakerFailureThreshold = uint32(n)
		}
	}
	setDuration("CB_TIMEOUT", &cfg.CircuitBreakerTimeout)
	if val := os.Getenv("ERRORHANDLER_CB_MAX_REQUESTS"); val != "" {
		if n, err := strconv.ParseUint(val, 10, 32); err == nil && n > 0 {
			cfg.CircuitBreakerMaxRequests = uint32(n)
		}
	}

	setBool("ENABLE_RATE_LIMIT", &cfg.EnableRateLimit)
	setInt("RATE_LIMIT", &cfg.RateLimit)
	setInt("RATE_BURST", &cfg.RateBurst)

	setBool("ENABLE_METRICS", &cfg.EnableMetrics)
	setBool("ENABLE_TRACING", &cfg.EnableTracing)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setBool("LOG_JSON", &cfg.LogJSON)
	setString("SERVICE_NAME", &cfg.ServiceName)
	setString("SERVICE_VERSION", &cfg.ServiceVersion)

	setString("USER_AGENT", &cfg.UserAgent)
	setBool("DEBUG", &cfg.Debug)
}

// Validate checks the configuration for values the client cannot run with.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.CircuitBreakerEnabled && c.CircuitBreakerFailureThreshold == 0 {
		return fmt.Errorf("circuit breaker failure threshold must be positive")
	}
	if c.EnableRateLimit && c.RateLimit <= 0 {
		return fmt.Errorf("rate limit must be positive when enabled")
	}
	return nil
}
