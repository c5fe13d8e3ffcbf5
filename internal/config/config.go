package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// backend gateway
	GatewayBaseURL     string `toml:"gateway_base_url"`
	GatewayTimeoutSec  int    `toml:"gateway_timeout_sec"`
	ProfileCacheTTLSec int    `toml:"profile_cache_ttl_sec"`

	// dashboard
	DefaultLocale            string   `toml:"default_locale"`
	TimeZone                 string   `toml:"time_zone"`
	SessionIdleTTLMin        int      `toml:"session_idle_ttl_min"`
	MutationsRateLimitPerMin int      `toml:"mutations_rate_limit_per_min"`
	AllowedOrigins           []string `toml:"allowed_origins"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
}

type Toml struct {
	Development *Config
	Production  *Config
	Test        *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	case "test":
		return t.Test, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the config of the given env, with
// defaults applied and validated.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return FromToml(&t, env)
}

// Parse is Load, for config already in memory.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return FromToml(&t, env)
}

func FromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config for env: %s", env)
	}

	cfg.setDefaults(env)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) setDefaults(env string) {
	if c.Environment == "" {
		c.Environment = strings.ToLower(env)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.GatewayTimeoutSec == 0 {
		c.GatewayTimeoutSec = 10
	}
	if c.DefaultLocale == "" {
		c.DefaultLocale = "en"
	}
	if c.TimeZone == "" {
		c.TimeZone = "UTC"
	}
	if c.SessionIdleTTLMin == 0 {
		c.SessionIdleTTLMin = 30
	}
	if c.MutationsRateLimitPerMin == 0 {
		c.MutationsRateLimitPerMin = 60
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.GatewayBaseURL == "" {
		errs = append(errs, errors.New("gateway_base_url not set"))
	}
	if c.GatewayTimeoutSec < 0 {
		errs = append(errs, errors.New("gateway_timeout_sec is negative"))
	}
	if c.ProfileCacheTTLSec < 0 {
		errs = append(errs, errors.New("profile_cache_ttl_sec is negative"))
	}
	if c.SessionIdleTTLMin < 0 {
		errs = append(errs, errors.New("session_idle_ttl_min is negative"))
	}
	if c.MutationsRateLimitPerMin < 0 {
		errs = append(errs, errors.New("mutations_rate_limit_per_min is negative"))
	}
	if c.RedisHost == "" || c.RedisPort == "" {
		errs = append(errs, errors.New("redis host or port not set"))
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("time_zone: %w", err))
	}
	return errors.Join(errs...)
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) GatewayTimeout() time.Duration {
	return time.Duration(c.GatewayTimeoutSec) * time.Second
}

func (c *Config) ProfileCacheTTL() time.Duration {
	return time.Duration(c.ProfileCacheTTLSec) * time.Second
}

func (c *Config) SessionIdleTTL() time.Duration {
	return time.Duration(c.SessionIdleTTLMin) * time.Minute
}
