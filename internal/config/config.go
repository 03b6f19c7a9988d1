// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Configuration holds all configuration for mortgage-calculator.
type Configuration struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging,omitempty"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output,omitempty"`
	Display DisplayConfig `mapstructure:"display" yaml:"display,omitempty"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server,omitempty"`
	Session SessionConfig `mapstructure:"session" yaml:"session,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json, yaml
}

// DisplayConfig controls how amounts are rendered.
type DisplayConfig struct {
	Locale         string `mapstructure:"locale" yaml:"locale,omitempty"`
	CurrencySymbol string `mapstructure:"currencySymbol" yaml:"currencySymbol,omitempty"`
}

// ServerConfig defines runtime parameters for the HTTP server.
type ServerConfig struct {
	Address     string          `mapstructure:"address" yaml:"address,omitempty"`
	MaxBodySize string          `mapstructure:"maxBodySize" yaml:"maxBodySize,omitempty"`
	RateLimit   RateLimitConfig `mapstructure:"rateLimit" yaml:"rateLimit,omitempty"`

	maxBodySizeBytes int64
}

// RateLimitConfig bounds the request rate per client address. A
// non-positive RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requestsPerSecond" yaml:"requestsPerSecond,omitempty"`
	Burst             int     `mapstructure:"burst" yaml:"burst,omitempty"`
}

// SessionConfig selects where per-browser results are kept.
type SessionConfig struct {
	Backend    string      `mapstructure:"backend" yaml:"backend,omitempty"` // memory, redis
	TTL        string      `mapstructure:"ttl" yaml:"ttl,omitempty"`
	CookieName string      `mapstructure:"cookieName" yaml:"cookieName,omitempty"`
	Redis      RedisConfig `mapstructure:"redis" yaml:"redis,omitempty"`
}

// RedisConfig locates the redis session backend.
type RedisConfig struct {
	Address string `mapstructure:"address" yaml:"address,omitempty"`
	DB      int    `mapstructure:"db" yaml:"db,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Output:  OutputConfig{Format: constants.OutputFormatPretty},
		Display: DisplayConfig{
			Locale:         constants.DefaultLocale,
			CurrencySymbol: constants.DefaultCurrencySymbol,
		},
		Server: ServerConfig{
			Address:     constants.DefaultServerAddress,
			MaxBodySize: fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes),
			RateLimit: RateLimitConfig{
				RequestsPerSecond: constants.DefaultRequestsPerSecond,
				Burst:             constants.DefaultRateBurst,
			},
			maxBodySizeBytes: constants.DefaultMaxBodySizeBytes,
		},
		Session: SessionConfig{
			Backend:    constants.SessionBackendMemory,
			TTL:        constants.DefaultSessionTTL,
			CookieName: constants.DefaultSessionCookieName,
			Redis:      RedisConfig{Address: constants.DefaultRedisAddress},
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.outputFile", d.Logging.OutputFile)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("display.locale", d.Display.Locale)
	v.SetDefault("display.currencySymbol", d.Display.CurrencySymbol)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("server.maxBodySize", d.Server.MaxBodySize)
	v.SetDefault("server.rateLimit.requestsPerSecond", d.Server.RateLimit.RequestsPerSecond)
	v.SetDefault("server.rateLimit.burst", d.Server.RateLimit.Burst)
	v.SetDefault("session.backend", d.Session.Backend)
	v.SetDefault("session.ttl", d.Session.TTL)
	v.SetDefault("session.cookieName", d.Session.CookieName)
	v.SetDefault("session.redis.address", d.Session.Redis.Address)
	v.SetDefault("session.redis.db", d.Session.Redis.DB)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file yields defaults, still subject to
// MORTGAGE_* environment overrides.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %w", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	if err := configuration.normalize(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

func (c *Configuration) normalize() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}

	if strings.TrimSpace(c.Display.Locale) == "" {
		c.Display.Locale = constants.DefaultLocale
	}
	if _, err := language.Parse(c.Display.Locale); err != nil {
		return fmt.Errorf("invalid display locale %q: %w", c.Display.Locale, err)
	}
	if c.Display.CurrencySymbol == "" {
		c.Display.CurrencySymbol = constants.DefaultCurrencySymbol
	}

	if err := c.Server.normalize(); err != nil {
		return err
	}

	if strings.TrimSpace(c.Session.TTL) != "" {
		if _, err := time.ParseDuration(c.Session.TTL); err != nil {
			return fmt.Errorf("invalid session ttl %q: %w", c.Session.TTL, err)
		}
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = constants.DefaultSessionCookieName
	}
	return nil
}

func (s *ServerConfig) normalize() error {
	if s.Address == "" {
		s.Address = constants.DefaultServerAddress
	}

	bytes, err := ParseSize(s.MaxBodySize)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxBodySizeBytes
	}
	s.maxBodySizeBytes = bytes
	return nil
}

// MaxBodySizeBytes returns the configured request body limit in bytes.
func (s ServerConfig) MaxBodySizeBytes() int64 {
	if s.maxBodySizeBytes <= 0 {
		return constants.DefaultMaxBodySizeBytes
	}
	return s.maxBodySizeBytes
}

// SetMaxBodySizeBytes overrides the configured request body limit.
func (s *ServerConfig) SetMaxBodySizeBytes(size int64) {
	if size > 0 {
		s.maxBodySizeBytes = size
		s.MaxBodySize = fmt.Sprintf("%d", size)
	}
}

// TTLDuration returns the session lifetime, falling back to the default
// when unset or unparsable.
func (s SessionConfig) TTLDuration() time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(s.TTL)); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(constants.DefaultSessionTTL)
	return d
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	switch c.Session.Backend {
	case constants.SessionBackendMemory, constants.SessionBackendRedis:
	default:
		warnings = append(warnings, fmt.Sprintf(
			"unknown session backend %q, falling back to %s",
			c.Session.Backend, constants.SessionBackendMemory))
		c.Session.Backend = constants.SessionBackendMemory
	}

	if c.Session.Backend == constants.SessionBackendRedis && strings.TrimSpace(c.Session.Redis.Address) == "" {
		warnings = append(warnings, fmt.Sprintf(
			"redis session backend has no address, using %s", constants.DefaultRedisAddress))
		c.Session.Redis.Address = constants.DefaultRedisAddress
	}

	if ttl, err := time.ParseDuration(strings.TrimSpace(c.Session.TTL)); err != nil || ttl <= 0 {
		warnings = append(warnings, fmt.Sprintf(
			"session ttl %q is not a positive duration, using %s", c.Session.TTL, constants.DefaultSessionTTL))
	}

	if c.Server.RateLimit.RequestsPerSecond <= 0 {
		warnings = append(warnings, "rate limiting is disabled (requestsPerSecond <= 0)")
	} else if c.Server.RateLimit.Burst <= 0 {
		warnings = append(warnings, fmt.Sprintf(
			"rate limit burst %d is not positive, using %d", c.Server.RateLimit.Burst, constants.DefaultRateBurst))
		c.Server.RateLimit.Burst = constants.DefaultRateBurst
	}

	return warnings
}
