// Package config loads and validates stackscan configuration from
// .stackscan/config.json at the project root, with defaults for everything.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"stackscan/internal/hashing"
)

// configVersion is the supported configuration file version.
const configVersion = 2

// Config represents the complete stackscan configuration (v2 schema)
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Cache    CacheConfig    `json:"cache" mapstructure:"cache"`
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// CacheConfig contains analysis cache configuration
type CacheConfig struct {
	// Root is the cache directory; "~" expands to the home directory
	Root string `json:"root" mapstructure:"root"`
	// TTLDays is the entry lifetime in days
	TTLDays int `json:"ttlDays" mapstructure:"ttlDays"`
	// Compress stores entries gzip-compressed
	Compress bool `json:"compress" mapstructure:"compress"`
}

// TTL returns the cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLDays) * 24 * time.Hour
}

// AnalysisConfig contains detector configuration
type AnalysisConfig struct {
	// IgnoreDirs are directory names excluded from tree walks
	IgnoreDirs []string `json:"ignoreDirs" mapstructure:"ignoreDirs"`
	// MaxDepth caps recursion depth for the language census
	MaxDepth int `json:"maxDepth" mapstructure:"maxDepth"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: configVersion,
		Cache: CacheConfig{
			Root:    "~/.stackscan/cache",
			TTLDays: 30,
		},
		Analysis: AnalysisConfig{
			IgnoreDirs: append([]string(nil), hashing.DefaultSkipDirs...),
			MaxDepth:   8,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .stackscan/config.json under the
// project root, returning defaults when no config file exists.
func LoadConfig(projectRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", configVersion)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".stackscan"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .stackscan/config.json
func (c *Config) Save(projectRoot string) error {
	dir := filepath.Join(projectRoot, ".stackscan")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != configVersion {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Cache.TTLDays < 0 {
		return &ConfigError{Field: "cache.ttlDays", Message: "must not be negative"}
	}
	if c.Analysis.MaxDepth < 0 {
		return &ConfigError{Field: "analysis.maxDepth", Message: "must not be negative"}
	}
	switch c.Logging.Format {
	case "", "json", "human":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be json or human"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
