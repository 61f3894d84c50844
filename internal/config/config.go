package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"catlog/internal/constants"
	"catlog/internal/domain"
	"catlog/internal/logs"
	"catlog/internal/stream"
)

// Config represents the top-level catlog configuration
type Config struct {
	ADB              string       `yaml:"adb"`
	Device           string       `yaml:"device"`
	EnvFile          string       `yaml:"env_file"`
	BufferSize       int          `yaml:"buffer_size"`
	BatchLimit       int          `yaml:"batch_limit"`
	PendingLimit     int          `yaml:"pending_limit"`
	WatchdogInterval string       `yaml:"watchdog_interval"`
	FlushInterval    string       `yaml:"flush_interval"`
	Filter           FilterConfig `yaml:"filter"`
}

// FilterConfig is the YAML form of the initial filter descriptor
type FilterConfig struct {
	MinLevel      string   `yaml:"min_level"`
	MaxLevel      string   `yaml:"max_level"`
	Tags          []string `yaml:"tags"`
	ExcludeTags   []string `yaml:"exclude_tags"`
	Search        string   `yaml:"search"`
	CaseSensitive bool     `yaml:"case_sensitive"`
	Regex         bool     `yaml:"regex"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ADB:          constants.DefaultADBPath,
		BufferSize:   constants.DefaultBufferSize,
		BatchLimit:   constants.DefaultFlushBatchLimit,
		PendingLimit: constants.DefaultPendingLimit,
	}
}

// Load reads and parses a configuration file
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	if err := CheckFilePermissions(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses configuration from YAML bytes and applies defaults
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	if config.ADB == "" {
		config.ADB = constants.DefaultADBPath
	}
	if config.BufferSize == 0 {
		config.BufferSize = constants.DefaultBufferSize
	}
	if config.BatchLimit == 0 {
		config.BatchLimit = constants.DefaultFlushBatchLimit
	}
	if config.PendingLimit == 0 {
		config.PendingLimit = constants.DefaultPendingLimit
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for invalid values
func Validate(c *Config) error {
	if c.BufferSize < 0 {
		return fmt.Errorf("%w: buffer_size must be positive", domain.ErrInvalidConfig)
	}
	if c.BatchLimit < 0 {
		return fmt.Errorf("%w: batch_limit must be positive", domain.ErrInvalidConfig)
	}
	if c.PendingLimit < 0 {
		return fmt.Errorf("%w: pending_limit must be positive", domain.ErrInvalidConfig)
	}
	if _, err := parseDuration(c.WatchdogInterval, constants.DefaultWatchdogInterval); err != nil {
		return fmt.Errorf("%w: watchdog_interval: %v", domain.ErrInvalidConfig, err)
	}
	if _, err := parseDuration(c.FlushInterval, constants.DefaultFlushInterval); err != nil {
		return fmt.Errorf("%w: flush_interval: %v", domain.ErrInvalidConfig, err)
	}
	if _, err := c.ToFilter(); err != nil {
		return err
	}
	return nil
}

// ToFilter converts the YAML filter section to a domain descriptor
func (c *Config) ToFilter() (domain.Filter, error) {
	f := domain.DefaultFilter()
	fc := c.Filter

	if fc.MinLevel != "" {
		level, ok := domain.ParseLevelName(fc.MinLevel)
		if !ok {
			return f, fmt.Errorf("%w: unknown level %q", domain.ErrInvalidConfig, fc.MinLevel)
		}
		f.MinLevel = level
	}
	if fc.MaxLevel != "" {
		level, ok := domain.ParseLevelName(fc.MaxLevel)
		if !ok {
			return f, fmt.Errorf("%w: unknown level %q", domain.ErrInvalidConfig, fc.MaxLevel)
		}
		f.MaxLevel = level
	}
	if f.MinLevel > f.MaxLevel {
		return f, fmt.Errorf("%w: min_level above max_level", domain.ErrInvalidConfig)
	}

	f.Tags = fc.Tags
	f.ExcludeTags = fc.ExcludeTags
	f.Search = fc.Search
	f.CaseSensitive = fc.CaseSensitive
	f.IsRegex = fc.Regex
	return f, nil
}

// ToStoreConfig converts the configuration into store tunables
func (c *Config) ToStoreConfig() logs.Config {
	cfg := logs.DefaultConfig()
	cfg.Capacity = c.BufferSize
	cfg.BatchLimit = c.BatchLimit
	cfg.PendingLimit = c.PendingLimit
	cfg.FlushInterval, _ = parseDuration(c.FlushInterval, constants.DefaultFlushInterval)
	return cfg
}

// ToSourceConfig converts the configuration into stream source tunables
func (c *Config) ToSourceConfig() stream.Config {
	cfg := stream.DefaultConfig()
	cfg.ADBPath = c.ADB
	cfg.WatchdogInterval, _ = parseDuration(c.WatchdogInterval, constants.DefaultWatchdogInterval)
	return cfg
}

func parseDuration(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	return time.ParseDuration(s)
}
