// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// firstSeason is the earliest championship year the timing service covers.
const firstSeason = 1950

// Config holds all pitwall configuration.
type Config struct {
	Runtime Runtime `yaml:"runtime"`
	Cache   Cache   `yaml:"cache"`
	API     API     `yaml:"api"`
}

// Runtime holds dashboard execution settings.
type Runtime struct {
	Season  int           `yaml:"season"`  // Default season for pickers; 0 means the current year
	Timeout time.Duration `yaml:"timeout"` // Per-request timeout against the timing service
}

// Cache holds the local response cache settings.
type Cache struct {
	Dir string `yaml:"dir"` // Directory backing the disk cache
}

// API holds timing service settings.
type API struct {
	BaseURL string `yaml:"base_url"` // Empty selects the built-in production endpoint
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Runtime: Runtime{
			Season:  0,
			Timeout: 30 * time.Second,
		},
		Cache: Cache{
			Dir: "cache",
		},
	}
}

// Season returns the configured season, resolving 0 to the current year.
func (c *Config) Season() int {
	if c.Runtime.Season == 0 {
		return time.Now().Year()
	}
	return c.Runtime.Season
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Runtime.Season != 0 && c.Runtime.Season < firstSeason {
		return fmt.Errorf("config: runtime.season must be 0 (current) or >= %d, got %d", firstSeason, c.Runtime.Season)
	}
	if c.Runtime.Timeout <= 0 {
		return fmt.Errorf("config: runtime.timeout must be positive, got %v", c.Runtime.Timeout)
	}
	if c.Cache.Dir == "" {
		return errors.New("config: cache.dir cannot be empty")
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: PITWALL_SEASON, PITWALL_TIMEOUT, PITWALL_CACHE_DIR,
// PITWALL_API_BASE_URL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PITWALL_SEASON"); v != "" {
		var season int
		if _, err := fmt.Sscanf(v, "%d", &season); err != nil {
			return fmt.Errorf("config: invalid PITWALL_SEASON %q: %w", v, err)
		}
		c.Runtime.Season = season
	}
	if v := os.Getenv("PITWALL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid PITWALL_TIMEOUT %q: %w", v, err)
		}
		c.Runtime.Timeout = d
	}
	if v := os.Getenv("PITWALL_CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv("PITWALL_API_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Runtime *rawRuntime `yaml:"runtime"`
	Cache   *rawCache   `yaml:"cache"`
	API     *rawAPI     `yaml:"api"`
}

type rawRuntime struct {
	Season  *int           `yaml:"season"`
	Timeout *time.Duration `yaml:"timeout"`
}

type rawCache struct {
	Dir *string `yaml:"dir"`
}

type rawAPI struct {
	BaseURL *string `yaml:"base_url"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Runtime != nil {
		if layer.Runtime.Season != nil {
			c.Runtime.Season = *layer.Runtime.Season
		}
		if layer.Runtime.Timeout != nil {
			c.Runtime.Timeout = *layer.Runtime.Timeout
		}
	}
	if layer.Cache != nil {
		if layer.Cache.Dir != nil {
			c.Cache.Dir = *layer.Cache.Dir
		}
	}
	if layer.API != nil {
		if layer.API.BaseURL != nil {
			c.API.BaseURL = *layer.API.BaseURL
		}
	}
}
