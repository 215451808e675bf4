package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/beanlog/beanlog/pkg/beanlog/internalerr"
)

// Config holds everything a batch run needs. Credentials come from the
// file or from the environment; there are no embedded defaults, and a
// run with missing credentials fails before any entity is processed.
type Config struct {
	DBPath  string        `yaml:"db_path"`
	Search  SearchConfig  `yaml:"search"`
	Geocode GeocodeConfig `yaml:"geocode"`
	Batch   BatchConfig   `yaml:"batch"`
}

// SearchConfig configures the place-search provider.
type SearchConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Endpoint     string `yaml:"endpoint"`
}

// GeocodeConfig configures the geocoding provider.
type GeocodeConfig struct {
	KeyID    string `yaml:"key_id"`
	Key      string `yaml:"key"`
	Endpoint string `yaml:"endpoint"`
}

// BatchConfig tunes the enrichment loop.
type BatchConfig struct {
	// Display is the number of candidates requested per query.
	Display int `yaml:"display"`
	// RequestIntervalMS spaces successive provider calls.
	RequestIntervalMS int `yaml:"request_interval_ms"`
	// EntityIntervalMS spaces successive entities.
	EntityIntervalMS int `yaml:"entity_interval_ms"`
}

// Environment variable overrides for credentials.
const (
	EnvClientID     = "NAVER_CLIENT_ID"
	EnvClientSecret = "NAVER_CLIENT_SECRET"
	EnvGeocodeKeyID = "NCP_APIGW_KEY_ID"
	EnvGeocodeKey   = "NCP_APIGW_KEY"
)

// Default returns a config with endpoint and batch defaults set and no
// credentials.
func Default() *Config {
	return &Config{
		DBPath: "beanlog.db",
		Search: SearchConfig{
			Endpoint: "https://openapi.naver.com/v1/search/local.json",
		},
		Geocode: GeocodeConfig{
			Endpoint: "https://maps.apigw.ntruss.com/map-geocode/v2/geocode",
		},
		Batch: BatchConfig{
			Display:           5,
			RequestIntervalMS: 100,
			EntityIntervalMS:  250,
		},
	}
}

// Load reads a YAML config file, fills defaults, and applies
// environment overrides. An empty path yields the defaults plus
// environment credentials.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvClientID); v != "" {
		c.Search.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		c.Search.ClientSecret = v
	}
	if v := os.Getenv(EnvGeocodeKeyID); v != "" {
		c.Geocode.KeyID = v
	}
	if v := os.Getenv(EnvGeocodeKey); v != "" {
		c.Geocode.Key = v
	}
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.Search.Endpoint == "" {
		c.Search.Endpoint = def.Search.Endpoint
	}
	if c.Geocode.Endpoint == "" {
		c.Geocode.Endpoint = def.Geocode.Endpoint
	}
	if c.Batch.Display <= 0 {
		c.Batch.Display = def.Batch.Display
	}
	if c.Batch.RequestIntervalMS <= 0 {
		c.Batch.RequestIntervalMS = def.Batch.RequestIntervalMS
	}
	if c.Batch.EntityIntervalMS <= 0 {
		c.Batch.EntityIntervalMS = def.Batch.EntityIntervalMS
	}
}

// ValidateSearch fails when the search credentials are absent.
func (c *Config) ValidateSearch() error {
	if c.Search.ClientID == "" || c.Search.ClientSecret == "" {
		return fmt.Errorf("%w: search credentials missing (set %s and %s)",
			internalerr.ErrInvalidConfig, EnvClientID, EnvClientSecret)
	}
	return nil
}

// ValidateGeocode fails when the geocoding credentials are absent.
func (c *Config) ValidateGeocode() error {
	if c.Geocode.KeyID == "" || c.Geocode.Key == "" {
		return fmt.Errorf("%w: geocode credentials missing (set %s and %s)",
			internalerr.ErrInvalidConfig, EnvGeocodeKeyID, EnvGeocodeKey)
	}
	return nil
}

// RequestInterval returns the provider-call spacing as a duration.
func (c *Config) RequestInterval() time.Duration {
	return time.Duration(c.Batch.RequestIntervalMS) * time.Millisecond
}

// EntityInterval returns the per-entity spacing as a duration.
func (c *Config) EntityInterval() time.Duration {
	return time.Duration(c.Batch.EntityIntervalMS) * time.Millisecond
}
