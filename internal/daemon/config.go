// Package daemon holds the long-running service configuration: where the
// ledger lives on disk, where the API listens, and the tuning knobs for
// report enrichment. Configuration is TOML, loaded from ~/.fairlane/config.toml
// (or $FAIRLANE_HOME/config.toml), with sane defaults when the file is absent.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ─── Configuration ──────────────────────────────────────────────────────────

// Config is the full daemon configuration tree.
type Config struct {
	API         APIConfig         `toml:"api"`
	Store       StoreConfig       `toml:"store"`
	Aggregation AggregationConfig `toml:"aggregation"`
	Metrics     MetricsConfig     `toml:"metrics"`
}

// APIConfig controls the HTTP listener.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port the API binds to.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig controls where the ledger database lives.
type StoreConfig struct {
	Dir string `toml:"dir"`
}

// AggregationConfig tunes profile enrichment for admin reports.
type AggregationConfig struct {
	LookupBatchSize   int `toml:"lookup_batch_size"`
	LookupConcurrency int `toml:"lookup_concurrency"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 3001,
		},
		Store: StoreConfig{
			Dir: filepath.Join(Home(), "data"),
		},
		Aggregation: AggregationConfig{
			LookupBatchSize:   5,
			LookupConcurrency: 10,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Home returns the fairlane state directory, honoring $FAIRLANE_HOME.
func Home() string {
	if env := os.Getenv("FAIRLANE_HOME"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fairlane"
	}
	return filepath.Join(home, ".fairlane")
}

// Load reads config.toml from the fairlane home directory, layering it over
// the defaults. A missing file is not an error.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(Home(), "config.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to config.toml in the fairlane home
// directory, creating the directory if needed.
func Save(cfg Config) error {
	dir := Home()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.toml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
