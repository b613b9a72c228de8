package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Sources    Sources    `yaml:"sources"`
	Classifier Classifier `yaml:"classifier"`
	Cache      Cache      `yaml:"cache"`
	Learning   Learning   `yaml:"learning"`
	Fetch      Fetch      `yaml:"fetch"`
	Aggregate  Aggregate  `yaml:"aggregate"`
	Server     Server     `yaml:"server"`
	Output     Output     `yaml:"output"`
}

type Sources struct {
	Feeds []Feed `yaml:"feeds"`
}

type Feed struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

type Classifier struct {
	Strategy  string `yaml:"strategy"`
	Threshold int    `yaml:"threshold"`
	Remote    Remote `yaml:"remote"`
}

type Remote struct {
	URL       string `yaml:"url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

type Cache struct {
	MaxEntries int `yaml:"max_entries"`
}

type Learning struct {
	Enabled       bool `yaml:"enabled"`
	MinWordLength int  `yaml:"min_word_length"`
	MaxWords      int  `yaml:"max_words"`
}

type Fetch struct {
	EnrichContent bool `yaml:"enrich_content"`
}

type Aggregate struct {
	MaxConcurrentFetches int `yaml:"max_concurrent_fetches"`
	FeedTimeoutSeconds   int `yaml:"feed_timeout_seconds"`
}

type Server struct {
	Port               int `yaml:"port"`
	PageSize           int `yaml:"page_size"`
	SnapshotTTLMinutes int `yaml:"snapshot_ttl_minutes"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

// ConfigDir returns the XDG config directory for boasnoticias.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "boasnoticias")
}

// DataDir returns the XDG data directory for boasnoticias.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "boasnoticias")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/boasnoticias/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'boasnoticias init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Classifier: Classifier{
			Strategy:  "static",
			Threshold: 1,
			Remote: Remote{
				URL:       "https://api-inference.huggingface.co/models/pierreguillou/bert-base-cased-pt-sentiment",
				APIKeyEnv: "HUGGINGFACE_API_KEY",
			},
		},
		Cache: Cache{MaxEntries: 10000},
		Learning: Learning{
			Enabled:       true,
			MinWordLength: 4,
			MaxWords:      5000,
		},
		Aggregate: Aggregate{
			MaxConcurrentFetches: 4,
			FeedTimeoutSeconds:   15,
		},
		Server: Server{
			Port:               8000,
			PageSize:           20,
			SnapshotTTLMinutes: 10,
		},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG
// default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

// VocabularyPath returns the vocabulary database location.
func (c *Config) VocabularyPath() string {
	return filepath.Join(c.GetDataDir(), "vocabulary.db")
}

// FeedTimeout returns the per-feed retrieval timeout.
func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.Aggregate.FeedTimeoutSeconds) * time.Second
}

// SnapshotTTL returns how long a served aggregation snapshot stays
// fresh.
func (c *Config) SnapshotTTL() time.Duration {
	return time.Duration(c.Server.SnapshotTTLMinutes) * time.Minute
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
