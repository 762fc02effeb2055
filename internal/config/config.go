package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	SourceRoots    []string      `toml:"source_roots"`
	Languages      []string      `toml:"languages"`
	StrictRegistry bool          `toml:"strict_registry"`
	Exclude        Exclude       `toml:"exclude"`
	Watch          Watch         `toml:"watch"`
	Output         Output        `toml:"output"`
	History        History       `toml:"history"`
	Observability  Observability `toml:"observability"`
}

type Exclude struct {
	Dirs     []string `toml:"dirs"`
	Files    []string `toml:"files"`
	Entities []string `toml:"entities"` // entity names dropped after extraction
}

type Watch struct {
	Debounce      time.Duration `toml:"debounce"`
	RescansPerMin float64       `toml:"rescans_per_min"`
}

type Output struct {
	DOT string `toml:"dot"`
	TSV string `toml:"tsv"`
}

type History struct {
	Path string `toml:"path"`
}

type Observability struct {
	Listen       string `toml:"listen"`        // promhttp + health address, "" disables
	OTLPEndpoint string `toml:"otlp_endpoint"` // trace exporter target, "" disables
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if len(cfg.SourceRoots) == 0 {
		cfg.SourceRoots = []string{"."}
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.RescansPerMin == 0 {
		cfg.Watch.RescansPerMin = 30
	}
}
