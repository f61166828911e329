// Package config provides configuration loading and structs for the humansearch server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/humansearch/internal/fuzzy"
)

// Config holds all configuration for the application.
type Config struct {
	Debug        bool               `yaml:"debug"`
	Server       ServerConfig       `yaml:"server"`
	Engine       EngineConfig       `yaml:"engine"`
	Dictionaries DictionariesConfig `yaml:"dictionaries"`
	Watch        WatchConfig        `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// EngineConfig holds indexing and search pipeline settings.
type EngineConfig struct {
	EmbeddingDimensions  int      `yaml:"embedding_dimensions"`
	DefaultLimit         int      `yaml:"default_limit"`
	DefaultTypoTolerance int      `yaml:"default_typo_tolerance"`
	FuzzyWeight          float64  `yaml:"fuzzy_weight"`
	FuzzyAlgorithms      []string `yaml:"fuzzy_algorithms"`
	// SemanticMinScore, when set, drops semantic matches whose cosine similarity is not
	// above it. Unset keeps every match.
	SemanticMinScore     *float64 `yaml:"semantic_min_score,omitempty"`
	PersonalizationBoost float64  `yaml:"personalization_boost"`
	HistoryCapacity      int      `yaml:"history_capacity"`
	SuggestionLimit      int      `yaml:"suggestion_limit"`
	SnippetWindow        int      `yaml:"snippet_window"`
	IndexWorkers         int      `yaml:"index_workers"`
	QueryCacheSize       int      `yaml:"query_cache_size"`
	ShardCount           int      `yaml:"shard_count"`
}

// Algorithms parses FuzzyAlgorithms.
func (e *EngineConfig) Algorithms() ([]fuzzy.Algorithm, error) {
	return fuzzy.ParseAlgorithms(e.FuzzyAlgorithms)
}

// DictionariesConfig points at optional YAML files extending the built-in dictionaries.
type DictionariesConfig struct {
	SynonymsPath string `yaml:"synonyms_path"`
	WordsPath    string `yaml:"words_path"`
}

// WatchConfig holds drop-folder watch settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Load reads and parses the config file at path, applies defaults, expands paths and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Dictionaries.SynonymsPath = expandPath(cfg.Dictionaries.SynonymsPath, configDir)
	cfg.Dictionaries.WordsPath = expandPath(cfg.Dictionaries.WordsPath, configDir)
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that defaults cannot repair.
func (c *Config) Validate() error {
	if _, err := c.Engine.Algorithms(); err != nil {
		return fmt.Errorf("invalid engine.fuzzy_algorithms: %w", err)
	}
	if t := c.Engine.DefaultTypoTolerance; t < 0 || t > fuzzy.MaxTolerance {
		return fmt.Errorf("invalid engine.default_typo_tolerance %d: must be 0..%d", t, fuzzy.MaxTolerance)
	}
	if c.Engine.DefaultLimit < 0 {
		return fmt.Errorf("invalid engine.default_limit %d", c.Engine.DefaultLimit)
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory. Empty paths stay empty.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
