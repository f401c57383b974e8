// Package config provides configuration loading and structs for the Kue server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/kue/internal/models"
	"github.com/hyperjump/kue/internal/ranking"
)

// DefaultPath is where the CLI looks for its config file.
const DefaultPath = "/usr/local/etc/kue/config.yaml"

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Hubs      models.Hubs     `yaml:"hubs"`
	Search    SearchConfig    `yaml:"search"`
	Community CommunityConfig `yaml:"community"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StorageConfig holds paths for the database and people index.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	// BleveIndexPath keeps the people index on disk; empty keeps it in memory.
	BleveIndexPath string `yaml:"bleve_index_path"`
}

// DatasetConfig names the relationship dataset file.
type DatasetConfig struct {
	// Path is a .yaml, .yml, .json or .xlsx file. Empty uses the stored dataset or the built-in fixture.
	Path string `yaml:"path"`
	// Watch reloads Path when it changes.
	Watch bool `yaml:"watch"`
}

// SearchConfig holds result limits and relevance scoring settings.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
	// FuzzyNameBoost weights name matches over title/company in the typo-tolerant fallback.
	FuzzyNameBoost float64 `yaml:"fuzzy_name_boost"`

	ranking.RankingConfig `yaml:",inline"`
}

// CommunityConfig holds community signal settings.
type CommunityConfig struct {
	// HomeCompany is never offered as a bridge company.
	HomeCompany string               `yaml:"home_company"`
	Circle      models.TrustedCircle `yaml:"circle"`
}

// Addr returns host:port for the HTTP listener.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
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
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	if cfg.Storage.BleveIndexPath != "" {
		cfg.Storage.BleveIndexPath = expandPath(cfg.Storage.BleveIndexPath, configDir)
	}
	if cfg.Dataset.Path != "" {
		cfg.Dataset.Path = expandPath(cfg.Dataset.Path, configDir)
	}

	return &cfg, nil
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
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) || path == ":memory:" {
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
