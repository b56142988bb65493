package shared

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Storage backend names accepted by [StorageConfig.Backend].
const (
	BackendAuto   = "auto"
	BackendSQLite = "sqlite"
	BackendFlat   = "flat"
)

// Flat store engine names accepted by [FlatConfig.Engine].
const (
	EngineFile   = "file"
	EngineRedis  = "redis"
	EngineMemory = "memory"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
}

// DatabaseConfig contains SQLite connection settings for the structured backend.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// StorageConfig selects which backend serves the recipe and favorite stores.
//
// "auto" tries SQLite first and falls back to the flat store when it cannot be opened.
type StorageConfig struct {
	Backend string     `toml:"backend"`
	Flat    FlatConfig `toml:"flat"`
}

// FlatConfig contains settings for the key-value fallback store.
type FlatConfig struct {
	Engine   string `toml:"engine"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// LogConfig contains logger settings. An empty File logs to stderr.
type LogConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
	MaxFiles  int    `toml:"max_files"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks backend and engine names.
func (c *Config) Validate() error {
	if !slices.Contains([]string{BackendAuto, BackendSQLite, BackendFlat}, c.Storage.Backend) {
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}
	if !slices.Contains([]string{EngineFile, EngineRedis, EngineMemory}, c.Storage.Flat.Engine) {
		return fmt.Errorf("%w: unknown flat engine %q", ErrInvalidConfig, c.Storage.Flat.Engine)
	}
	if c.Storage.Flat.Engine == EngineRedis && c.Storage.Flat.RedisURL == "" {
		return fmt.Errorf("%w: redis engine requires storage.flat.redis_url", ErrInvalidConfig)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig writes config to path as TOML, replacing any existing file.
func SaveConfig(path string, config *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
