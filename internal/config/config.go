package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Mapping  MappingConfig  `toml:"mapping"`
	Report   ReportConfig   `toml:"report"`
	Calendar CalendarConfig `toml:"calendar"`
}

type StorageConfig struct {
	// DataDir holds the record database. Empty means
	// ~/.local/share/effortscope.
	DataDir string `toml:"data_dir"`
}

type MappingConfig struct {
	// Path to the team mapping JSON file. Empty means
	// team_mapping.json in the config directory.
	Path string `toml:"path"`
}

type ReportConfig struct {
	TopKeywords      int `toml:"top_keywords"`
	KeywordMinLength int `toml:"keyword_min_length"`
}

type CalendarConfig struct {
	// Actor and Category assigned to records imported from a calendar.
	Actor    string `toml:"actor"`
	Category string `toml:"category"`
}

func DefaultConfig() Config {
	return Config{
		Report: ReportConfig{
			TopKeywords:      20,
			KeywordMinLength: 3,
		},
		Calendar: CalendarConfig{
			Actor:    ":Meetings",
			Category: "Meetings",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "effortscope"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("EFFORTSCOPE_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("EFFORTSCOPE_MAPPING"); v != "" {
		cfg.Mapping.Path = v
	}
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// DatabasePath resolves the record database location, honoring the
// configured data directory.
func (c *Config) DatabasePath() (string, error) {
	dir := c.Storage.DataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("finding home directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "effortscope")
	}
	return filepath.Join(dir, "records.db"), nil
}

// MappingPath resolves the team mapping file location.
func (c *Config) MappingPath() (string, error) {
	if c.Mapping.Path != "" {
		return c.Mapping.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "team_mapping.json"), nil
}
