// Package config loads and saves the KaraCopy TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nomadcxx/karacopy/internal/logging"
	"github.com/Nomadcxx/karacopy/internal/paths"
	"github.com/spf13/viper"
)

// ExtensionsConfig lists the file extensions the scanner recognizes.
// Extensions are matched without the dot, case-insensitively.
type ExtensionsConfig struct {
	Media  []string `mapstructure:"media"`
	Lyrics []string `mapstructure:"lyrics"`
	Art    []string `mapstructure:"art"`
}

// OptionsConfig contains general options
type OptionsConfig struct {
	MinYear   int  `mapstructure:"min_year"`   // 0 = unbounded below
	MaxYear   int  `mapstructure:"max_year"`   // 0 = unbounded above
	AssumeYes bool `mapstructure:"assume_yes"` // skip confirmation prompts
}

type Config struct {
	Extensions ExtensionsConfig `mapstructure:"extensions"`
	Options    OptionsConfig    `mapstructure:"options"`
	Logging    logging.Config   `mapstructure:"logging"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Extensions: ExtensionsConfig{
			Media:  []string{"mp3", "m4a"},
			Lyrics: []string{"lrc"},
			Art:    []string{"jpg", "jpeg", "png"},
		},
		Options: OptionsConfig{
			MinYear:   0,
			MaxYear:   0,
			AssumeYes: false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from the default location or returns defaults
func Load() (*Config, error) {
	configPath, err := paths.ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("unable to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads configuration from an explicit file path.
// A missing file is not an error; defaults are returned.
func LoadFrom(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default location
func (c *Config) Save() error {
	configFile, err := paths.ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}

	return os.WriteFile(configFile, []byte(c.ToTOML()), 0644)
}

// ConfigExists reports whether a config file is present
func ConfigExists() bool {
	path, err := paths.ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func tomlStringList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// ToTOML renders the config as a commented TOML document
func (c *Config) ToTOML() string {
	return fmt.Sprintf(`# KaraCopy Configuration
# Generated by: karacopy config init

# ============================================================================
# FILE EXTENSIONS
# Which files the scanner considers. Media files are only copied when a
# lyrics file with the same base name sits next to them.
# ============================================================================
[extensions]
media = %s
lyrics = %s
art = %s

# ============================================================================
# OPTIONS
# Default year bounds applied when --min-year/--max-year are not given.
# 0 means unbounded. Album folders carry their year in square brackets,
# e.g. "Danseparc [1983]".
# ============================================================================
[options]
min_year = %d
max_year = %d
assume_yes = %t

# ============================================================================
# LOGGING
# ============================================================================
[logging]
level = %q
file = %q
max_size_mb = %d
max_backups = %d
`,
		tomlStringList(c.Extensions.Media),
		tomlStringList(c.Extensions.Lyrics),
		tomlStringList(c.Extensions.Art),
		c.Options.MinYear,
		c.Options.MaxYear,
		c.Options.AssumeYes,
		c.Logging.Level,
		c.Logging.File,
		c.Logging.MaxSizeMB,
		c.Logging.MaxBackups,
	)
}
