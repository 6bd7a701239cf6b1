// Package config loads logmerge defaults from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sliink/logmerge/internal/model"
)

// Config holds the defaults callers fall back on when a flag or form field
// is not supplied.
type Config struct {
	PreviewRows   int      `toml:"preview_rows"`
	DefaultLevels []string `toml:"default_levels"`
	Format        string   `toml:"format"`
	Color         bool     `toml:"color"`
	APIHost       string   `toml:"api_host"`
	APIPort       int      `toml:"api_port"`
}

const (
	defaultConfigPath = "~/.config/logmerge/config.toml"
	defaultFormat     = "table"
	defaultAPIHost    = "localhost"
	defaultAPIPort    = 8080
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		PreviewRows:   model.DefaultPreviewRows,
		DefaultLevels: []string{},
		Format:        defaultFormat,
		APIHost:       defaultAPIHost,
		APIPort:       defaultAPIPort,
	}
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config at path, or the default path when empty. A missing
// file yields the defaults; a malformed one is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.PreviewRows <= 0 {
		c.PreviewRows = model.DefaultPreviewRows
	}

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = defaultFormat
	}

	c.APIHost = strings.TrimSpace(c.APIHost)
	if c.APIHost == "" {
		c.APIHost = defaultAPIHost
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		c.APIPort = defaultAPIPort
	}

	levels := make([]string, 0, len(c.DefaultLevels))
	for _, level := range c.DefaultLevels {
		if level = strings.TrimSpace(level); level != "" {
			levels = append(levels, level)
		}
	}
	c.DefaultLevels = levels
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
