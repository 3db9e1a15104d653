package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Storage locates the catalogue document.
type Storage struct {
	DataFile           string `toml:"data_file"`
	LockTimeoutSeconds int    `toml:"lock_timeout_seconds"`
}

// Codec tunes how the document is read and written.
type Codec struct {
	// Strict fails the load when a top-level field is absent and rejects
	// unknown fields inside entries.
	Strict bool `toml:"strict"`
	// SkipInvalid drops undecodable entries with a warning instead of failing.
	SkipInvalid bool   `toml:"skip_invalid"`
	Indent      string `toml:"indent"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// UI controls terminal output.
type UI struct {
	Color string `toml:"color"` // auto | always | never
	Theme string `toml:"theme"` // classic | neon | mono
}

// Config encapsulates all configuration values for the catalogue tool.
type Config struct {
	Storage Storage `toml:"storage"`
	Codec   Codec   `toml:"codec"`
	Logging Logging `toml:"logging"`
	UI      UI      `toml:"ui"`
}

// Override adjusts a decoded config before normalization. Overrides run
// after environment variables, so command-line values win.
type Override func(*Config)

// WithDataFile replaces storage.data_file.
func WithDataFile(path string) Override {
	return func(c *Config) { c.Storage.DataFile = path }
}

// Load locates, parses, applies env overrides and validates a configuration
// file. It returns the config, the resolved path, and whether that file exists.
func Load(path string, overrides ...Override) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, "", false, err
	}
	for _, override := range overrides {
		override(&cfg)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Encode renders the configuration as TOML, e.g. for `config show`.
func (c *Config) Encode() (string, error) {
	b, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(b), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
