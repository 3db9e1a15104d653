package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Environment overrides, applied after the file and before normalization.
const (
	EnvDataFile = "CATALOGUE_FILE"
	EnvLogLevel = "CATALOGUE_LOG_LEVEL"
	EnvStrict   = "CATALOGUE_STRICT"
)

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDataFile); ok && strings.TrimSpace(v) != "" {
		c.Storage.DataFile = v
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvStrict); ok && strings.TrimSpace(v) != "" {
		strict, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrict, err)
		}
		c.Codec.Strict = strict
	}
	return nil
}

func (c *Config) normalize() error {
	c.Storage.DataFile = strings.TrimSpace(c.Storage.DataFile)
	if c.Storage.DataFile == "" {
		c.Storage.DataFile = defaultDataFile
	}
	path, err := expandPath(c.Storage.DataFile)
	if err != nil {
		return fmt.Errorf("storage.data_file: %w", err)
	}
	c.Storage.DataFile = path

	if c.Storage.LockTimeoutSeconds <= 0 {
		c.Storage.LockTimeoutSeconds = defaultLockTimeoutSeconds
	}
	if c.Codec.Indent == "" {
		c.Codec.Indent = defaultIndent
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Logging.File != "" {
		logFile, err := expandPath(c.Logging.File)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = logFile
	}

	c.UI.Color = strings.ToLower(strings.TrimSpace(c.UI.Color))
	if c.UI.Color == "" {
		c.UI.Color = defaultColor
	}
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	if c.UI.Theme == "" {
		c.UI.Theme = defaultTheme
	}
	return nil
}

// LockTimeout is Storage.LockTimeoutSeconds as a duration.
func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.Storage.LockTimeoutSeconds) * time.Second
}
