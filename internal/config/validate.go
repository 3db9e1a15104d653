package config

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/catalogue/internal/logging"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCodec(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateUI()
}

func (c *Config) validateCodec() error {
	if strings.Trim(c.Codec.Indent, " \t") != "" {
		return fmt.Errorf("codec.indent must contain only spaces or tabs, got %q", c.Codec.Indent)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
		return nil
	}
	return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
}

func (c *Config) validateUI() error {
	switch c.UI.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("ui.color: unsupported value %q (want auto, always or never)", c.UI.Color)
	}
	switch c.UI.Theme {
	case "classic", "neon", "mono":
		return nil
	}
	return fmt.Errorf("ui.theme: unsupported value %q (want classic, neon or mono)", c.UI.Theme)
}
