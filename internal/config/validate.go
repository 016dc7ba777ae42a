package config

import (
	"fmt"

	"subfix/internal/langid"
	"subfix/internal/readspeed"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDefaults(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateBatch()
}

func (c *Config) validateDefaults() error {
	if _, ok := langid.Parse(c.Defaults.Language); !ok {
		return fmt.Errorf("defaults.language: unknown value %q (use auto, zh, en, ko, or ja)", c.Defaults.Language)
	}
	if _, ok := readspeed.ParseContentType(c.Defaults.ContentType); !ok {
		return fmt.Errorf("defaults.content_type: unknown value %q (use adult or children)", c.Defaults.ContentType)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unknown value %q (use auto, console, or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown value %q (use debug, info, warn, or error)", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers: %d exceeds the sane maximum of 64", c.Batch.Workers)
	}
	return nil
}
