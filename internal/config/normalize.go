package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeDefaults()
	c.normalizeLogging()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	return c.normalizeBatch()
}

func (c *Config) normalizeDefaults() {
	c.Defaults.Language = strings.ToLower(strings.TrimSpace(c.Defaults.Language))
	if c.Defaults.Language == "" {
		c.Defaults.Language = defaultLanguage
	}
	c.Defaults.ContentType = strings.ToLower(strings.TrimSpace(c.Defaults.ContentType))
	if c.Defaults.ContentType == "" {
		c.Defaults.ContentType = defaultContentType
	}
	c.Defaults.ForceEncoding = strings.TrimSpace(c.Defaults.ForceEncoding)
	if strings.TrimSpace(c.Defaults.OutputSuffix) == "" {
		c.Defaults.OutputSuffix = defaultOutputSuffix
	}
	if strings.TrimSpace(c.Defaults.ViolationSuffix) == "" {
		c.Defaults.ViolationSuffix = defaultViolationSuffix
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	expanded, err := expandPath(c.History.Path)
	if err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	c.History.Path = expanded
	return nil
}

func (c *Config) normalizeBatch() error {
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = defaultBatchWorkers
	}
	if strings.TrimSpace(c.Batch.LockFile) == "" {
		c.Batch.LockFile = defaultBatchLockFile
	}
	expanded, err := expandPath(c.Batch.LockFile)
	if err != nil {
		return fmt.Errorf("batch.lock_file: %w", err)
	}
	c.Batch.LockFile = expanded
	return nil
}
