package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCategories(); err != nil {
		return err
	}
	if err := c.validateOrganize(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.WatchDir == "" {
		return errors.New("paths.watch_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Paths.WatchDir == c.Paths.LogDir {
		return errors.New("paths.watch_dir and paths.log_dir must differ")
	}
	return nil
}

func (c *Config) validateCategories() error {
	if c.Categories.Fallback == "" {
		return errors.New("categories.fallback must be set")
	}
	seen := make(map[string]string)
	for label, exts := range c.Categories.Rules {
		if label == "" {
			return errors.New("categories.rules: labels must not be empty")
		}
		for _, ext := range exts {
			if prior, ok := seen[ext]; ok && prior != label {
				return fmt.Errorf("categories.rules: extension %q mapped to both %q and %q", ext, prior, label)
			}
			seen[ext] = label
		}
	}
	return nil
}

func (c *Config) validateOrganize() error {
	if c.Organize.LargeFileThresholdMB < 0 {
		return errors.New("organize.large_file_threshold_mb must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
