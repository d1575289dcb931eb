package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCategories()
	c.normalizeOrganize()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WatchDir) == "" {
		c.Paths.WatchDir = defaultWatchDir
	}
	if c.Paths.WatchDir, err = expandPath(c.Paths.WatchDir); err != nil {
		return fmt.Errorf("paths.watch_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCategories() {
	titler := cases.Title(language.Und, cases.NoLower)
	rules := make(map[string][]string, len(c.Categories.Rules))
	for label, exts := range c.Categories.Rules {
		label = titler.String(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		cleaned := make([]string, 0, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
			if ext == "" {
				continue
			}
			cleaned = append(cleaned, ext)
		}
		rules[label] = append(rules[label], cleaned...)
	}
	c.Categories.Rules = rules

	fallback := titler.String(strings.TrimSpace(c.Categories.Fallback))
	if fallback == "" {
		fallback = defaultFallbackCategory
	}
	c.Categories.Fallback = fallback
}

func (c *Config) normalizeOrganize() {
	ignore := make([]string, 0, len(c.Organize.Ignore))
	for _, name := range c.Organize.Ignore {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ignore = append(ignore, name)
	}
	c.Organize.Ignore = ignore
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
