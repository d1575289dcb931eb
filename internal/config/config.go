package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WatchDir string `toml:"watch_dir"`
	LogDir   string `toml:"log_dir"`
}

// Categories maps file extensions onto category folder names.
type Categories struct {
	Rules    map[string][]string `toml:"rules"`
	Fallback string              `toml:"fallback"`
}

// Organize contains knobs for the organize run itself.
type Organize struct {
	Ignore               []string `toml:"ignore"`
	LargeFileThresholdMB int64    `toml:"large_file_threshold_mb"`
	IncludeHidden        bool     `toml:"include_hidden"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for sortd.
//
// Sections:
//   - Paths: watched directory and log/ledger directory
//   - Categories: extension-to-folder rules plus the fallback folder
//   - Organize: ignore list, large-file routing, hidden-file handling
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Categories Categories `toml:"categories"`
	Organize   Organize   `toml:"organize"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/sortd/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and category rules normalized. The second return
// value is the resolved config path and the third reports whether a file was
// actually found there (defaults apply otherwise).
func Load(path string) (*Config, string, bool, error) {
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

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
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

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sortd.toml")
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

// EnsureDirectories creates the directories sortd needs at runtime.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// LedgerPath returns the location of the durable undo ledger database.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.Paths.LogDir, "ledger.db")
}

// LockPath returns the location of the lock file guarding organize and undo runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "sortd.lock")
}

// WriteSample writes the embedded sample configuration to the given path,
// refusing to clobber an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Sample returns the embedded sample configuration text.
func Sample() string {
	return sampleConfig
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	expanded := pathValue
	if strings.HasPrefix(expanded, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		switch {
		case expanded == "~":
			expanded = home
		case strings.HasPrefix(expanded, "~/"):
			expanded = filepath.Join(home, expanded[2:])
		default:
			return "", fmt.Errorf("unsupported home expansion in %q", pathValue)
		}
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return abs, nil
}
