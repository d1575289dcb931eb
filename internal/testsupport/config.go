package testsupport

import (
	"path/filepath"
	"testing"

	"sortd/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WatchDir = filepath.Join(base, "watch")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Categories.Rules = map[string][]string{
		"Documents": {"pdf", "txt"},
		"Images":    {"jpg", "png"},
	}
	cfgVal.Categories.Fallback = "Other"
	cfgVal.Organize.LargeFileThresholdMB = 0

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithRules replaces the category rules on the test config.
func WithRules(rules map[string][]string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Categories.Rules = rules
	}
}

// WithLargeFileThresholdMB sets the large-file routing threshold.
func WithLargeFileThresholdMB(mb int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.LargeFileThresholdMB = mb
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WatchDir)
}
