package category

import (
	"path/filepath"
	"sort"
	"strings"

	"sortd/internal/config"
)

// Categorizer assigns category folder names to file names by extension.
type Categorizer struct {
	byExt    map[string]string
	fallback string
}

// New builds a Categorizer from normalized config rules. Later duplicate
// extensions never occur because config validation rejects them.
func New(rules config.Categories) *Categorizer {
	byExt := make(map[string]string)
	for label, exts := range rules.Rules {
		for _, ext := range exts {
			byExt[ext] = label
		}
	}
	fallback := rules.Fallback
	if fallback == "" {
		fallback = "Other"
	}
	return &Categorizer{byExt: byExt, fallback: fallback}
}

// Categorize maps a file name (not a path) to its category label. It is total:
// unknown and missing extensions fall back to the configured default.
func (c *Categorizer) Categorize(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return c.fallback
	}
	if label, ok := c.byExt[ext]; ok {
		return label
	}
	return c.fallback
}

// Fallback returns the label used for unmatched extensions.
func (c *Categorizer) Fallback() string {
	return c.fallback
}

// Labels returns every category label the categorizer can produce, sorted,
// fallback included. The scanner uses this to leave category folders alone.
func (c *Categorizer) Labels() []string {
	seen := map[string]struct{}{c.fallback: {}}
	for _, label := range c.byExt {
		seen[label] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
