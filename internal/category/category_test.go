package category

import (
	"testing"

	"sortd/internal/config"
)

func newTestCategorizer() *Categorizer {
	return New(config.Categories{
		Rules: map[string][]string{
			"Documents": {"pdf", "txt"},
			"Images":    {"jpg", "png"},
		},
		Fallback: "Other",
	})
}

func TestCategorizeKnownExtensions(t *testing.T) {
	c := newTestCategorizer()
	cases := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "Documents"},
		{"notes.txt", "Documents"},
		{"photo.jpg", "Images"},
		{"photo.JPG", "Images"},
		{"archive.tar.gz", "Other"},
		{"binary.exe", "Other"},
		{"README", "Other"},
		{".bashrc", "Other"},
		{"trailing.", "Other"},
	}
	for _, tc := range cases {
		if got := c.Categorize(tc.filename); got != tc.want {
			t.Errorf("Categorize(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestCategorizeIsDeterministic(t *testing.T) {
	c := newTestCategorizer()
	first := c.Categorize("photo.png")
	for i := 0; i < 10; i++ {
		if got := c.Categorize("photo.png"); got != first {
			t.Fatalf("nondeterministic result: %q then %q", first, got)
		}
	}
}

func TestFallbackDefaultsToOther(t *testing.T) {
	c := New(config.Categories{Rules: map[string][]string{"Docs": {"pdf"}}})
	if got := c.Categorize("mystery.bin"); got != "Other" {
		t.Fatalf("expected Other, got %q", got)
	}
}

func TestLabelsIncludeFallback(t *testing.T) {
	labels := newTestCategorizer().Labels()
	want := []string{"Documents", "Images", "Other"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels = %v, want %v", labels, want)
		}
	}
}
