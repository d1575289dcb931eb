package organize

import (
	"os"
	"path/filepath"
	"testing"

	"sortd/internal/fsys"
)

func TestResolvePlainDestination(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(fsys.OS{}, root)

	dest, skip, err := r.Resolve(filepath.Join(root, "report.pdf"), "Documents")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if skip {
		t.Fatal("unexpected skip")
	}
	if dest != filepath.Join(root, "Documents", "report.pdf") {
		t.Fatalf("unexpected destination: %s", dest)
	}
}

func TestResolveSkipsFileAlreadyInPlace(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(fsys.OS{}, root)

	inPlace := filepath.Join(root, "Documents", "report.pdf")
	dest, skip, err := r.Resolve(inPlace, "Documents")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !skip {
		t.Fatal("expected skip for file already in its category folder")
	}
	if dest != inPlace {
		t.Fatalf("skip should return the source: %s", dest)
	}
}

func TestResolveDisambiguatesExistingFile(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "Images")
	if err := os.MkdirAll(docs, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"photo.jpg", "photo (1).jpg"} {
		if err := os.WriteFile(filepath.Join(docs, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	r := NewResolver(fsys.OS{}, root)
	dest, _, err := r.Resolve(filepath.Join(root, "photo.jpg"), "Images")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if dest != filepath.Join(docs, "photo (2).jpg") {
		t.Fatalf("unexpected destination: %s", dest)
	}
}

func TestResolveIsIdempotentAgainstUnchangedFilesystem(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(fsys.OS{}, root)
	source := filepath.Join(root, "notes.txt")

	first, _, err := r.Resolve(source, "Documents")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	second, _, err := r.Resolve(source, "Documents")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if first != second {
		t.Fatalf("not idempotent: %s then %s", first, second)
	}
}

func TestResolveClaimedPathsDisambiguateWithinRun(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(fsys.OS{}, root)

	first, _, err := r.Resolve(filepath.Join(root, "photo.jpg"), "Images")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	r.Claim(first)

	// A second same-named source in the batch, nothing written to disk yet.
	second, _, err := r.Resolve(filepath.Join(root, "elsewhere", "photo.jpg"), "Images")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if second == first {
		t.Fatalf("claimed path reused: %s", second)
	}
	if second != filepath.Join(root, "Images", "photo (1).jpg") {
		t.Fatalf("unexpected second destination: %s", second)
	}
}

func TestResolveExtensionKeptAfterCounter(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(fsys.OS{}, root)

	first, _, _ := r.Resolve(filepath.Join(root, "a", "archive.tar.gz"), "Archives")
	r.Claim(first)
	second, _, err := r.Resolve(filepath.Join(root, "b", "archive.tar.gz"), "Archives")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if filepath.Base(second) != "archive.tar (1).gz" {
		t.Fatalf("counter should sit before the final extension: %s", second)
	}
}
