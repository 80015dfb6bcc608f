package lines

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseSpecs_SwapsStartEnd(t *testing.T) {
	specs, err := ParseSpecs("a.rs:10:8")
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 1 || specs[0].Start != 8 || specs[0].End != 10 {
		t.Fatalf("expected swapped 8:10, got %+v", specs)
	}
}

func TestParseSpecs_RejectsMalformed(t *testing.T) {
	for _, raw := range []string{"a.rs:1", "a.rs:x:2", "a.rs:0:2", "a.rs:-1:2"} {
		if _, err := ParseSpecs(raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

// TestExtract_MergesAndClamps exercises spec.md §8 end-to-end scenario 3.
func TestExtract_MergesAndClamps(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.rs"), "1\n2\n3\n4\n5\n")
	writeFile(t, filepath.Join(root, "b.rs"), "1\n2\n3\n4\n5\n")

	specs, err := ParseSpecs("a.rs:1:2 a.rs:2:3 b.rs:10:8")
	if err != nil {
		t.Fatal(err)
	}

	entries := Extract(root, specs, false)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	a, b := entries[0], entries[1]
	if a.Path != "a.rs" || len(a.Chunks) != 1 || a.Chunks[0].StartLine != 1 || a.Chunks[0].EndLine != 3 {
		t.Fatalf("expected a.rs merged into a single chunk [1,3], got %+v", a)
	}
	if string(a.Chunks[0].Content) != "1\n2\n3\n" {
		t.Fatalf("unexpected a.rs chunk content: %q", a.Chunks[0].Content)
	}

	if b.Path != "b.rs" || len(b.Chunks) != 1 || b.Chunks[0].StartLine != 5 || b.Chunks[0].EndLine != 5 {
		t.Fatalf("expected b.rs single chunk [5,5], got %+v", b)
	}
	if string(b.Chunks[0].Content) != "5\n" {
		t.Fatalf("expected clamped [5,5] chunk, got %q", b.Chunks[0].Content)
	}
}

func TestExtract_FileNotFound(t *testing.T) {
	root := t.TempDir()
	specs, _ := ParseSpecs("missing.rs:1:2")
	entries := Extract(root, specs, false)
	if len(entries) != 1 || entries[0].Error == "" {
		t.Fatalf("expected file-not-found error entry, got %+v", entries)
	}
}

func TestExtract_EmptyFileSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "empty.rs"), "")

	specs, _ := ParseSpecs("empty.rs:1:2")
	entries := Extract(root, specs, false)
	if len(entries) != 0 {
		t.Fatalf("expected empty file to produce no entry, got %+v", entries)
	}
}

func TestExtract_BinaryFileSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), "needle\x00binary")

	specs, _ := ParseSpecs("a.bin:1:2")
	entries := Extract(root, specs, false)
	if len(entries) != 0 {
		t.Fatalf("expected binary file to produce no entry, got %+v", entries)
	}
}
