package statsagg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeSized writes exactly lines newline-terminated lines whose combined
// size is exactly totalBytes (totalBytes must be evenly divisible by lines).
func writeSized(t *testing.T, path string, lines, totalBytes int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	lineWidth := totalBytes / lines
	line := strings.Repeat("x", lineWidth-1) + "\n"
	content := strings.Repeat(line, lines)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestAggregate_GroupsByExtensionAndRanksLargest exercises spec.md §8
// end-to-end scenario 7 exactly.
func TestAggregate_GroupsByExtensionAndRanksLargest(t *testing.T) {
	root := t.TempDir()
	writeSized(t, filepath.Join(root, "a.rs"), 100, 3000)
	writeSized(t, filepath.Join(root, "b.rs"), 50, 1500)
	writeSized(t, filepath.Join(root, "c.md"), 10, 400)

	paths := []string{
		filepath.Join(root, "a.rs"),
		filepath.Join(root, "b.rs"),
		filepath.Join(root, "c.md"),
	}

	result := Aggregate(root, paths, 4)

	if result.Totals.Files != 3 {
		t.Fatalf("expected 3 total files, got %d", result.Totals.Files)
	}
	if result.Totals.Bytes != 4900 {
		t.Fatalf("expected 4900 total bytes, got %d", result.Totals.Bytes)
	}

	if len(result.Languages) != 2 {
		t.Fatalf("expected 2 languages, got %+v", result.Languages)
	}
	rs := result.Languages[0]
	if rs.Extension != "rs" || rs.Files != 2 || rs.Bytes != 4500 {
		t.Fatalf("expected rs to rank first with 2 files / 4500 bytes, got %+v", rs)
	}
	md := result.Languages[1]
	if md.Extension != "md" || md.Files != 1 || md.Bytes != 400 {
		t.Fatalf("expected md second with 1 file / 400 bytes, got %+v", md)
	}

	if len(result.Largest) == 0 || result.Largest[0].Path != "a.rs" {
		t.Fatalf("expected a.rs to be the largest file, got %+v", result.Largest)
	}
}

func TestAggregate_LargestCapsAtTen(t *testing.T) {
	root := t.TempDir()
	paths := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		p := filepath.Join(root, string(rune('a'+i))+".txt")
		if err := os.WriteFile(p, []byte("line\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	result := Aggregate(root, paths, 4)
	if len(result.Largest) != 10 {
		t.Fatalf("expected largest list capped at 10, got %d", len(result.Largest))
	}
}
