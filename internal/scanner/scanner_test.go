package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"codescan/internal/exclude"
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

func TestTree_PrunesExcludedAndEmptyDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.rs"), "fn main() {}\n")
	writeFile(t, filepath.Join(root, "vendor", "b.rs"), "fn lib() {}\n")
	writeFile(t, filepath.Join(root, "empty", "notes.txt"), "not a source file\n")

	filter := exclude.New(nil, false)
	exts := map[string]struct{}{".rs": {}}

	node, scanned := Tree(root, filter, exts, nil)

	if len(node.Children) != 1 || node.Children[0].Name != "src" {
		t.Fatalf("expected only 'src' child, got %+v", node.Children)
	}
	if len(node.Children[0].Files) != 1 || node.Children[0].Files[0] != "a.rs" {
		t.Fatalf("expected src/a.rs, got %v", node.Children[0].Files)
	}
	if scanned != 1 {
		t.Fatalf("expected 1 file scanned, got %d", scanned)
	}
}

func TestTree_SortsCaseInsensitively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Zebra.go"), "package z\n")
	writeFile(t, filepath.Join(root, "apple.go"), "package a\n")

	filter := exclude.New(nil, false)
	exts := map[string]struct{}{".go": {}}
	node, _ := Tree(root, filter, exts, nil)

	if len(node.Files) != 2 || node.Files[0] != "apple.go" || node.Files[1] != "Zebra.go" {
		t.Fatalf("expected case-insensitive sort [apple.go Zebra.go], got %v", node.Files)
	}
}

func TestFlat_FiltersByGlobAndExclusion(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "a.ts"), "export const x = 1;\n")
	writeFile(t, filepath.Join(root, "lib", "a.test.ts"), "test\n")
	writeFile(t, filepath.Join(root, "node_modules", "dep.ts"), "dep\n")

	filter := exclude.New(nil, false)
	files := Flat(root, []string{"*.ts"}, filter, nil)

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	for _, f := range files {
		if filepath.Base(filepath.Dir(f)) == "node_modules" {
			t.Fatalf("node_modules file leaked through: %s", f)
		}
	}
}

func TestFlat_NoGlobsMatchesEverything(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), "\x00\x01")
	writeFile(t, filepath.Join(root, "b.txt"), "hello")

	filter := exclude.New(nil, false)
	files := Flat(root, nil, filter, nil)
	if len(files) != 2 {
		t.Fatalf("expected 2 files with no glob filter, got %v", files)
	}
}
