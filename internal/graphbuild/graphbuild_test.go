package graphbuild

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"codescan/internal/langs"
)

func fakeReadFile(files map[string][]byte) func(string) ([]byte, error) {
	return func(rel string) ([]byte, error) {
		if data, ok := files[rel]; ok {
			return data, nil
		}
		return nil, fmt.Errorf("not found: %s", rel)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestBuild_GoModuleImports exercises spec.md §8 end-to-end scenario 6: a
// go.mod-rooted project whose file imports another package that resolves to
// every file under that package directory. GoHandler.walkUp reads go.mod
// straight off disk rather than through the readFile callback, so this
// needs a real directory tree — it is the regression test for Build
// resolving go.mod relative to the scan root instead of the process cwd.
func TestBuild_GoModuleImports(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/p\n\ngo 1.24\n")
	writeFile(t, filepath.Join(root, "internal", "a", "x.go"), `package a

import "example.com/p/internal/b"

func Use() {}
`)
	writeFile(t, filepath.Join(root, "internal", "b", "y.go"), "package b\n\nfunc Y() {}\n")
	writeFile(t, filepath.Join(root, "internal", "b", "z.go"), "package b\n\nfunc Z() {}\n")

	project := []string{"internal/a/x.go", "internal/b/y.go", "internal/b/z.go"}
	readFile := func(rel string) ([]byte, error) {
		return os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	}

	reg := langs.NewRegistry()
	entries, cycles := Build(reg, root, project, readFile)

	if len(cycles) != 0 {
		t.Fatalf("expected no cycles, got %v", cycles)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	var xImports []string
	found := false
	for _, e := range entries {
		if e.File == "internal/a/x.go" {
			xImports = e.Imports
			found = true
		}
	}
	if !found {
		t.Fatal("missing entry for internal/a/x.go")
	}
	want := map[string]bool{"internal/b/y.go": true, "internal/b/z.go": true}
	for _, imp := range xImports {
		delete(want, imp)
	}
	if len(want) != 0 {
		t.Fatalf("missing imports %v", want)
	}
}

// TestBuild_DetectsCycle exercises mutual Rust module imports forming a
// 2-node cycle, reported once via Tarjan's algorithm.
func TestBuild_DetectsCycle(t *testing.T) {
	files := map[string][]byte{
		"src/a.rs": []byte("use crate::b::Thing;\n"),
		"src/b.rs": []byte("use crate::a::Other;\n"),
	}
	project := []string{"src/a.rs", "src/b.rs"}

	reg := langs.NewRegistry()
	_, cycles := Build(reg, "/proj", project, fakeReadFile(files))

	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %v", cycles)
	}
	if len(cycles[0]) != 2 {
		t.Fatalf("expected 2-member cycle, got %v", cycles[0])
	}
}

// TestBuild_DetectsSelfImportCycle exercises spec.md §3's "or a single file
// that imports itself" clause on graph.cycles.
func TestBuild_DetectsSelfImportCycle(t *testing.T) {
	files := map[string][]byte{
		"src/a.rs": []byte("mod a;\n"),
	}
	project := []string{"src/a.rs"}

	reg := langs.NewRegistry()
	_, cycles := Build(reg, "/proj", project, fakeReadFile(files))

	if len(cycles) != 1 || len(cycles[0]) != 1 || cycles[0][0] != "src/a.rs" {
		t.Fatalf("expected a single self-loop cycle for src/a.rs, got %v", cycles)
	}
}
