package langs

import (
	"os"
	"path/filepath"
	"testing"
)

// TestGoHandler_ExtractImports_SingleAndBlock exercises the real walkUp
// path against a go.mod on disk rather than seeding the resolver cache
// directly, since that cache is exactly what masked the scan-root bug this
// regresses against.
func TestGoHandler_ExtractImports_SingleAndBlock(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/p\n\ngo 1.24\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := NewGoHandler()
	h.SetRoot(root)

	content := []byte(`package a

import "example.com/p/internal/b"

import (
	"fmt"
	"example.com/p/internal/c"
)

func Use() {}
`)
	refs := h.ExtractImports(content, "internal/a/x.go")

	want := map[string]bool{"internal/b/": true, "internal/c/": true}
	got := map[string]bool{}
	for _, r := range refs {
		got[r] = true
	}
	for w := range want {
		if !got[w] {
			t.Errorf("missing expected ref %q in %v", w, refs)
		}
	}
	if got["fmt/"] {
		t.Errorf("stdlib import fmt should not be resolved, got %v", refs)
	}
}

func TestGoHandler_ExtractSymbols(t *testing.T) {
	h := NewGoHandler()
	content := []byte(`package a

type Widget struct {
	Name string
}

func (w *Widget) Label() string {
	return w.Name
}

func NewWidget() *Widget {
	return &Widget{}
}

const MaxSize = 10

var count int
`)
	symbols := h.ExtractSymbols(content)

	var sawType, sawMethod, sawFn, sawConst, sawVar bool
	for _, s := range symbols {
		switch {
		case s.Kind == "struct" && s.Name == "Widget":
			sawType = true
			if s.Visibility != "pub" {
				t.Errorf("expected exported visibility, got %q", s.Visibility)
			}
		case s.Kind == "method" && s.Name == "Label":
			sawMethod = true
			if s.Parent != "Widget" {
				t.Errorf("expected Label's parent to be Widget, got %q", s.Parent)
			}
		case s.Kind == "fn" && s.Name == "NewWidget":
			sawFn = true
		case s.Kind == "const" && s.Name == "MaxSize":
			sawConst = true
		case s.Kind == "var" && s.Name == "count":
			sawVar = true
			if s.Visibility != "" {
				t.Errorf("expected unexported count to have empty visibility, got %q", s.Visibility)
			}
		}
	}
	if !sawType || !sawMethod || !sawFn || !sawConst || !sawVar {
		t.Fatalf("missing expected symbols in %+v", symbols)
	}
}

func TestParseModuleName(t *testing.T) {
	data := []byte("module example.com/p\n\ngo 1.24\n")
	if got := parseModuleName(data); got != "example.com/p" {
		t.Fatalf("got %q", got)
	}
	if got := parseModuleName([]byte("not a go.mod")); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
