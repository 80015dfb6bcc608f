package orchestrate

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

// TestRun_ModePriorityLinesBeatsGraph exercises spec.md §4.H's mode-priority
// order: --lines wins even when --graph is also requested.
func TestRun_ModePriorityLinesBeatsGraph(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "package a\n\nfunc F() {}\n")

	result := Run(Request{
		Root:             root,
		Lines:            "a.go:1:2",
		Graph:            true,
		SourceExtensions: []string{".go"},
		Concurrency:      2,
	})

	if result.Envelope.Error != "" {
		t.Fatalf("unexpected error: %s", result.Envelope.Error)
	}
	if result.Envelope.Files == nil {
		t.Fatal("expected --lines output in Files")
	}
	if result.Envelope.Graph != nil {
		t.Fatal("expected graph mode to be skipped when --lines is set")
	}
}

func TestRun_CountWithoutFindIsConfigError(t *testing.T) {
	root := t.TempDir()
	result := Run(Request{Root: root, Count: true, Concurrency: 2})

	if result.Envelope.Error == "" {
		t.Fatal("expected configuration error when --count is used without --find")
	}
}

func TestRun_NoTimeoutNeverTimesOut(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "package a\n")

	result := Run(Request{Root: root, SourceExtensions: []string{".go"}, Concurrency: 2})
	if result.TimedOut {
		t.Fatal("expected no timeout when Timeout is zero")
	}
}

func TestRun_TimeoutMarksMeta(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "package a\n")

	result := Run(Request{
		Root:             root,
		SourceExtensions: []string{".go"},
		Concurrency:      2,
		Timeout:          time.Nanosecond,
	})
	if !result.Envelope.Meta.Timeout {
		t.Fatal("expected meta.timeout to reflect the watchdog firing")
	}
}

func TestRun_GlobsOnlyMode(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "package a\n")
	writeFile(t, filepath.Join(root, "b.txt"), "plain\n")

	result := Run(Request{
		Root:        root,
		Globs:       []string{"*.go"},
		Concurrency: 2,
	})

	if len(result.Envelope.Files) != 1 || result.Envelope.Files[0].Path != "a.go" {
		t.Fatalf("expected only a.go matched by glob, got %+v", result.Envelope.Files)
	}
}
