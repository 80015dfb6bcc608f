package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	content := `
[scan]
default_excludes_disabled = true
extra_excludes = ["testdata"]
source_extensions = [".go", ".rs"]

[search]
default_pad = 2
default_concurrency_multiplier = 4

[log]
warn_rate = 5
warn_burst = 10
`
	tmpfile, err := os.CreateTemp("", "config*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Scan.DefaultExcludesDisabled {
		t.Error("expected default_excludes_disabled to be true")
	}
	if len(cfg.Scan.ExtraExcludes) != 1 || cfg.Scan.ExtraExcludes[0] != "testdata" {
		t.Errorf("unexpected ExtraExcludes: %v", cfg.Scan.ExtraExcludes)
	}
	if len(cfg.Scan.SourceExtensions) != 2 {
		t.Errorf("expected 2 source extensions, got %v", cfg.Scan.SourceExtensions)
	}
	if cfg.Search.DefaultPad != 2 {
		t.Errorf("expected default pad 2, got %d", cfg.Search.DefaultPad)
	}
	if cfg.Log.WarnRate != 5 {
		t.Errorf("expected warn rate 5, got %v", cfg.Log.WarnRate)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.WriteString(`[scan]` + "\n")
	tmpfile.Close()

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Scan.SourceExtensions) == 0 {
		t.Error("expected default source extensions to be filled in")
	}
	if cfg.Search.DefaultConcurrencyMultiplier != 2 {
		t.Errorf("expected default concurrency multiplier 2, got %d", cfg.Search.DefaultConcurrencyMultiplier)
	}
	if cfg.Log.WarnRate != 20 || cfg.Log.WarnBurst != 20 {
		t.Errorf("expected default warn rate/burst 20/20, got %v/%d", cfg.Log.WarnRate, cfg.Log.WarnBurst)
	}
}

func TestLoadError(t *testing.T) {
	if _, err := Load("nonexistent.toml"); err == nil {
		t.Error("expected error for nonexistent file")
	}

	tmpfile, _ := os.CreateTemp("", "badconfig*.toml")
	defer os.Remove(tmpfile.Name())
	tmpfile.WriteString("bad = toml = format")
	tmpfile.Close()

	if _, err := Load(tmpfile.Name()); err == nil {
		t.Error("expected error for malformed TOML")
	}
}
