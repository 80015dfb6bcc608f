// Package config loads the optional ambient TOML configuration file that
// carries the scan defaults the top-level spec treats as "configuration,
// not design": the default exclusion set, recognized source extensions,
// and a couple of tuning knobs for search and log throttling. A --pad flag
// overrides default_pad; --exclude names are added to extra_excludes, and
// --no-defaults or default_excludes_disabled (either one) drops the
// default exclusion set.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the root of the optional --config file.
type Config struct {
	Scan   Scan   `toml:"scan"`
	Search Search `toml:"search"`
	Log    Log    `toml:"log"`
}

// Scan controls the exclusion/extension defaults the filesystem enumerator
// and stats aggregator use.
type Scan struct {
	DefaultExcludesDisabled bool     `toml:"default_excludes_disabled"`
	ExtraExcludes           []string `toml:"extra_excludes"`
	SourceExtensions        []string `toml:"source_extensions"`
}

// Search controls content-processor defaults.
type Search struct {
	DefaultPad                   int `toml:"default_pad"`
	DefaultConcurrencyMultiplier int `toml:"default_concurrency_multiplier"`
}

// Log controls the warning-log rate limiter (SPEC_FULL.md §4.K). It never
// affects scan results, only what reaches stderr.
type Log struct {
	WarnRate  float64 `toml:"warn_rate"`
	WarnBurst int     `toml:"warn_burst"`
}

// DefaultSourceExtensions is used when neither the config file nor a flag
// supplies one. Exact membership is external configuration (spec.md §9 Open
// Question 3); this list is a reasonable default, not a contract.
var DefaultSourceExtensions = []string{
	".go", ".rs", ".py", ".ts", ".tsx", ".js", ".jsx",
	".java", ".kt", ".kts", ".rb", ".cs",
	".c", ".h", ".cc", ".cpp", ".hpp",
	".md", ".json", ".yaml", ".yml", ".toml",
}

// Default returns a Config with sane built-in defaults, used when no
// --config file is supplied.
func Default() *Config {
	return &Config{
		Scan: Scan{
			SourceExtensions: append([]string(nil), DefaultSourceExtensions...),
		},
		Search: Search{
			DefaultPad:                   0,
			DefaultConcurrencyMultiplier: 2,
		},
		Log: Log{
			WarnRate:  20,
			WarnBurst: 20,
		},
	}
}

// Load reads and decodes a TOML config file at path, filling in any field
// left unset with the built-in default.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}
	if len(cfg.Scan.SourceExtensions) == 0 {
		cfg.Scan.SourceExtensions = append([]string(nil), DefaultSourceExtensions...)
	}
	if cfg.Search.DefaultConcurrencyMultiplier == 0 {
		cfg.Search.DefaultConcurrencyMultiplier = 2
	}
	if cfg.Log.WarnRate == 0 {
		cfg.Log.WarnRate = 20
	}
	if cfg.Log.WarnBurst == 0 {
		cfg.Log.WarnBurst = 20
	}
	return cfg, nil
}
