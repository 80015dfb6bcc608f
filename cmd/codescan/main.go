// # cmd/codescan/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"

	"codescan/internal/config"
	"codescan/internal/envelope"
	"codescan/internal/globmatch"
	"codescan/internal/logging"
	"codescan/internal/orchestrate"
	"codescan/internal/outwriter"
)

const VERSION = "1.0.0"

type globFlags []string

func (g *globFlags) String() string { return strings.Join(*g, ",") }
func (g *globFlags) Set(v string) error {
	*g = append(*g, v)
	return nil
}

type linesFlags []string

func (l *linesFlags) String() string { return strings.Join(*l, " ") }
func (l *linesFlags) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type excludeFlags []string

func (e *excludeFlags) String() string { return strings.Join(*e, ",") }
func (e *excludeFlags) Set(v string) error {
	*e = append(*e, v)
	return nil
}

var (
	dir          = flag.String("dir", ".", "Root directory to scan")
	dirShort     = flag.String("d", "", "Shorthand for --dir")
	find         = flag.String("find", "", "Content search pattern")
	findShort    = flag.String("f", "", "Shorthand for --find")
	regexFlag    = flag.Bool("regex", false, "Treat --find as a regular expression")
	regexShort   = flag.Bool("E", false, "Shorthand for --regex")
	pad          = flag.Int("pad", 0, "Context lines around each match")
	lineNumbers  = flag.String("line-numbers", "on", "\"off\" suppresses line-number prefixes")
	limit        = flag.Int("limit", 0, "Cap the number of file entries in output")
	limitShort   = flag.Int("L", 0, "Shorthand for --limit")
	noDefaults   = flag.Bool("no-defaults", false, "Disable the default exclusion set")
	timeoutSecs  = flag.Float64("timeout", 0, "Abort and emit partial results after this many seconds")
	format       = flag.String("format", "", "Output format: yaml or json")
	formatShort  = flag.String("F", "", "Shorthand for --format")
	jsonFlag     = flag.Bool("json", false, "Shorthand for --format json")
	output       = flag.String("output", "", "Write the envelope to this file instead of stdout")
	outputShort  = flag.String("o", "", "Shorthand for --output")
	graphFlag    = flag.Bool("graph", false, "Emit the project import/dependency graph")
	symbolsFlag  = flag.Bool("symbols", false, "Extract language-level symbol declarations")
	symbolsShort = flag.Bool("s", false, "Shorthand for --symbols")
	countFlag    = flag.Bool("count", false, "Count matches per file instead of rendering chunks (requires --find)")
	countShort   = flag.Bool("c", false, "Shorthand for --count")
	statsFlag    = flag.Bool("stats", false, "Compute per-extension codebase statistics")
	statsShort   = flag.Bool("S", false, "Shorthand for --stats")
	configPath   = flag.String("config", "", "Path to an ambient TOML configuration file")
	logLevel     = flag.String("log-level", "info", "Structured log verbosity: debug, info, warn, error")
	version      = flag.Bool("version", false, "Print version and exit")
	versionShort = flag.Bool("V", false, "Shorthand for --version")

	globs globFlags
	lns   linesFlags
	excl  excludeFlags
)

func init() {
	flag.Var(&globs, "glob", "Glob pattern for matching files (repeatable)")
	flag.Var(&globs, "g", "Shorthand for --glob")
	flag.Var(&lns, "lines", `Line range spec "path:start:end" (repeatable, space-separated)`)
	flag.Var(&excl, "exclude", "Additional directory/file name to exclude (repeatable)")
}

func main() {
	flag.Parse()

	if *version || *versionShort {
		fmt.Printf("codescan v%s\n", VERSION)
		os.Exit(0)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			writeError(fmt.Sprintf("failed to load config: %v", err))
			os.Exit(1)
		}
		cfg = loaded
	}

	root := firstNonEmpty(*dirShort, *dir)
	absRoot, err := filepath.Abs(root)
	if err != nil {
		writeError(fmt.Sprintf("failed to resolve directory: %v", err))
		os.Exit(1)
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		writeError(fmt.Sprintf("directory not found: %s", root))
		os.Exit(1)
	}

	findPattern := firstNonEmpty(*findShort, *find)
	useRegex := *regexFlag || *regexShort
	count := *countFlag || *countShort
	if count && findPattern == "" {
		writeError("--count requires --find")
		os.Exit(1)
	}

	for _, pattern := range globs {
		if err := globmatch.Validate(pattern); err != nil {
			writeError(fmt.Sprintf("invalid glob pattern %q: %v", pattern, err))
			os.Exit(1)
		}
	}

	lineLimit := firstNonZero(*limitShort, *limit)

	effectivePad := cfg.Search.DefaultPad
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "pad" {
			effectivePad = *pad
		}
	})

	formatVal := firstNonEmpty(*formatShort, *format)
	if formatVal != "" && formatVal != "yaml" && formatVal != "json" {
		writeError(fmt.Sprintf("invalid --format %q: must be yaml or json", formatVal))
		os.Exit(1)
	}
	outFormat := outwriter.ParseFormat(formatVal)
	if *jsonFlag {
		outFormat = outwriter.JSON
	}

	scanID := uuid.NewString()
	logger := logging.New(logging.ParseLevel(*logLevel), scanID)
	warnLimiter := logging.NewWarnLimiter(cfg.Log.WarnRate, cfg.Log.WarnBurst)

	cancelled := &atomic.Bool{}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	interrupted := &atomic.Bool{}
	go func() {
		<-sigCh
		interrupted.Store(true)
		cancelled.Store(true)
	}()

	req := orchestrate.Request{
		Root:             absRoot,
		Lines:            strings.Join(lns, " "),
		Graph:            *graphFlag,
		Symbols:          *symbolsFlag || *symbolsShort,
		Stats:            *statsFlag || *statsShort,
		Count:            count,
		Find:             findPattern,
		UseRegex:         useRegex,
		Globs:            globs,
		Pad:              effectivePad,
		LineNumbers:      !strings.EqualFold(*lineNumbers, "off"),
		Limit:            lineLimit,
		ExtraExcludes:    append(append([]string{}, cfg.Scan.ExtraExcludes...), excl...),
		NoDefaults:       *noDefaults || cfg.Scan.DefaultExcludesDisabled,
		Timeout:          time.Duration(*timeoutSecs * float64(time.Second)),
		SourceExtensions: cfg.Scan.SourceExtensions,
		Concurrency:      runtimeConcurrency(cfg.Search.DefaultConcurrencyMultiplier),
		ScanID:           scanID,
		Slog:             logger,
		WarnLimiter:      warnLimiter,
		Cancelled:        cancelled,
	}

	result := orchestrate.Run(req)

	w := os.Stdout
	outPath := firstNonEmpty(*outputShort, *output)
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			writeError(fmt.Sprintf("failed to open output file: %v", err))
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := outwriter.Write(w, result.Envelope, outFormat); err != nil {
		logger.Error("failed to write envelope", "error", err)
		os.Exit(1)
	}

	switch {
	case result.Envelope.Error != "":
		os.Exit(1)
	case interrupted.Load():
		os.Exit(130)
	case result.TimedOut:
		os.Exit(2)
	default:
		os.Exit(0)
	}
}

func writeError(msg string) {
	env := &envelope.OutputEnvelope{Error: msg}
	_ = outwriter.Write(os.Stdout, env, outwriter.YAML)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

func runtimeConcurrency(multiplier int) int {
	if multiplier <= 0 {
		multiplier = 2
	}
	n := multiplier * runtime.GOMAXPROCS(0)
	if n <= 0 {
		return 2
	}
	return n
}
