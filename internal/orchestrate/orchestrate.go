// Package orchestrate implements spec.md §4.H "Orchestrators": mode
// dispatch by priority (lines > graph > symbols > stats > (find+count) >
// find > glob-only > tree), candidate-file acquisition, component
// invocation, and envelope/MetaInfo assembly, including the cancellation
// and timeout discipline of spec.md §5.
package orchestrate

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"codescan/internal/content"
	"codescan/internal/envelope"
	"codescan/internal/exclude"
	"codescan/internal/graphbuild"
	"codescan/internal/langs"
	"codescan/internal/lines"
	"codescan/internal/logging"
	"codescan/internal/pathutil"
	"codescan/internal/scanner"
	"codescan/internal/statsagg"
	"codescan/internal/symbolsmode"
)

// Request carries every flag the CLI layer parsed, already validated for
// type (an invalid regex or line spec is still discovered here, as a
// configuration error per spec.md §7 case 1).
type Request struct {
	Root             string
	Lines            string // raw --lines value; empty means unset
	Graph            bool
	Symbols          bool
	Stats            bool
	Count            bool
	Find             string // raw --find pattern; empty means unset
	UseRegex         bool
	Globs            []string
	Pad              int
	LineNumbers      bool
	Limit            int
	ExtraExcludes    []string
	NoDefaults       bool
	Timeout          time.Duration
	SourceExtensions []string
	Concurrency      int
	ScanID           string
	Slog             *slog.Logger
	WarnLimiter      *logging.WarnLimiter
	Cancelled        *atomic.Bool // shared with the caller's signal handler; nil means never externally cancelled
}

// Result is the outcome of one Run: the assembled envelope, plus whether
// the timeout watchdog (as opposed to an external signal) fired, since the
// two share the same cancellation flag but carry different exit codes.
type Result struct {
	Envelope *envelope.OutputEnvelope
	TimedOut bool
}

// Run dispatches req to the highest-priority applicable mode and returns
// the assembled envelope. A configuration error (bad regex, bad line spec,
// --count without --find) comes back as an envelope with only Error set;
// the caller maps that to exit code 1.
func Run(req Request) *Result {
	start := time.Now()

	cancelled := req.Cancelled
	if cancelled == nil {
		cancelled = &atomic.Bool{}
	}
	timedOut := &atomic.Bool{}
	if req.Timeout > 0 {
		timer := time.AfterFunc(req.Timeout, func() {
			timedOut.Store(true)
			cancelled.Store(true)
		})
		defer timer.Stop()
	}

	filter := exclude.New(req.ExtraExcludes, req.NoDefaults)
	sourceExts := extSet(req.SourceExtensions)

	env := &envelope.OutputEnvelope{}
	var filesScanned, filesMatched, totalMatches int

	switch {
	case strings.TrimSpace(req.Lines) != "":
		specs, err := lines.ParseSpecs(req.Lines)
		if err != nil {
			return configError(err, start)
		}
		entries := lines.Extract(req.Root, specs, req.LineNumbers)
		filesScanned = len(entries)
		for _, e := range entries {
			if e.Error == "" {
				filesMatched++
			}
		}
		env.Files = limitFiles(entries, req.Limit)

	case req.Graph:
		project := relPaths(req.Root, candidateFilesExt(req.Root, req.Globs, sourceExts, filter, cancelled))
		reg := langs.NewRegistry()
		readFile := func(rel string) ([]byte, error) {
			return os.ReadFile(filepath.Join(req.Root, filepath.FromSlash(rel)))
		}
		entries, cycles := graphbuild.Build(reg, req.Root, project, readFile)
		filesScanned = len(project)
		filesMatched = len(entries)
		env.Graph = limitGraph(entries, req.Limit)
		if len(cycles) > 0 {
			env.GraphCycles = cycles
		}

	case req.Symbols:
		reg := langs.NewRegistry()
		candidates := candidateFilesExt(req.Root, req.Globs, sourceExts, filter, cancelled)
		entries, scanned := symbolsmode.Extract(reg, req.Root, candidates, req.Concurrency)
		filesScanned = scanned
		filesMatched = len(entries)
		env.Symbols = limitFiles(entries, req.Limit)

	case req.Stats:
		candidates := candidateFilesExt(req.Root, req.Globs, sourceExts, filter, cancelled)
		env.Stats = statsagg.Aggregate(req.Root, candidates, req.Concurrency)
		filesScanned = env.Stats.Totals.Files
		filesMatched = filesScanned

	case req.Count:
		if strings.TrimSpace(req.Find) == "" {
			return configError(errors.New("--count requires --find"), start)
		}
		matcher, err := content.NewMatcher(req.Find, req.UseRegex)
		if err != nil {
			return configError(err, start)
		}
		candidates := candidateFilesContent(req.Root, req.Globs, filter, cancelled)
		opts := searchOpts(req, matcher, cancelled)
		entries, total, scanned, matched := content.Count(candidates, opts)
		filesScanned, filesMatched, totalMatches = scanned, matched, total
		env.Counts = limitFiles(entries, req.Limit)

	case strings.TrimSpace(req.Find) != "":
		matcher, err := content.NewMatcher(req.Find, req.UseRegex)
		if err != nil {
			return configError(err, start)
		}
		candidates := candidateFilesContent(req.Root, req.Globs, filter, cancelled)
		opts := searchOpts(req, matcher, cancelled)
		entries, scanned, matched := content.Search(candidates, opts)
		filesScanned, filesMatched = scanned, matched
		env.Files = limitFiles(entries, req.Limit)

	case len(req.Globs) > 0:
		abs := scanner.Flat(req.Root, req.Globs, filter, cancelled)
		entries := make([]envelope.FileEntry, 0, len(abs))
		for _, p := range relPaths(req.Root, abs) {
			entries = append(entries, envelope.FileEntry{Path: p})
		}
		filesScanned = len(entries)
		filesMatched = len(entries)
		env.Files = limitFiles(entries, req.Limit)

	default:
		node, scanned := scanner.Tree(req.Root, filter, sourceExts, cancelled)
		sr := convertNode(node)
		env.Tree = &sr
		filesScanned = scanned
		filesMatched = scanned
	}

	// A deadline that passed while the mode ran counts as a timeout even if
	// the watchdog goroutine has not been scheduled yet.
	if req.Timeout > 0 && time.Since(start) >= req.Timeout {
		timedOut.Store(true)
	}

	env.Meta = envelope.MetaInfo{
		ElapsedMs:    time.Since(start).Milliseconds(),
		Timeout:      timedOut.Load(),
		FilesScanned: filesScanned,
		FilesMatched: filesMatched,
		TotalMatches: totalMatches,
		ScanID:       req.ScanID,
	}
	return &Result{Envelope: env, TimedOut: timedOut.Load()}
}

func searchOpts(req Request, matcher content.Matcher, cancelled *atomic.Bool) content.Options {
	return content.Options{
		Root:        req.Root,
		Matcher:     matcher,
		Pad:         req.Pad,
		LineNumbers: req.LineNumbers,
		Concurrency: req.Concurrency,
		Cancelled:   cancelled,
		WarnLimiter: req.WarnLimiter,
		Logger:      req.Slog,
	}
}

func configError(err error, start time.Time) *Result {
	return &Result{Envelope: &envelope.OutputEnvelope{
		Error: err.Error(),
		Meta:  envelope.MetaInfo{ElapsedMs: time.Since(start).Milliseconds()},
	}}
}

// candidateFilesContent implements the content-search branch of spec.md
// §4.H: with globs, match those; without, match every file (no
// source-extension narrowing — see spec.md §4.B line on the content-search
// "all files" default).
func candidateFilesContent(root string, globs []string, filter *exclude.Filter, cancelled *atomic.Bool) []string {
	return scanner.Flat(root, globs, filter, cancelled)
}

// candidateFilesExt implements the non-content-search branch: with globs,
// match those; without, fall back to the recognized source-extensions
// filter rather than "every file".
func candidateFilesExt(root string, globs []string, sourceExts map[string]struct{}, filter *exclude.Filter, cancelled *atomic.Bool) []string {
	if len(globs) > 0 {
		return scanner.Flat(root, globs, filter, cancelled)
	}
	all := scanner.Flat(root, nil, filter, cancelled)
	out := all[:0:0]
	for _, p := range all {
		if _, ok := sourceExts[strings.ToLower(filepath.Ext(p))]; ok {
			out = append(out, p)
		}
	}
	return out
}

func relPaths(root string, abs []string) []string {
	out := make([]string, len(abs))
	for i, p := range abs {
		out[i] = pathutil.Normalize(root, p)
	}
	return out
}

func extSet(exts []string) map[string]struct{} {
	m := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		m[strings.ToLower(e)] = struct{}{}
	}
	return m
}

func convertNode(n *scanner.Node) envelope.ScanResult {
	sr := envelope.ScanResult{Name: n.Name, Files: n.Files}
	for _, c := range n.Children {
		child := convertNode(c)
		sr.Children = append(sr.Children, child)
	}
	return sr
}

func limitFiles(entries []envelope.FileEntry, limit int) []envelope.FileEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

func limitGraph(entries []envelope.GraphEntry, limit int) []envelope.GraphEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
