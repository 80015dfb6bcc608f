// Package content implements the memory-mapped, line-oriented content
// processor (spec.md §4.E): per-file binary detection, matcher evaluation,
// context-window merging, and chunk rendering, fanned out over a bounded
// worker pool the way the reference project's wave executor bounds
// parallel task execution — a semaphore-guarded goroutine per file, results
// funneled back over a guarded slice rather than an unbounded channel.
package content

import (
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"codescan/internal/envelope"
	"codescan/internal/lineiter"
	"codescan/internal/logging"
	"codescan/internal/mmapfile"
	"codescan/internal/pathutil"
	"codescan/internal/rangemerge"
)

// Options configures one Search or Count call.
type Options struct {
	Root          string
	Matcher       Matcher
	Pad           int
	LineNumbers   bool
	Concurrency   int
	IncludeZeroes bool // count mode only: emit {path, count:0} entries
	Cancelled     *atomic.Bool
	WarnLimiter   *logging.WarnLimiter
	Logger        *slog.Logger
}

// Search runs the matcher over every path and returns the matching
// FileEntry values, sorted case-insensitively by path. Files with no
// matches are omitted. filesScanned/filesMatched are returned for the
// caller's MetaInfo.
func Search(paths []string, opts Options) (entries []envelope.FileEntry, filesScanned, filesMatched int) {
	results := processAll(paths, opts, false)
	for _, r := range results {
		filesScanned++
		if r.skip {
			continue
		}
		if r.err != "" {
			filesMatched++
			entries = append(entries, envelope.FileEntry{Path: r.path, Error: r.err})
			continue
		}
		if len(r.matches) == 0 {
			continue
		}
		filesMatched++
		entries = append(entries, renderSearchEntry(r, opts))
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Path) < strings.ToLower(entries[j].Path)
	})
	return entries, filesScanned, filesMatched
}

// Count runs the matcher over every path, counting matching lines per file
// instead of building chunks. Returns per-file entries (sorted
// case-insensitively by path) and the aggregate total.
func Count(paths []string, opts Options) (entries []envelope.FileEntry, totalMatches, filesScanned, filesMatched int) {
	results := processAll(paths, opts, true)
	for _, r := range results {
		filesScanned++
		if r.skip {
			continue
		}
		if r.err != "" {
			filesMatched++
			entries = append(entries, envelope.FileEntry{Path: r.path, Error: r.err})
			continue
		}
		count := len(r.matches)
		if count == 0 && !opts.IncludeZeroes {
			continue
		}
		filesMatched++
		c := count
		entries = append(entries, envelope.FileEntry{Path: r.path, Count: &c})
		totalMatches += count
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Path) < strings.ToLower(entries[j].Path)
	})
	return entries, totalMatches, filesScanned, filesMatched
}

// fileResult is the intermediate, per-file outcome shared by search and
// count before mode-specific rendering.
type fileResult struct {
	path            string // root-relative
	skip            bool   // empty or binary: produce nothing
	err             string
	matches         []int // 0-based matching line indices
	lines           []lineiter.Line
	trailingNewline bool
}

func processAll(paths []string, opts Options, countOnly bool) []fileResult {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}

	sem := make(chan struct{}, concurrency)
	results := make([]fileResult, len(paths))

	var wg sync.WaitGroup
	for i, p := range paths {
		if isCancelled(opts.Cancelled) {
			break
		}
		i, p := i, p
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = processOne(p, opts, countOnly)
		}()
	}
	wg.Wait()
	return results
}

func isCancelled(c *atomic.Bool) bool {
	return c != nil && c.Load()
}

func processOne(absPath string, opts Options, countOnly bool) fileResult {
	rel := pathutil.Normalize(opts.Root, absPath)
	res := fileResult{path: rel}

	if isCancelled(opts.Cancelled) {
		return res
	}

	info, err := os.Stat(absPath)
	if err != nil {
		res.err = err.Error()
		warnSkip(opts, absPath, err)
		return res
	}
	if info.Size() == 0 {
		res.skip = true
		return res
	}

	sample, err := mmapfile.Sample(absPath)
	if err != nil {
		res.err = err.Error()
		warnSkip(opts, absPath, err)
		return res
	}
	if lineiter.IsBinary(sample) {
		res.skip = true
		return res
	}

	data, closer, err := mmapfile.Read(absPath)
	if err != nil {
		res.err = err.Error()
		warnSkip(opts, absPath, err)
		return res
	}
	defer closer()

	lines := lineiter.Split(data)
	res.lines = lines
	res.trailingNewline = lineiter.HasTrailingNewline(data)

	for idx, ln := range lines {
		if idx%256 == 0 && isCancelled(opts.Cancelled) {
			break
		}
		if opts.Matcher.MatchLine(ln.Text) {
			res.matches = append(res.matches, idx)
			if countOnly {
				continue
			}
		}
	}

	return res
}

func warnSkip(opts Options, path string, err error) {
	if opts.Logger == nil {
		return
	}
	if opts.WarnLimiter != nil && !opts.WarnLimiter.Allow() {
		return
	}
	opts.Logger.Warn("skipping file", "path", path, "error", err)
}

func renderSearchEntry(r fileResult, opts Options) envelope.FileEntry {
	n := len(r.lines)
	ranges := rangemerge.FromMatches(r.matches, opts.Pad, n)
	chunks := RenderChunks(r.lines, ranges, opts.LineNumbers, r.trailingNewline)

	entry := envelope.FileEntry{Path: r.path}
	if len(chunks) == 1 && chunks[0].StartLine == 1 && chunks[0].EndLine == n {
		entry.Contents = chunks[0].Content
	} else {
		entry.Chunks = chunks
	}
	return entry
}

// RenderChunks renders each merged range as a FileChunk, shared by the
// content processor and the line extractor (spec.md §4.F reuses §4.E's
// rendering rule). Every emitted line keeps the newline it had in the
// source file: lines[i] is always followed by '\n' in the original except
// the very last line of the file when the file has no trailing newline.
func RenderChunks(lines []lineiter.Line, ranges []rangemerge.Range, lineNumbers, trailingNewline bool) []envelope.FileChunk {
	n := len(lines)
	chunks := make([]envelope.FileChunk, 0, len(ranges))
	for _, rg := range ranges {
		var b strings.Builder
		for i := rg.Start; i <= rg.End; i++ {
			if lineNumbers {
				b.WriteString(strconv.Itoa(lines[i].Number))
				b.WriteString(".  ")
			}
			b.WriteString(lines[i].Text)
			if i != n-1 || trailingNewline {
				b.WriteByte('\n')
			}
		}
		chunks = append(chunks, envelope.FileChunk{
			StartLine: lines[rg.Start].Number,
			EndLine:   lines[rg.End].Number,
			Content:   envelope.LiteralString(b.String()),
		})
	}
	return chunks
}
