// Package lines implements the line extractor of spec.md §4.F: parse
// "path:start:end" specs, group by resolved path, clamp/merge ranges with
// pad zero, and render chunks with the content processor's exact rendering
// rule (original trailing-newline fidelity).
package lines

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"codescan/internal/content"
	"codescan/internal/envelope"
	"codescan/internal/lineiter"
	"codescan/internal/mmapfile"
	"codescan/internal/rangemerge"
)

// Spec is one parsed "path:start:end" request, 1-based inclusive.
type Spec struct {
	Path  string
	Start int
	End   int
}

// InvalidSpecError reports a malformed spec string — a configuration error
// per spec.md §7 case 1.
type InvalidSpecError struct {
	Raw string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid line spec %q: expected path:start:end", e.Raw)
}

// ParseSpecs parses a space-separated list of "path:start:end" tokens.
// startLine > endLine is swapped silently; non-positive line numbers or a
// malformed token fail the whole batch (spec.md §4.F "Validation").
func ParseSpecs(raw string) ([]Spec, error) {
	var specs []Spec
	for _, tok := range strings.Fields(raw) {
		parts := strings.Split(tok, ":")
		if len(parts) != 3 {
			return nil, &InvalidSpecError{Raw: tok}
		}
		start, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, &InvalidSpecError{Raw: tok}
		}
		end, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, &InvalidSpecError{Raw: tok}
		}
		if start <= 0 || end <= 0 {
			return nil, &InvalidSpecError{Raw: tok}
		}
		if start > end {
			start, end = end, start
		}
		specs = append(specs, Spec{Path: parts[0], Start: start, End: end})
	}
	return specs, nil
}

// Extract resolves each spec's path against root, reads the file once per
// distinct path, clamps/merges its ranges, and renders chunks in start-line
// order. Entries are sorted case-insensitively by path.
func Extract(root string, specs []Spec, lineNumbers bool) []envelope.FileEntry {
	byPath := make(map[string][]Spec)
	var order []string
	for _, s := range specs {
		if _, ok := byPath[s.Path]; !ok {
			order = append(order, s.Path)
		}
		byPath[s.Path] = append(byPath[s.Path], s)
	}

	entries := make([]envelope.FileEntry, 0, len(order))
	for _, p := range order {
		if e := extractOne(root, p, byPath[p], lineNumbers); e != nil {
			entries = append(entries, *e)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Path) < strings.ToLower(entries[j].Path)
	})
	return entries
}

// extractOne returns nil for an empty or binary file — spec.md §4.F skips
// them the same way symbolsmode.extractOne skips an unreadable file,
// rather than emitting a meaningless empty entry.
func extractOne(root, relPath string, specs []Spec, lineNumbers bool) *envelope.FileEntry {
	absPath := filepath.Join(root, filepath.FromSlash(relPath))

	info, err := os.Stat(absPath)
	if err != nil {
		return &envelope.FileEntry{Path: relPath, Error: fmt.Sprintf("File not found: %s", relPath)}
	}
	if info.Size() == 0 {
		return nil
	}

	sample, err := mmapfile.Sample(absPath)
	if err != nil {
		return &envelope.FileEntry{Path: relPath, Error: err.Error()}
	}
	if lineiter.IsBinary(sample) {
		return nil
	}

	data, closer, err := mmapfile.Read(absPath)
	if err != nil {
		return &envelope.FileEntry{Path: relPath, Error: err.Error()}
	}
	defer closer()

	fileLines := lineiter.Split(data)
	n := len(fileLines)
	trailingNewline := lineiter.HasTrailingNewline(data)

	// end is clamped to the file's line count; when start itself lands past
	// the end of the file (e.g. a swapped "10:8" against a 5-line file), it
	// clamps to the same last line rather than erroring, per the worked
	// example in spec.md §8 scenario 3.
	var windows []rangemerge.Range
	for _, s := range specs {
		end := s.End
		if end > n {
			end = n
		}
		start := s.Start
		if start > end {
			start = end
		}
		windows = append(windows, rangemerge.Range{Start: start - 1, End: end - 1})
	}
	if len(windows) == 0 {
		return nil
	}

	ranges := rangemerge.Merge(windows)
	chunks := content.RenderChunks(fileLines, ranges, lineNumbers, trailingNewline)

	entry := &envelope.FileEntry{Path: relPath}
	if len(chunks) == 1 && chunks[0].StartLine == 1 && chunks[0].EndLine == n {
		entry.Contents = chunks[0].Content
	} else {
		entry.Chunks = chunks
	}
	return entry
}
