// Package symbolsmode implements the --symbols orchestration of spec.md
// §4.G/§4.H: dispatch each candidate file to its SymbolExtractor and attach
// the file path the extractor itself never sees.
package symbolsmode

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"codescan/internal/envelope"
	"codescan/internal/langs"
	"codescan/internal/lineiter"
	"codescan/internal/mmapfile"
)

// Extract dispatches every absolute path with a recognized extension to its
// symbol extractor. Files with no matching handler or that are binary are
// silently skipped, per spec.md §7. Returns entries sorted case-insensitively
// by path.
func Extract(reg *langs.Registry, root string, paths []string, concurrency int) ([]envelope.FileEntry, int) {
	if concurrency <= 0 {
		concurrency = 2
	}

	results := make([]*envelope.FileEntry, len(paths))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, p := range paths {
		i, p := i, p
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = extractOne(reg, root, p)
		}()
	}
	wg.Wait()

	var entries []envelope.FileEntry
	filesScanned := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		filesScanned++
		if len(r.Symbols) == 0 && r.Error == "" {
			continue
		}
		entries = append(entries, *r)
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Path) < strings.ToLower(entries[j].Path)
	})
	return entries, filesScanned
}

func extractOne(reg *langs.Registry, root, absPath string) *envelope.FileEntry {
	ext := strings.ToLower(path.Ext(filepath.ToSlash(absPath)))
	extractor, ok := reg.SymbolsFor(ext)
	if !ok {
		return nil
	}

	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		rel = absPath
	}
	rel = filepath.ToSlash(rel)

	info, err := os.Stat(absPath)
	if err != nil || info.Size() == 0 {
		return nil
	}

	sample, err := mmapfile.Sample(absPath)
	if err != nil {
		return &envelope.FileEntry{Path: rel, Error: err.Error()}
	}
	if lineiter.IsBinary(sample) {
		return nil
	}

	data, closer, err := mmapfile.Read(absPath)
	if err != nil {
		return &envelope.FileEntry{Path: rel, Error: err.Error()}
	}
	defer closer()

	symbols := extractor.ExtractSymbols(data)
	return &envelope.FileEntry{Path: rel, Symbols: symbols}
}
