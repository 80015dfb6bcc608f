// Package statsagg implements spec.md §4.H "Stats aggregation": per-file
// byte size and line count (mmap for large files, the same strategy as
// §4.E), grouped by lowercased extension, sorted languages-descending by
// lines and a top-10 largest-by-bytes list.
package statsagg

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"codescan/internal/envelope"
	"codescan/internal/lineiter"
	"codescan/internal/mmapfile"
)

// Aggregate computes StatsResult over every absolute path in paths,
// bounded by a semaphore the way content.processAll is, since per-file work
// is the same mmap-or-buffered read.
func Aggregate(root string, paths []string, concurrency int) *envelope.StatsResult {
	if concurrency <= 0 {
		concurrency = 2
	}

	type fileStat struct {
		relPath string
		bytes   int64
		lines   int
		ext     string
	}

	stats := make([]fileStat, len(paths))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, p := range paths {
		i, p := i, p
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			rel, err := filepath.Rel(root, p)
			if err != nil {
				rel = p
			}
			rel = filepath.ToSlash(rel)
			ext := strings.ToLower(filepath.Ext(p))

			info, err := os.Stat(p)
			if err != nil {
				return
			}

			data, closer, err := mmapfile.Read(p)
			lineCount := 0
			if err == nil {
				lineCount = lineiter.Count(data)
				closer()
			}

			stats[i] = fileStat{relPath: rel, bytes: info.Size(), lines: lineCount, ext: ext}
		}()
	}
	wg.Wait()

	type langAgg struct {
		files int
		lines int
		bytes int64
	}
	langs := make(map[string]*langAgg)

	largest := make([]envelope.LargestFile, 0, len(stats))
	var totalFiles, totalLines int
	var totalBytes int64

	for _, s := range stats {
		if s.relPath == "" {
			continue
		}
		key := s.ext
		if key == "" {
			key = "(none)"
		}
		a, ok := langs[key]
		if !ok {
			a = &langAgg{}
			langs[key] = a
		}
		a.files++
		a.lines += s.lines
		a.bytes += s.bytes

		totalFiles++
		totalLines += s.lines
		totalBytes += s.bytes

		largest = append(largest, envelope.LargestFile{Path: s.relPath, Bytes: s.bytes})
	}

	languages := make([]envelope.LanguageStats, 0, len(langs))
	for ext, a := range langs {
		languages = append(languages, envelope.LanguageStats{
			Extension: strings.TrimPrefix(ext, "."),
			Files:     a.files,
			Lines:     a.lines,
			Bytes:     a.bytes,
		})
	}
	sort.Slice(languages, func(i, j int) bool {
		if languages[i].Lines != languages[j].Lines {
			return languages[i].Lines > languages[j].Lines
		}
		return languages[i].Extension < languages[j].Extension
	})

	sort.Slice(largest, func(i, j int) bool {
		if largest[i].Bytes != largest[j].Bytes {
			return largest[i].Bytes > largest[j].Bytes
		}
		return largest[i].Path < largest[j].Path
	})
	if len(largest) > 10 {
		largest = largest[:10]
	}

	return &envelope.StatsResult{
		Languages: languages,
		Totals:    envelope.Totals{Files: totalFiles, Lines: totalLines, Bytes: totalBytes},
		Largest:   largest,
	}
}
