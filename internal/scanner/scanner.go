// Package scanner implements the parallel directory walk that every mode
// starts from: either a pruned tree of source-bearing directories, or a
// flat list of files matching a glob set. Both entry points share the same
// bounded-fan-out traversal, grounded on the same goroutine-per-directory
// shape the reference project's own parallel disk scanner uses, sized to
// runtime.GOMAXPROCS(0)*3 rather than the content-search cap (directory
// listing is much cheaper per unit of work than per-line matching).
package scanner

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"codescan/internal/exclude"
	"codescan/internal/globmatch"
)

// Cancelled is the shared, atomic cancellation flag polled at every
// directory boundary. A nil pointer is treated as "never cancelled".
type Cancelled = *atomic.Bool

// Tree recursively walks root, returning the pruned ScanResult tree: a node
// is included only if it or a descendant carries a recognized source file.
// Subdirectories are visited in parallel, bounded by a semaphore; when the
// semaphore is saturated the caller recurses synchronously instead of
// blocking on a goroutine launch.
func Tree(root string, filter *exclude.Filter, sourceExts map[string]struct{}, cancelled Cancelled) (*Node, int) {
	sem := make(chan struct{}, runtime.GOMAXPROCS(0)*3)
	var filesScanned int64
	n := walkTree(root, filepath.Base(root), filter, sourceExts, cancelled, sem, &filesScanned)
	if n == nil {
		n = &Node{Name: filepath.Base(root)}
	}
	return n, int(filesScanned)
}

// Node mirrors envelope.ScanResult but is built bottom-up before pruning;
// orchestrate converts it to envelope.ScanResult once complete.
type Node struct {
	Name     string
	Children []*Node
	Files    []string
}

func isCancelled(c Cancelled) bool {
	return c != nil && c.Load()
}

func walkTree(dir, name string, filter *exclude.Filter, sourceExts map[string]struct{}, cancelled Cancelled, sem chan struct{}, filesScanned *int64) *Node {
	if isCancelled(cancelled) {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	node := &Node{Name: name}

	var childDirs []os.DirEntry
	for _, e := range entries {
		base := e.Name()
		if e.IsDir() {
			if filter.IsExcluded(base) {
				continue
			}
			childDirs = append(childDirs, e)
			continue
		}
		if _, ok := sourceExts[strings.ToLower(filepath.Ext(base))]; ok {
			if filter.IsExcluded(base) {
				continue
			}
			node.Files = append(node.Files, base)
			atomic.AddInt64(filesScanned, 1)
		}
	}

	if len(childDirs) > 0 {
		children := make([]*Node, len(childDirs))
		var wg sync.WaitGroup
		for i, e := range childDirs {
			i, e := i, e
			childDir := filepath.Join(dir, e.Name())
			spawn := func() {
				children[i] = walkTree(childDir, e.Name(), filter, sourceExts, cancelled, sem, filesScanned)
			}
			select {
			case sem <- struct{}{}:
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer func() { <-sem }()
					spawn()
				}()
			default:
				spawn()
			}
		}
		wg.Wait()
		for _, c := range children {
			if c != nil && (len(c.Files) > 0 || len(c.Children) > 0) {
				node.Children = append(node.Children, c)
			}
		}
	}

	sort.Slice(node.Children, func(i, j int) bool {
		return strings.ToLower(node.Children[i].Name) < strings.ToLower(node.Children[j].Name)
	})
	sort.Slice(node.Files, func(i, j int) bool {
		return strings.ToLower(node.Files[i]) < strings.ToLower(node.Files[j])
	})

	return node
}

// Flat walks root collecting absolute paths of every file that matches any
// of globs and isn't excluded. An empty globs list matches every file
// (equivalent to "*"); per spec.md §4.D, modes other than content-search
// should instead pass their own recognized-extensions filter.
func Flat(root string, globs []string, filter *exclude.Filter, cancelled Cancelled) []string {
	sem := make(chan struct{}, runtime.GOMAXPROCS(0)*3)
	var mu sync.Mutex
	var files []string

	var wg sync.WaitGroup
	wg.Add(1)
	walkFlat(root, globs, filter, cancelled, sem, &wg, &mu, &files)
	wg.Wait()

	sort.Strings(files)
	return files
}

func walkFlat(dir string, globs []string, filter *exclude.Filter, cancelled Cancelled, sem chan struct{}, wg *sync.WaitGroup, mu *sync.Mutex, files *[]string) {
	defer wg.Done()

	if isCancelled(cancelled) {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, e := range entries {
		if isCancelled(cancelled) {
			return
		}
		base := e.Name()
		full := filepath.Join(dir, base)

		if e.IsDir() {
			if filter.IsExcluded(base) {
				continue
			}
			wg.Add(1)
			spawn := func() { walkFlat(full, globs, filter, cancelled, sem, wg, mu, files) }
			select {
			case sem <- struct{}{}:
				go func() {
					defer func() { <-sem }()
					spawn()
				}()
			default:
				spawn()
			}
			continue
		}

		if filter.IsExcluded(base) {
			continue
		}
		if len(globs) > 0 && !globmatch.MatchesAny(base, globs) {
			continue
		}

		mu.Lock()
		*files = append(*files, full)
		mu.Unlock()
	}
}
