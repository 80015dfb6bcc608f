// Package graphbuild implements the graph orchestrator of spec.md §4.G
// "Resolution algorithm (graph)": dispatch each file to its language's
// import extractor, resolve raw references against the project file set,
// and assemble sorted GraphEntry values. Cycle detection is adapted from
// the teacher's internal/graph/detect.go DFS, generalized from "first cycle
// found per start node" to a full Tarjan strongly-connected-components pass
// so a node with multiple cycles through it is still reported once.
package graphbuild

import (
	"path"
	"sort"
	"strings"

	"codescan/internal/envelope"
	"codescan/internal/langs"
)

// Build resolves imports for every file in project (root-relative paths,
// already filtered by the caller's glob set if any) against the full
// project file set, returning sorted GraphEntry values plus the detected
// cycles (components of size > 1, or a single file that imports itself).
func Build(reg *langs.Registry, absRoot string, project []string, readFile func(relPath string) ([]byte, error)) ([]envelope.GraphEntry, [][]string) {
	if goHandler, ok := reg.ImportsFor(".go"); ok {
		if gh, ok := goHandler.(*langs.GoHandler); ok {
			gh.SetRoot(absRoot)
		}
	}

	fileSet := make(map[string]struct{}, len(project))
	for _, p := range project {
		fileSet[p] = struct{}{}
	}

	entries := make([]envelope.GraphEntry, 0, len(project))
	for _, f := range project {
		ext := path.Ext(f)
		extractor, ok := reg.ImportsFor(ext)
		if !ok {
			continue
		}
		content, err := readFile(f)
		if err != nil {
			continue
		}
		raw := extractor.ExtractImports(content, f)
		resolved := resolveRefs(raw, fileSet)
		entries = append(entries, envelope.GraphEntry{File: f, Imports: resolved})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].File < entries[j].File })

	annotateFanInOut(entries)
	cycles := detectCycles(entries)

	return entries, cycles
}

// resolveRefs applies spec.md §4.G step 2: directory-form references
// (trailing '/') match every project file with that prefix; file-form
// references match exactly. Results are deduplicated by resolved path,
// preserving first occurrence, then sorted.
func resolveRefs(refs []string, fileSet map[string]struct{}) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, r := range refs {
		if r == "" {
			continue
		}
		if r[len(r)-1] == '/' {
			for p := range fileSet {
				if hasPrefix(p, r) {
					if _, dup := seen[p]; !dup {
						seen[p] = struct{}{}
						out = append(out, p)
					}
				}
			}
			continue
		}
		clean := path.Clean(r)
		if _, ok := fileSet[clean]; ok {
			if _, dup := seen[clean]; !dup {
				seen[clean] = struct{}{}
				out = append(out, clean)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out
}

func hasPrefix(p, prefix string) bool {
	return len(p) >= len(prefix) && p[:len(prefix)] == prefix
}

func annotateFanInOut(entries []envelope.GraphEntry) {
	importedBy := make(map[string]int)
	for _, e := range entries {
		for _, imp := range e.Imports {
			importedBy[imp]++
		}
	}
	for i := range entries {
		entries[i].ImportCount = len(entries[i].Imports)
		entries[i].ImportedByCount = importedBy[entries[i].File]
	}
}
