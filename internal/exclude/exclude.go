// Package exclude implements the directory/file exclusion predicate used to
// prune the filesystem walk before it ever touches an excluded subtree.
package exclude

import "strings"

// Filter decides whether a directory or file basename is pruned. Matching is
// a case-insensitive equality check against a fixed set of names, not a glob
// — that's the job of package globmatch.
type Filter struct {
	names map[string]struct{}
}

// DefaultNames is the built-in set of directory/file basenames pruned unless
// the caller disables defaults. The exact membership of this set is
// configuration, not design (see spec.md §9 Open Question 3); callers add
// names through New's extra argument (config.Scan.ExtraExcludes, --exclude)
// or drop this list with suppressDefaults (--no-defaults) rather than
// editing it in place.
var DefaultNames = []string{
	".git", ".svn", ".hg", ".idea", ".vscode",
	"node_modules", "vendor", "target", "dist", "build", "out", "bin",
	"__pycache__", ".pytest_cache", ".mypy_cache", ".tox",
	".venv", "venv", "env",
	"coverage", ".next", ".nuxt",
	"obj", ".gradle", ".dart_tool",
}

// New builds a Filter from the optional defaults, caller-provided additions,
// and a flag suppressing the defaults entirely.
func New(extra []string, suppressDefaults bool) *Filter {
	f := &Filter{names: make(map[string]struct{}, len(DefaultNames)+len(extra))}
	if !suppressDefaults {
		for _, n := range DefaultNames {
			f.names[strings.ToLower(n)] = struct{}{}
		}
	}
	for _, n := range extra {
		f.names[strings.ToLower(n)] = struct{}{}
	}
	return f
}

// IsExcluded reports whether name (a directory or file basename) is pruned.
func (f *Filter) IsExcluded(name string) bool {
	_, ok := f.names[strings.ToLower(name)]
	return ok
}
