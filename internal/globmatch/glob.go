// Package globmatch implements the single-path-component glob used by the
// scanner's flat-find mode and the CLI's --glob flag: '*' matches zero or
// more characters, '?' matches exactly one, neither crosses a path
// separator, and matching is case-insensitive.
//
// The matcher is backed by github.com/gobwas/glob, the same library the
// reference scanner uses for its own exclude-pattern matching, compiled
// with '/' as the only separator so a pattern never reaches across path
// components.
package globmatch

import (
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

// cache avoids recompiling the same pattern for every file visited during a
// single flat-find walk; patterns are few and files are many.
var (
	mu    sync.Mutex
	cache = make(map[string]glob.Glob)
)

func compile(pattern string) (glob.Glob, error) {
	mu.Lock()
	defer mu.Unlock()
	if g, ok := cache[pattern]; ok {
		return g, nil
	}
	g, err := glob.Compile(strings.ToLower(pattern), '/')
	if err != nil {
		return nil, err
	}
	cache[pattern] = g
	return g, nil
}

// Matches reports whether name matches pattern. An invalid pattern never
// matches rather than propagating a compile error — callers that need to
// surface bad patterns as user errors should call Validate first.
func Matches(name, pattern string) bool {
	g, err := compile(pattern)
	if err != nil {
		return false
	}
	return g.Match(strings.ToLower(name))
}

// MatchesAny reports whether name matches any of patterns. An empty patterns
// list matches nothing; callers wanting "all files" should pass "*".
func MatchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if Matches(name, p) {
			return true
		}
	}
	return false
}

// Validate compiles pattern purely to surface a malformed-glob error; it
// does no matching. Used by the CLI to reject a bad --glob pattern up
// front instead of silently matching nothing.
func Validate(pattern string) error {
	_, err := compile(pattern)
	return err
}
