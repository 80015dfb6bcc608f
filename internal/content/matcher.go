package content

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher evaluates a single line and reports whether it matches. The three
// tagged variants (literal, multi-term, regex) are selected once at setup
// per spec.md §4.E "Matcher variants" and shared, read-only, across every
// worker.
type Matcher interface {
	MatchLine(line string) bool
}

type literalMatcher struct {
	needle string // already lowercased
}

func (m literalMatcher) MatchLine(line string) bool {
	return strings.Contains(strings.ToLower(line), m.needle)
}

type multiTermMatcher struct {
	terms []string // already lowercased, trimmed
}

func (m multiTermMatcher) MatchLine(line string) bool {
	lower := strings.ToLower(line)
	for _, t := range m.terms {
		if t == "" {
			continue
		}
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (m regexMatcher) MatchLine(line string) bool {
	return m.re.MatchString(line)
}

// NewMatcher builds the matcher variant the caller asked for:
//   - regex: pattern compiles once, case-insensitively; a compile failure is
//     a user error (spec.md §7 case 1).
//   - multi-term: pattern contains '|' and regex wasn't requested; split on
//     '|', trim each term.
//   - literal: plain case-insensitive substring search.
func NewMatcher(pattern string, useRegex bool) (Matcher, error) {
	if useRegex {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		return regexMatcher{re: re}, nil
	}

	if strings.Contains(pattern, "|") {
		parts := strings.Split(pattern, "|")
		terms := make([]string, 0, len(parts))
		for _, p := range parts {
			terms = append(terms, strings.ToLower(strings.TrimSpace(p)))
		}
		return multiTermMatcher{terms: terms}, nil
	}

	return literalMatcher{needle: strings.ToLower(pattern)}, nil
}
