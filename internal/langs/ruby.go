package langs

import (
	"path"
	"regexp"
	"strings"

	"codescan/internal/envelope"
)

// RubyHandler maps `require_relative` (path-relative) and `require`
// (load-path-relative, treated as root-relative here since Ruby has no
// static module-root marker comparable to go.mod) to file candidates, and
// recognizes class/module/def with indentation-based nesting for parents.
type RubyHandler struct{}

func NewRubyHandler() *RubyHandler { return &RubyHandler{} }

func (RubyHandler) Extensions() []string { return []string{".rb"} }

var (
	rbRequireRelRe = regexp.MustCompile(`require_relative\s+['"]([^'"]+)['"]`)
	rbRequireRe    = regexp.MustCompile(`(?m)^\s*require\s+['"]([^'"]+)['"]`)
	rbClassRe      = regexp.MustCompile(`^(\s*)class\s+(\w+)`)
	rbModuleRe     = regexp.MustCompile(`^(\s*)module\s+(\w+)`)
	rbDefRe        = regexp.MustCompile(`^(\s*)def\s+(?:self\.)?(\w+[?!=]?)`)
	rbConstRe      = regexp.MustCompile(`^\s*([A-Z][A-Z0-9_]*)\s*=`)
)

func (RubyHandler) ExtractImports(content []byte, filePath string) []string {
	dir := path.Dir(toSlash(filePath))
	var refs []string

	for _, m := range rbRequireRelRe.FindAllStringSubmatch(string(content), -1) {
		refs = append(refs, path.Clean(path.Join(dir, m[1]))+".rb")
	}
	for _, m := range rbRequireRe.FindAllStringSubmatch(string(content), -1) {
		refs = append(refs, m[1]+".rb")
	}
	return refs
}

func (RubyHandler) ExtractSymbols(content []byte) []envelope.SymbolEntry {
	lines := strings.Split(string(content), "\n")
	var out []envelope.SymbolEntry

	type scope struct {
		indent int
		name   string
	}
	var stack []scope

	for i, line := range lines {
		lineNo := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		for len(stack) > 0 && indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}

		switch {
		case rbClassRe.MatchString(line):
			m := rbClassRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "class", Name: m[2], Line: lineNo, Signature: signatureOf(line)})
			stack = append(stack, scope{indent: indent, name: m[2]})
		case rbModuleRe.MatchString(line):
			m := rbModuleRe.FindStringSubmatch(line)
			// Ruby's "module" is a namespacing construct; "mod" is the
			// closest kind in the closed vocabulary (spec.md §3).
			out = append(out, envelope.SymbolEntry{Kind: "mod", Name: m[2], Line: lineNo, Signature: signatureOf(line)})
			stack = append(stack, scope{indent: indent, name: m[2]})
		case rbDefRe.MatchString(line):
			m := rbDefRe.FindStringSubmatch(line)
			entry := envelope.SymbolEntry{Kind: "fn", Name: m[2], Line: lineNo, Signature: signatureOf(line)}
			if len(stack) > 0 {
				entry.Kind = "method"
				entry.Parent = stack[len(stack)-1].name
			}
			out = append(out, entry)
		case rbConstRe.MatchString(line):
			m := rbConstRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "const", Name: m[1], Line: lineNo, Signature: signatureOf(line)})
		}
	}

	return out
}
