package langs

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"codescan/internal/envelope"
)

// RustHandler recognizes mod/use declarations and the usual item keywords.
// Grounded on the teacher's internal/resolver/rust_resolver.go, which strips
// crate::/self::/super:: prefixes and splits on "::"; here the same split
// feeds a candidate project path instead of a symbol-table lookup.
type RustHandler struct{}

func NewRustHandler() *RustHandler { return &RustHandler{} }

func (RustHandler) Extensions() []string { return []string{".rs"} }

var (
	rustModRe      = regexp.MustCompile(`\bmod\s+(\w+)\s*;`)
	rustUseCrateRe = regexp.MustCompile(`\buse\s+crate::([\w:]+)\s*;`)
	rustUseSuperRe = regexp.MustCompile(`\buse\s+super::([\w:]+)\s*;`)
	rustItemRe     = regexp.MustCompile(`^\s*(?:pub(?:\(crate\))?\s+)?(fn|struct|enum|trait|type|const|mod)\s+(\w+)`)
	rustImplRe     = regexp.MustCompile(`^\s*impl(?:<[^>]*>)?\s+(\w+)(?:\s+for\s+(\w+))?`)
)

func (RustHandler) ExtractImports(content []byte, filePath string) []string {
	dir := path.Dir(toSlash(filePath))
	var refs []string

	for _, m := range rustModRe.FindAllStringSubmatch(string(content), -1) {
		name := m[1]
		refs = append(refs, dir+"/"+name+".rs", dir+"/"+name+"/mod.rs")
	}

	for _, m := range rustUseCrateRe.FindAllStringSubmatch(string(content), -1) {
		if p := rustModulePath("src", m[1]); p != "" {
			refs = append(refs, p)
		}
	}

	// super:: names the parent module. A mod.rs file's parent module lives
	// one directory up; any other file's parent module keeps its child
	// modules in the file's own directory.
	parent := dir
	if path.Base(toSlash(filePath)) == "mod.rs" {
		parent = path.Dir(dir)
	}
	for _, m := range rustUseSuperRe.FindAllStringSubmatch(string(content), -1) {
		if p := rustModulePath(parent, m[1]); p != "" {
			refs = append(refs, p)
		}
	}

	return refs
}

// rustModulePath joins a "::"-separated path onto base, dropping a trailing
// segment that looks like an imported symbol (starts uppercase) rather than
// a module name.
func rustModulePath(base, segs string) string {
	parts := strings.Split(segs, "::")
	if len(parts) == 0 {
		return ""
	}
	last := parts[len(parts)-1]
	if last != "" && unicode.IsUpper(rune(last[0])) {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return ""
	}
	return base + "/" + strings.Join(parts, "/") + ".rs"
}

func (RustHandler) ExtractSymbols(content []byte) []envelope.SymbolEntry {
	lines := strings.Split(string(content), "\n")
	var out []envelope.SymbolEntry

	depth := 0
	var implParent string
	implDepth := -1

	for i, line := range lines {
		lineNo := i + 1

		if m := rustImplRe.FindStringSubmatch(line); m != nil {
			implParent = m[1]
			if m[2] != "" {
				implParent = m[2]
			}
			implDepth = depth
		}

		if m := rustItemRe.FindStringSubmatch(line); m != nil {
			kind, name := m[1], m[2]
			vis := ""
			if strings.Contains(line, "pub(crate)") || strings.Contains(line, "pub ") {
				vis = "pub"
			}
			entry := envelope.SymbolEntry{Kind: kind, Name: name, Line: lineNo, Visibility: vis, Signature: signatureOf(line)}
			if kind == "fn" && implDepth >= 0 && depth == implDepth+1 {
				entry.Kind = "method"
				entry.Parent = implParent
			}
			out = append(out, entry)
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if implDepth >= 0 && depth <= implDepth {
			implDepth = -1
			implParent = ""
		}
	}

	return out
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
