package langs

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"codescan/internal/envelope"
)

// GoHandler resolves `import` paths against the enclosing module, walking up
// from each file to find go.mod exactly the way the teacher's
// internal/resolver/go_resolver.go does (FindGoMod), but memoized per
// directory for the lifetime of one handler instance — spec.md §5's
// "go.mod module-path lookup is memoized with a one-shot initializer keyed
// per scan" becomes one GoHandler constructed per invocation.
type GoHandler struct {
	mu      sync.Mutex
	modules map[string]goModule // root-relative directory -> resolved module
	root    string              // absolute scan root, for go.mod filesystem lookups
}

type goModule struct {
	path string // module path, e.g. "example.com/p"
	ok   bool
}

func NewGoHandler() *GoHandler {
	return &GoHandler{modules: make(map[string]goModule)}
}

// SetRoot tells the handler the absolute directory the scan started from,
// so relative file paths can be turned back into real filesystem paths when
// walking up for go.mod. Must be called once before ExtractImports.
func (h *GoHandler) SetRoot(absRoot string) {
	h.mu.Lock()
	h.root = absRoot
	h.mu.Unlock()
}

func (*GoHandler) Extensions() []string { return []string{".go"} }

var (
	goImportSingleRe = regexp.MustCompile(`^\s*import\s+"([^"]+)"`)
	goImportBlockRe  = regexp.MustCompile(`^\s*"([^"]+)"`)
	goFuncRe         = regexp.MustCompile(`^func\s+(\w+)\s*\(`)
	goMethodRe       = regexp.MustCompile(`^func\s*\(\s*\w*\s*\*?(\w+)\s*\)\s*(\w+)\s*\(`)
	goTypeRe         = regexp.MustCompile(`^type\s+(\w+)\s+(struct|interface)\b`)
	goTypeAliasRe    = regexp.MustCompile(`^type\s+(\w+)\s+`)
	goConstRe        = regexp.MustCompile(`^const\s+(\w+)`)
	goVarRe          = regexp.MustCompile(`^var\s+(\w+)`)
)

func (h *GoHandler) ExtractImports(content []byte, filePath string) []string {
	mod := h.resolveModule(filePath)
	if !mod.ok {
		return nil
	}

	var refs []string
	inBlock := false
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import (") {
			inBlock = true
			continue
		}
		if inBlock {
			if trimmed == ")" {
				inBlock = false
				continue
			}
			if m := goImportBlockRe.FindStringSubmatch(line); m != nil {
				refs = append(refs, h.importToDir(mod, m[1])...)
			}
			continue
		}
		if m := goImportSingleRe.FindStringSubmatch(line); m != nil {
			refs = append(refs, h.importToDir(mod, m[1])...)
		}
	}
	return refs
}

func (h *GoHandler) importToDir(mod goModule, importPath string) []string {
	if !strings.HasPrefix(importPath, mod.path) {
		return nil
	}
	rel := strings.TrimPrefix(importPath, mod.path)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return []string{"./"}
	}
	return []string{rel + "/"}
}

// resolveModule walks up from filePath's directory looking for go.mod,
// caching the result per directory seen so repeated files under the same
// tree cost one stat apiece.
func (h *GoHandler) resolveModule(filePath string) goModule {
	dir := path.Dir(toSlash(filePath))

	h.mu.Lock()
	if m, ok := h.modules[dir]; ok {
		h.mu.Unlock()
		return m
	}
	h.mu.Unlock()

	m := h.walkUp(dir)

	h.mu.Lock()
	h.modules[dir] = m
	h.mu.Unlock()
	return m
}

func (h *GoHandler) walkUp(dir string) goModule {
	current := dir
	for {
		modPath := filepath.Join(h.root, current, "go.mod")
		if data, err := os.ReadFile(modPath); err == nil {
			name := parseModuleName(data)
			return goModule{path: name, ok: name != ""}
		}
		if current == "." {
			return goModule{}
		}
		current = path.Dir(current)
	}
}

var goModuleNameRe = regexp.MustCompile(`(?m)^module\s+(\S+)`)

func parseModuleName(data []byte) string {
	m := goModuleNameRe.FindSubmatch(data)
	if len(m) < 2 {
		return ""
	}
	return string(m[1])
}

func (*GoHandler) ExtractSymbols(content []byte) []envelope.SymbolEntry {
	lines := strings.Split(string(content), "\n")
	var out []envelope.SymbolEntry

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		lineNo := i + 1

		switch {
		case goMethodRe.MatchString(line):
			m := goMethodRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "method", Name: m[2], Line: lineNo, Parent: m[1], Visibility: exportedVis(m[2]), Signature: signatureOf(line)})
		case goFuncRe.MatchString(line):
			m := goFuncRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "fn", Name: m[1], Line: lineNo, Visibility: exportedVis(m[1]), Signature: signatureOf(line)})
		case goTypeRe.MatchString(line):
			m := goTypeRe.FindStringSubmatch(line)
			kind := "struct"
			if m[2] == "interface" {
				kind = "interface"
			}
			out = append(out, envelope.SymbolEntry{Kind: kind, Name: m[1], Line: lineNo, Visibility: exportedVis(m[1]), Signature: signatureOf(line)})
		case goTypeAliasRe.MatchString(line):
			m := goTypeAliasRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "type", Name: m[1], Line: lineNo, Visibility: exportedVis(m[1]), Signature: signatureOf(line)})
		case goConstRe.MatchString(line):
			m := goConstRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "const", Name: m[1], Line: lineNo, Visibility: exportedVis(m[1]), Signature: signatureOf(line)})
		case goVarRe.MatchString(line):
			m := goVarRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "var", Name: m[1], Line: lineNo, Visibility: exportedVis(m[1]), Signature: signatureOf(line)})
		}
	}

	return out
}

func exportedVis(name string) string {
	if name != "" && unicode.IsUpper(rune(name[0])) {
		return "pub"
	}
	return ""
}
