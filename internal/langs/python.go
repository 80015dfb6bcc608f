package langs

import (
	"path"
	"regexp"
	"strings"

	"codescan/internal/envelope"
)

// PythonHandler translates dotted module paths to directories the way the
// teacher's internal/resolver/python_resolver.go does in reverse (module
// name -> file path instead of file path -> module name), including the
// relative "from . import x" / "from ..y import z" forms.
type PythonHandler struct{}

func NewPythonHandler() *PythonHandler { return &PythonHandler{} }

func (PythonHandler) Extensions() []string { return []string{".py"} }

var (
	pyImportRe     = regexp.MustCompile(`(?m)^\s*import\s+([\w\.]+)`)
	pyFromRe       = regexp.MustCompile(`(?m)^\s*from\s+(\.*)([\w\.]*)\s+import\s+`)
	pyFuncRe       = regexp.MustCompile(`^def\s+(\w+)\s*\(`)
	pyMethodRe     = regexp.MustCompile(`^\s+def\s+(\w+)\s*\(`)
	pyClassRe      = regexp.MustCompile(`^class\s+(\w+)`)
	pyUpperConstRe = regexp.MustCompile(`^([A-Z][A-Z0-9_]*)\s*=`)
)

func (PythonHandler) ExtractImports(content []byte, filePath string) []string {
	dir := path.Dir(toSlash(filePath))
	var refs []string

	add := func(dotted string) {
		if dotted == "" {
			return
		}
		rel := strings.ReplaceAll(dotted, ".", "/")
		refs = append(refs, rel+".py", rel+"/__init__.py")
	}

	for _, m := range pyImportRe.FindAllStringSubmatch(string(content), -1) {
		add(m[1])
	}

	for _, m := range pyFromRe.FindAllStringSubmatch(string(content), -1) {
		dots, mod := m[1], m[2]
		if dots == "" {
			add(mod)
			continue
		}
		base := dir
		for i := 1; i < len(dots); i++ {
			base = path.Dir(base)
		}
		if mod == "" {
			refs = append(refs, base+"/__init__.py")
			continue
		}
		rel := strings.ReplaceAll(mod, ".", "/")
		refs = append(refs, base+"/"+rel+".py", base+"/"+rel+"/__init__.py")
	}

	return refs
}

func (PythonHandler) ExtractSymbols(content []byte) []envelope.SymbolEntry {
	lines := strings.Split(string(content), "\n")
	var out []envelope.SymbolEntry

	var classParent string
	classIndent := -1

	for i, line := range lines {
		lineNo := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		if classIndent >= 0 && indent <= classIndent {
			classIndent = -1
			classParent = ""
		}

		switch {
		case pyClassRe.MatchString(line) && indent == 0:
			m := pyClassRe.FindStringSubmatch(line)
			classParent = m[1]
			classIndent = indent
			out = append(out, envelope.SymbolEntry{Kind: "class", Name: m[1], Line: lineNo, Signature: signatureOf(line)})
		case indent == 0 && pyFuncRe.MatchString(line):
			m := pyFuncRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "fn", Name: m[1], Line: lineNo, Signature: signatureOf(line)})
		case classIndent >= 0 && pyMethodRe.MatchString(line):
			m := pyMethodRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "method", Name: m[1], Line: lineNo, Parent: classParent, Signature: signatureOf(line)})
		case indent == 0 && pyUpperConstRe.MatchString(line):
			m := pyUpperConstRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "const", Name: m[1], Line: lineNo, Signature: signatureOf(line)})
		}
	}

	return out
}
