package langs

import (
	"path"
	"regexp"
	"strings"

	"codescan/internal/envelope"
)

// TSHandler covers TypeScript and JavaScript, including JSX variants.
// Resolution probes the extension list spec.md §4.G names for TS/JS:
// .ts/.tsx/.js/.jsx/index.*.
type TSHandler struct{}

func NewTSHandler() *TSHandler { return &TSHandler{} }

func (TSHandler) Extensions() []string { return []string{".ts", ".tsx", ".js", ".jsx"} }

var (
	tsImportFromRe = regexp.MustCompile(`\bfrom\s+['"](\.[^'"]*)['"]`)
	tsRequireRe    = regexp.MustCompile(`\brequire\(\s*['"](\.[^'"]*)['"]\s*\)`)

	tsFuncRe  = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?function\s*\*?\s+(\w+)`)
	tsClassRe = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+(\w+)`)
	tsIfaceRe = regexp.MustCompile(`^\s*(?:export\s+)?interface\s+(\w+)`)
	tsTypeRe  = regexp.MustCompile(`^\s*(?:export\s+)?type\s+(\w+)`)
	tsEnumRe  = regexp.MustCompile(`^\s*(?:export\s+)?(?:const\s+)?enum\s+(\w+)`)
	tsConstRe = regexp.MustCompile(`^\s*(?:export\s+)?const\s+(\w+)\s*=`)
	tsMethRe  = regexp.MustCompile(`^\s*(?:public|private|protected|static|async)*\s*(\w+)\s*\([^)]*\)\s*(?::\s*[\w<>\[\].\s|]+)?\s*\{`)

	tsKeyword = map[string]bool{"if": true, "for": true, "while": true, "switch": true, "catch": true, "function": true, "constructor": true}
)

var tsExts = []string{".ts", ".tsx", ".js", ".jsx"}

func (TSHandler) ExtractImports(content []byte, filePath string) []string {
	dir := path.Dir(toSlash(filePath))
	text := string(content)
	var refs []string

	add := func(rel string) {
		base := path.Clean(path.Join(dir, rel))
		for _, ext := range tsExts {
			refs = append(refs, base+ext)
			refs = append(refs, base+"/index"+ext)
		}
	}

	for _, m := range tsImportFromRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range tsRequireRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	return refs
}

func (TSHandler) ExtractSymbols(content []byte) []envelope.SymbolEntry {
	lines := strings.Split(string(content), "\n")
	var out []envelope.SymbolEntry

	depth := 0
	var classParent string
	classDepth := -1

	for i, line := range lines {
		lineNo := i + 1
		exported := strings.Contains(line, "export")

		switch {
		case tsClassRe.MatchString(line):
			m := tsClassRe.FindStringSubmatch(line)
			classParent = m[1]
			classDepth = depth
			out = append(out, envelope.SymbolEntry{Kind: "class", Name: m[1], Line: lineNo, Visibility: visIf(exported), Signature: signatureOf(line)})
		case tsIfaceRe.MatchString(line):
			m := tsIfaceRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "interface", Name: m[1], Line: lineNo, Visibility: visIf(exported), Signature: signatureOf(line)})
		case tsEnumRe.MatchString(line):
			m := tsEnumRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "enum", Name: m[1], Line: lineNo, Visibility: visIf(exported), Signature: signatureOf(line)})
		case tsTypeRe.MatchString(line):
			m := tsTypeRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "type", Name: m[1], Line: lineNo, Visibility: visIf(exported), Signature: signatureOf(line)})
		case tsFuncRe.MatchString(line):
			m := tsFuncRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "fn", Name: m[1], Line: lineNo, Visibility: visIf(exported), Signature: signatureOf(line)})
		case tsConstRe.MatchString(line):
			m := tsConstRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "const", Name: m[1], Line: lineNo, Visibility: visIf(exported), Signature: signatureOf(line)})
		case classDepth >= 0 && depth == classDepth+1:
			if m := tsMethRe.FindStringSubmatch(line); m != nil && !tsKeyword[m[1]] {
				out = append(out, envelope.SymbolEntry{Kind: "method", Name: m[1], Line: lineNo, Parent: classParent, Signature: signatureOf(line)})
			}
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if classDepth >= 0 && depth <= classDepth {
			classDepth = -1
			classParent = ""
		}
	}

	return out
}

func visIf(b bool) string {
	if b {
		return "export"
	}
	return ""
}
