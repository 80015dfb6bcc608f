package langs

import (
	"regexp"
	"strings"

	"codescan/internal/envelope"
)

// KotlinHandler mirrors JavaHandler's import shape (Kotlin's package system
// is the same dotted-path-to-directory scheme) with Kotlin's own
// declaration keywords (class/interface/object/fun).
type KotlinHandler struct{}

func NewKotlinHandler() *KotlinHandler { return &KotlinHandler{} }

func (KotlinHandler) Extensions() []string { return []string{".kt", ".kts"} }

var (
	ktImportRe = regexp.MustCompile(`(?m)^\s*import\s+(\w+(?:\.\w+)*)(\.\*)?`)
	ktTypeRe   = regexp.MustCompile(`^\s*(?:(public|private|protected|internal)\s+)?(?:(?:open|abstract|final|data|sealed)\s+)*(class|interface|object)\s+(\w+)`)
	ktFunRe    = regexp.MustCompile(`^\s*(?:(public|private|protected|internal)\s+)?(?:(?:open|override|suspend)\s+)*fun\s+(\w+)\s*\(`)
)

func (KotlinHandler) ExtractImports(content []byte, filePath string) []string {
	var refs []string
	for _, m := range ktImportRe.FindAllStringSubmatch(string(content), -1) {
		rel := strings.ReplaceAll(m[1], ".", "/")
		if m[2] != "" {
			refs = append(refs, rel+"/")
		} else {
			refs = append(refs, rel+".kt")
		}
	}
	return refs
}

func (KotlinHandler) ExtractSymbols(content []byte) []envelope.SymbolEntry {
	lines := strings.Split(string(content), "\n")
	var out []envelope.SymbolEntry

	depth := 0
	var parent string
	parentDepth := -1

	for i, line := range lines {
		lineNo := i + 1

		switch {
		case ktTypeRe.MatchString(line):
			m := ktTypeRe.FindStringSubmatch(line)
			kind := m[2]
			if kind == "object" {
				kind = "class" // Kotlin singleton declaration, closest closed-vocabulary kind
			}
			parent = m[3]
			parentDepth = depth
			out = append(out, envelope.SymbolEntry{Kind: kind, Name: m[3], Line: lineNo, Visibility: m[1], Signature: signatureOf(line)})
		case ktFunRe.MatchString(line):
			m := ktFunRe.FindStringSubmatch(line)
			entry := envelope.SymbolEntry{Kind: "fn", Name: m[2], Line: lineNo, Visibility: m[1], Signature: signatureOf(line)}
			if parentDepth >= 0 && depth == parentDepth+1 {
				entry.Kind = "method"
				entry.Parent = parent
			}
			out = append(out, entry)
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if parentDepth >= 0 && depth <= parentDepth {
			parentDepth = -1
			parent = ""
		}
	}

	return out
}
