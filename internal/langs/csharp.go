package langs

import (
	"regexp"
	"strings"

	"codescan/internal/envelope"
)

// CSharpHandler maps `using` directives to namespace-prefix matches — C#
// has no one-file-per-type requirement, so a using clause can only ever be
// resolved as a directory-form reference against the project file set.
type CSharpHandler struct{}

func NewCSharpHandler() *CSharpHandler { return &CSharpHandler{} }

func (CSharpHandler) Extensions() []string { return []string{".cs"} }

var (
	csUsingRe = regexp.MustCompile(`(?m)^\s*using\s+([\w\.]+)\s*;`)
	csNsRe    = regexp.MustCompile(`^\s*namespace\s+([\w\.]+)`)
	csTypeRe  = regexp.MustCompile(`^\s*(?:(public|private|protected|internal)\s+)?(?:(?:static|sealed|abstract|partial)\s+)*(class|interface|struct|enum)\s+(\w+)`)
	csMethRe  = regexp.MustCompile(`^\s*(?:(public|private|protected|internal)\s+)?(?:(?:static|virtual|override|async)\s+)*[\w<>\[\],\.\s]+?\s+(\w+)\s*\([^)]*\)\s*\{?`)
)

func (CSharpHandler) ExtractImports(content []byte, filePath string) []string {
	var refs []string
	for _, m := range csUsingRe.FindAllStringSubmatch(string(content), -1) {
		refs = append(refs, strings.ReplaceAll(m[1], ".", "/")+"/")
	}
	return refs
}

func (CSharpHandler) ExtractSymbols(content []byte) []envelope.SymbolEntry {
	lines := strings.Split(string(content), "\n")
	var out []envelope.SymbolEntry

	depth := 0
	var typeParent string
	typeDepth := -1

	for i, line := range lines {
		lineNo := i + 1

		switch {
		case csNsRe.MatchString(line):
			m := csNsRe.FindStringSubmatch(line)
			out = append(out, envelope.SymbolEntry{Kind: "namespace", Name: m[1], Line: lineNo, Signature: signatureOf(line)})
		case csTypeRe.MatchString(line):
			m := csTypeRe.FindStringSubmatch(line)
			typeParent = m[3]
			typeDepth = depth
			out = append(out, envelope.SymbolEntry{Kind: m[2], Name: m[3], Line: lineNo, Visibility: m[1], Signature: signatureOf(line)})
		case typeDepth >= 0 && depth == typeDepth+1:
			if m := csMethRe.FindStringSubmatch(line); m != nil {
				out = append(out, envelope.SymbolEntry{Kind: "method", Name: m[2], Line: lineNo, Visibility: m[1], Parent: typeParent, Signature: signatureOf(line)})
			}
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if typeDepth >= 0 && depth <= typeDepth {
			typeDepth = -1
			typeParent = ""
		}
	}

	return out
}
