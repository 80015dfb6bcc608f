package langs

import (
	"regexp"
	"strings"

	"codescan/internal/envelope"
)

// JavaHandler maps `import a.b.C;` to a file-form candidate ("a/b/C.java")
// and `import a.b.*;` to a directory-form candidate ("a/b/").
type JavaHandler struct{}

func NewJavaHandler() *JavaHandler { return &JavaHandler{} }

func (JavaHandler) Extensions() []string { return []string{".java"} }

var (
	javaImportRe = regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w\.]+)(\.\*)?\s*;`)
	javaTypeRe   = regexp.MustCompile(`^\s*(?:(public|private|protected)\s+)?(?:(?:static|final|abstract)\s+)*(class|interface|enum)\s+(\w+)`)
	javaMethodRe = regexp.MustCompile(`^\s*(?:(public|private|protected)\s+)?(?:(?:static|final|abstract|synchronized)\s+)*[\w<>\[\],\s]+?\s+(\w+)\s*\([^)]*\)\s*\{?`)
)

func (JavaHandler) ExtractImports(content []byte, filePath string) []string {
	var refs []string
	for _, m := range javaImportRe.FindAllStringSubmatch(string(content), -1) {
		rel := strings.ReplaceAll(m[1], ".", "/")
		if m[2] != "" {
			refs = append(refs, rel+"/")
		} else {
			refs = append(refs, rel+".java")
		}
	}
	return refs
}

func (JavaHandler) ExtractSymbols(content []byte) []envelope.SymbolEntry {
	return textDeclarations(content, javaTypeRe, javaMethodRe)
}

// textDeclarations is JavaHandler's brace-depth scan: a type regex
// introduces a parent scope, a method regex inside that scope's immediate
// body is attributed to it.
func textDeclarations(content []byte, typeRe, methodRe *regexp.Regexp) []envelope.SymbolEntry {
	lines := strings.Split(string(content), "\n")
	var out []envelope.SymbolEntry

	depth := 0
	var parent string
	parentDepth := -1

	for i, line := range lines {
		lineNo := i + 1

		switch {
		case typeRe.MatchString(line):
			m := typeRe.FindStringSubmatch(line)
			parent = m[3]
			parentDepth = depth
			out = append(out, envelope.SymbolEntry{Kind: m[2], Name: m[3], Line: lineNo, Visibility: m[1], Signature: signatureOf(line)})
		case parentDepth >= 0 && depth == parentDepth+1:
			if m := methodRe.FindStringSubmatch(line); m != nil {
				out = append(out, envelope.SymbolEntry{Kind: "method", Name: m[2], Line: lineNo, Visibility: m[1], Parent: parent, Signature: signatureOf(line)})
			}
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if parentDepth >= 0 && depth <= parentDepth {
			parentDepth = -1
			parent = ""
		}
	}

	return out
}
