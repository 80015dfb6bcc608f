// Package langs implements the analyzer layer of spec.md §4.G: a pair of
// capability interfaces (ImportExtractor, SymbolExtractor) dispatched by file
// extension, each handler a plain regex/text scanner rather than a parser —
// the engine explicitly does not build an AST. Grounded on the teacher's
// internal/resolver/*.go heuristics (module-name derivation, crate/use
// translation, stdlib-aware resolution) generalized from "resolve a
// reference against a symbol table" to "emit a candidate project path for
// the graph orchestrator to resolve".
package langs

import (
	"strings"

	"codescan/internal/envelope"
)

// signatureOf trims a declaration line down to spec.md §3's SymbolEntry
// "signature": the trimmed line up to the opening brace, or the whole
// trimmed line when there is none.
func signatureOf(line string) string {
	trimmed := strings.TrimSpace(line)
	if i := strings.IndexByte(trimmed, '{'); i >= 0 {
		trimmed = strings.TrimSpace(trimmed[:i])
	}
	return trimmed
}

// ImportExtractor declares the extensions it claims and, given a file's raw
// content and its root-relative path, returns candidate import references.
// A reference is either a file path (exact match) or a directory prefix
// (trailing '/', prefix match) — see graphbuild for resolution.
type ImportExtractor interface {
	Extensions() []string
	ExtractImports(content []byte, filePath string) []string
}

// SymbolExtractor declares the extensions it claims and returns every symbol
// declared in content; the orchestrator attaches the file path.
type SymbolExtractor interface {
	Extensions() []string
	ExtractSymbols(content []byte) []envelope.SymbolEntry
}

// Registry dispatches by extension, at most one handler per capability per
// extension, per spec.md §4.G "Selection".
type Registry struct {
	imports map[string]ImportExtractor
	symbols map[string]SymbolExtractor
}

// NewRegistry builds the registry with every required language binding
// (spec.md §4.G: Rust, TS/JS, C#, Go, Python, Java, Kotlin, Ruby).
func NewRegistry() *Registry {
	r := &Registry{
		imports: make(map[string]ImportExtractor),
		symbols: make(map[string]SymbolExtractor),
	}
	r.register(NewRustHandler())
	r.register(NewTSHandler())
	r.register(NewCSharpHandler())
	r.register(NewGoHandler())
	r.register(NewPythonHandler())
	r.register(NewJavaHandler())
	r.register(NewKotlinHandler())
	r.register(NewRubyHandler())
	return r
}

func (r *Registry) register(h interface{}) {
	if ie, ok := h.(ImportExtractor); ok {
		for _, ext := range ie.Extensions() {
			r.imports[ext] = ie
		}
	}
	if se, ok := h.(SymbolExtractor); ok {
		for _, ext := range se.Extensions() {
			r.symbols[ext] = se
		}
	}
}

// ImportsFor returns the import extractor claiming ext, if any.
func (r *Registry) ImportsFor(ext string) (ImportExtractor, bool) {
	h, ok := r.imports[ext]
	return h, ok
}

// SymbolsFor returns the symbol extractor claiming ext, if any.
func (r *Registry) SymbolsFor(ext string) (SymbolExtractor, bool) {
	h, ok := r.symbols[ext]
	return h, ok
}
