// Package envelope defines the single output shape every scan mode assembles
// into: one OutputEnvelope with a meta section always present and every other
// section optional, populated only by the modes that produce it.
package envelope

// OutputEnvelope is the result of exactly one invocation. Optional sections
// are left as zero values (and therefore omitted by the writer) when the
// selected mode doesn't produce them.
type OutputEnvelope struct {
	Meta    MetaInfo     `yaml:"meta" json:"meta"`
	Tree    *ScanResult  `yaml:"tree,omitempty" json:"tree,omitempty"`
	Files   []FileEntry  `yaml:"files,omitempty" json:"files,omitempty"`
	Graph   []GraphEntry `yaml:"graph,omitempty" json:"graph,omitempty"`
	Symbols []FileEntry  `yaml:"symbols,omitempty" json:"symbols,omitempty"`
	Counts  []FileEntry  `yaml:"counts,omitempty" json:"counts,omitempty"`
	Stats   *StatsResult `yaml:"stats,omitempty" json:"stats,omitempty"`
	Error   string       `yaml:"error,omitempty" json:"error,omitempty"`

	// GraphCycles and the per-entry fan counters supplement the distilled
	// graph shape (see SPEC_FULL.md §3 expansion). Left nil outside --graph
	// mode, or when the project graph has no cycles.
	GraphCycles [][]string `yaml:"graphCycles,omitempty" json:"graphCycles,omitempty"`
}

// MetaInfo carries invocation-level bookkeeping. elapsedMs, filesScanned and
// filesMatched are always meaningful; timeout and totalMatches are present
// only when they apply.
type MetaInfo struct {
	ElapsedMs    int64  `yaml:"elapsedMs" json:"elapsedMs"`
	Timeout      bool   `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	FilesScanned int    `yaml:"filesScanned,omitempty" json:"filesScanned,omitempty"`
	FilesMatched int    `yaml:"filesMatched,omitempty" json:"filesMatched,omitempty"`
	TotalMatches int    `yaml:"totalMatches,omitempty" json:"totalMatches,omitempty"`
	ScanID       string `yaml:"scanId,omitempty" json:"scanId,omitempty"`
}

// ScanResult is one node of the directory tree. A node is emitted only if it
// or a descendant contains at least one recognized source file.
type ScanResult struct {
	Name     string       `yaml:"name" json:"name"`
	Children []ScanResult `yaml:"children,omitempty" json:"children,omitempty"`
	Files    []string     `yaml:"files,omitempty" json:"files,omitempty"`
}

// FileEntry is a per-file result. At most one of Contents, Chunks, Error,
// Count or Symbols carries data; which one depends on the active mode.
type FileEntry struct {
	Path     string        `yaml:"path" json:"path"`
	Contents LiteralString `yaml:"contents,omitempty" json:"contents,omitempty"`
	Chunks   []FileChunk   `yaml:"chunks,omitempty" json:"chunks,omitempty"`
	Error    string        `yaml:"error,omitempty" json:"error,omitempty"`
	Count    *int          `yaml:"count,omitempty" json:"count,omitempty"`
	Symbols  []SymbolEntry `yaml:"symbols,omitempty" json:"symbols,omitempty"`
}

// FileChunk is a contiguous, inclusive line range rendered as one block.
type FileChunk struct {
	StartLine int           `yaml:"startLine" json:"startLine"`
	EndLine   int           `yaml:"endLine" json:"endLine"`
	Content   LiteralString `yaml:"content" json:"content"`
}

// GraphEntry is one file's resolved, in-project dependency edges.
type GraphEntry struct {
	File            string   `yaml:"file" json:"file"`
	Imports         []string `yaml:"imports" json:"imports"`
	ImportCount     int      `yaml:"importCount,omitempty" json:"importCount,omitempty"`
	ImportedByCount int      `yaml:"importedByCount,omitempty" json:"importedByCount,omitempty"`
}

// SymbolEntry is one language-level declaration extracted from a file.
type SymbolEntry struct {
	Kind       string `yaml:"kind" json:"kind"`
	Name       string `yaml:"name" json:"name"`
	Line       int    `yaml:"line" json:"line"`
	Visibility string `yaml:"visibility,omitempty" json:"visibility,omitempty"`
	Parent     string `yaml:"parent,omitempty" json:"parent,omitempty"`
	Signature  string `yaml:"signature" json:"signature"`
}

// StatsResult is the per-extension and aggregate codebase size breakdown.
type StatsResult struct {
	Languages []LanguageStats `yaml:"languages" json:"languages"`
	Totals    Totals          `yaml:"totals" json:"totals"`
	Largest   []LargestFile   `yaml:"largest" json:"largest"`
}

// LanguageStats aggregates one file extension.
type LanguageStats struct {
	Extension string `yaml:"extension" json:"extension"`
	Files     int    `yaml:"files" json:"files"`
	Lines     int    `yaml:"lines" json:"lines"`
	Bytes     int64  `yaml:"bytes" json:"bytes"`
}

// Totals is the sum of LanguageStats across every extension seen.
type Totals struct {
	Files int   `yaml:"files" json:"files"`
	Lines int   `yaml:"lines" json:"lines"`
	Bytes int64 `yaml:"bytes" json:"bytes"`
}

// LargestFile is one entry in the top-10-by-size list.
type LargestFile struct {
	Path  string `yaml:"path" json:"path"`
	Bytes int64  `yaml:"bytes" json:"bytes"`
}
