// Package pathutil normalizes absolute filesystem paths into the
// root-relative, forward-slash form every envelope field uses.
package pathutil

import (
	"path/filepath"
	"strings"
)

// Normalize returns path relative to root with '/' as the separator,
// regardless of host OS. Idempotent: normalizing an already-normalized path
// is a no-op.
func Normalize(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	return strings.TrimPrefix(rel, "./")
}
