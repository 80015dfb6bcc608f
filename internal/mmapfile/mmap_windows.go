//go:build windows

package mmapfile

import "os"

// readMmap falls back to a buffered read on Windows: the engine's memory
// mapping story is POSIX-only, and a buffered read of a large file is
// correct, just not as fast.
func readMmap(f *os.File, size int64) ([]byte, func() error, error) {
	return readBuffered(f, size)
}
