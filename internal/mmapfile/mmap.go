// Package mmapfile implements the dual reading strategy content.go and
// lines.go share: files at or above largeFileThreshold are read through a
// memory map, smaller files through a plain buffered read. Both return the
// same []byte so callers never need to know which strategy fired.
//
// No memory-mapping library appears anywhere in the retrieved example
// corpus, so this package reaches for the platform mmap syscall directly
// (via golang.org/x/sys/unix on POSIX, a buffered-read fallback on
// Windows) rather than inventing a third-party dependency that isn't
// grounded in anything the corpus actually uses. See DESIGN.md.
package mmapfile

import (
	"bufio"
	"os"
)

// LargeFileThreshold is the size at or above which a file is read via mmap
// instead of a buffered sequential read (spec.md §4.E step 3).
const LargeFileThreshold = 64 * 1024

// SampleSize is how much of the file is sniffed for a NUL byte when
// detecting binary content (spec.md §4.E step 2).
const SampleSize = 8 * 1024

// Read returns the full contents of the file at path, choosing mmap or a
// buffered read based on its size. The returned closer must be called once
// the caller is done with the returned bytes; for an mmap'd file this
// unmaps the region, for a buffered read it is a no-op.
func Read(path string) (data []byte, closer func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}

	if info.Size() == 0 {
		return nil, func() error { return nil }, nil
	}

	if info.Size() >= LargeFileThreshold {
		return readMmap(f, info.Size())
	}
	return readBuffered(f, info.Size())
}

func readBuffered(f *os.File, size int64) ([]byte, func() error, error) {
	buf := make([]byte, size)
	r := bufio.NewReaderSize(f, 64*1024)
	if _, err := readFull(r, buf); err != nil {
		return nil, nil, err
	}
	return buf, func() error { return nil }, nil
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			if total == len(buf) {
				return total, nil
			}
			return total, err
		}
	}
	return total, nil
}

// Sample reads up to SampleSize bytes from the start of path without
// committing to mmap vs. buffered for the full read; used purely for the
// binary-detection sniff in spec.md §4.E step 2.
func Sample(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, SampleSize)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return nil, err
	}
	return buf[:n], nil
}
