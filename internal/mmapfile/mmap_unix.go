//go:build !windows

package mmapfile

import (
	"os"

	"golang.org/x/sys/unix"
)

func readMmap(f *os.File, size int64) ([]byte, func() error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return readBuffered(f, size)
	}
	closer := func() error {
		return unix.Munmap(data)
	}
	return data, closer, nil
}
