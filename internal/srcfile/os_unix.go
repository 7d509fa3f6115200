//go:build !windows
// +build !windows

package srcfile

import "os"

// Open opens path for reading. On Unix, block devices (e.g. /dev/sdb1)
// and plain image files are opened identically — the kernel handles the
// distinction.
func Open(path string) (File, error) {
	return os.Open(path)
}
