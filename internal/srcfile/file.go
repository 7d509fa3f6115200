// Package srcfile opens the raw bytes a fat16.Image reads from — a plain
// disk image file on any platform, or a raw block device on the
// platforms that support one.
package srcfile

import (
	"io"
	"os"
)

// File is anything Open can hand back: seekable, readable, closeable,
// and able to report its size via Stat.
type File interface {
	io.ReadCloser
	io.ReaderAt
	io.Seeker
	Stat() (os.FileInfo, error)
}
