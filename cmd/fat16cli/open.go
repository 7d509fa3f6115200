package fat16cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fat16fs/fat16/internal/logger"
	"github.com/fat16fs/fat16/internal/mmap"
	"github.com/fat16fs/fat16/internal/srcfile"
	"github.com/fat16fs/fat16/pkg/fat16"
	"github.com/fat16fs/fat16/pkg/reader"
)

const readBufferSize = 256 * 1024

// multiCloser closes every underlying file a command opened, in order,
// collecting the first error encountered.
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openImage builds an Image from cmd's --partition-offset, --span and
// --mmap flags together with path, the command's primary positional
// image argument. The caller must close the returned closer once done
// with the Image.
func openImage(cmd *cobra.Command, path string) (*fat16.Image, io.Closer, error) {
	spanPaths, _ := cmd.Flags().GetStringSlice("span")
	useMmap, _ := cmd.Flags().GetBool("mmap")
	partitionOffset := partitionOffsetFlag(cmd)

	if len(spanPaths) > 0 {
		return openSpannedImage(path, spanPaths, partitionOffset)
	}
	if useMmap {
		return openMmapImage(path, partitionOffset)
	}

	f, err := srcfile.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}

	var src io.ReadSeeker = f
	if partitionOffset > 0 {
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("stat %s: %w", path, err)
		}
		src = io.NewSectionReader(f, partitionOffset, info.Size()-partitionOffset)
	}

	img, err := fat16.Open(reader.NewBufferedReadSeeker(src, readBufferSize))
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, f, nil
}

// openSpannedImage treats path followed by spanPaths as one contiguous
// volume, split across same-ordered chunk files (e.g. image.001,
// image.002, ...). partitionOffset, if non-zero, is taken relative to
// the start of the first chunk.
func openSpannedImage(path string, spanPaths []string, partitionOffset int64) (*fat16.Image, io.Closer, error) {
	allPaths := append([]string{path}, spanPaths...)

	var closers multiCloser
	readers := make([]io.ReadSeeker, 0, len(allPaths))
	sizes := make([]int64, 0, len(allPaths))

	for _, p := range allPaths {
		f, err := srcfile.Open(p)
		if err != nil {
			closers.Close()
			return nil, nil, fmt.Errorf("opening %s: %w", p, err)
		}
		closers = append(closers, f)

		info, err := f.Stat()
		if err != nil {
			closers.Close()
			return nil, nil, fmt.Errorf("stat %s: %w", p, err)
		}
		readers = append(readers, f)
		sizes = append(sizes, info.Size())
	}

	var src io.ReadSeeker = reader.NewMultiReadSeeker(readers, sizes)
	if partitionOffset > 0 {
		if _, err := src.Seek(partitionOffset, io.SeekStart); err != nil {
			closers.Close()
			return nil, nil, fmt.Errorf("seeking to partition offset: %w", err)
		}
		src = &seekOffsetReader{base: src, origin: partitionOffset}
	}

	img, err := fat16.Open(reader.NewBufferedReadSeeker(src, readBufferSize))
	if err != nil {
		closers.Close()
		return nil, nil, fmt.Errorf("decoding spanned image: %w", err)
	}
	return img, closers, nil
}

// seekOffsetReader rebases a ReadSeeker so offset 0 from the caller's
// point of view lands at origin in the underlying stream, the way
// io.NewSectionReader does for a plain io.ReaderAt. MultiReadSeeker only
// implements io.ReadSeeker, not io.ReaderAt, so NewSectionReader itself
// does not apply here.
type seekOffsetReader struct {
	base   io.ReadSeeker
	origin int64
}

func (s *seekOffsetReader) Read(p []byte) (int, error) {
	return s.base.Read(p)
}

func (s *seekOffsetReader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		offset += s.origin
	case io.SeekCurrent:
	case io.SeekEnd:
		return 0, fmt.Errorf("seekOffsetReader: SeekEnd is not supported")
	}
	pos, err := s.base.Seek(offset, whence)
	if err != nil {
		return 0, err
	}
	return pos - s.origin, nil
}

func openMmapImage(path string, partitionOffset int64) (*fat16.Image, io.Closer, error) {
	mf, err := mmap.NewMmapFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("mmapping %s: %w", path, err)
	}

	var src io.ReadSeeker = mf.Reader()
	if partitionOffset > 0 {
		src = io.NewSectionReader(mf.Reader(), partitionOffset, int64(mf.FileSize)-partitionOffset)
	}

	img, err := fat16.Open(src)
	if err != nil {
		mf.Close()
		return nil, nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, mf, nil
}

func loggerFromFlags(cmd *cobra.Command) *logger.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logger.New(cmd.ErrOrStderr(), logger.ParseLevel(level))
}

func partitionOffsetFlag(cmd *cobra.Command) int64 {
	v, _ := cmd.Flags().GetInt64("partition-offset")
	return v
}

// resolvePath walks from the root directory down the "/"-separated path,
// following ShouldDescend into each named subdirectory. When the final
// component names a file, it returns a cursor positioned on that entry and
// false; when it names a subdirectory, it returns a fresh cursor at the
// start of that subdirectory and true. An empty path (or "/") resolves to
// a fresh root-directory cursor and true; that cursor carries no
// Fundamental record of its own.
func resolvePath(img *fat16.Image, path string) (fat16.Entry, bool, error) {
	root := *img.RootDirEntry()
	parts := splitPath(path)
	if len(parts) == 0 {
		return root, true, nil
	}

	dir := root
	for i, name := range parts {
		last := i == len(parts)-1

		var found fat16.Entry
		var ok bool
		cursor := dir
		for img.Next(&cursor) {
			if cursor.Name() == name {
				found = cursor
				ok = true
				break
			}
		}
		if !ok {
			return fat16.Entry{}, false, fmt.Errorf("%s: no such file or directory", name)
		}

		if last && !found.ShouldDescend() {
			return found, false, nil
		}

		var sub fat16.Entry
		if !img.FirstEntryOf(&found, &sub) {
			return fat16.Entry{}, false, fmt.Errorf("%s: %w", name, fat16.ErrNotADirectory)
		}
		if last {
			return sub, true, nil
		}
		dir = sub
	}
	return dir, true, nil
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
