package fat16

import "io"

// FileReader adapts a file's cluster chain to io.Reader, for callers that
// want to use io.Copy or other stdlib machinery instead of driving
// ReadFromCluster directly.
type FileReader struct {
	img       *Image
	start     ClusterID
	offset    uint32
	remaining uint32
}

// OpenFile returns a FileReader streaming e's content from its first
// byte. e should be a fundamental entry previously yielded by Next; a
// directory entry reads back whatever raw bytes its "size" field
// happens to carry (FAT16 directories report a size of 0).
func (img *Image) OpenFile(e *Entry) *FileReader {
	f := e.Fundamental()
	return &FileReader{img: img, start: ClusterID(f.StartCluster), remaining: f.FileSize}
}

func (r *FileReader) Read(p []byte) (int, error) {
	if r.remaining == 0 {
		return 0, io.EOF
	}

	take := uint32(len(p))
	if take > r.remaining {
		take = r.remaining
	}

	n := r.img.ReadFromCluster(p[:take], r.offset, r.start, take)
	r.offset += n
	r.remaining -= n

	if n == 0 {
		return 0, io.EOF
	}
	if n < take {
		// chain ended early: the file is shorter on disk than its
		// directory entry claims.
		r.remaining = 0
	}
	return int(n), nil
}
