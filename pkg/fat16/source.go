package fat16

import "io"

// Seek whence values, aliased to the io package's own
// io.SeekStart/Current/End so any io.ReadSeeker satisfies ImageSource
// as-is.
const (
	SeekBegin   = io.SeekStart
	SeekCurrent = io.SeekCurrent
	SeekEnd     = io.SeekEnd
)

// ImageSource is the random-access byte source the core reads an image
// through: a disk image file, a raw device, a byte buffer, or anything
// else exposing a single read/seek cursor. Any io.ReadSeeker satisfies
// it directly; the core never requires more than this.
//
// The contract does not require thread-safety: the core itself never
// issues an intervening seek between a seek and the read that follows
// it, but a single Image must not be driven from multiple goroutines
// concurrently.
type ImageSource interface {
	io.Reader
	io.Seeker
}
