package fat16

import "errors"

// ErrMalformedBootBlock is returned by Open when the first 512 bytes of the
// image cannot be decoded as a FAT16 boot sector: a short read, or a
// zero BytesPerSector, SectorsPerCluster, NumFATs or SectorsPerFAT field.
var ErrMalformedBootBlock = errors.New("fat16: malformed boot block")

// ErrNotADirectory is a sentinel callers can wrap into their own errors
// when Image.FirstEntryOf returns false because the supplied entry does
// not carry the directory attribute; FirstEntryOf itself reports this as
// a bool, not an error.
var ErrNotADirectory = errors.New("fat16: not a directory")
