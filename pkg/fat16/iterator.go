package fat16

// Entry is a directory iteration cursor. It is opaque to callers: create
// one via Image.RootDirEntry or Image.FirstEntryOf, advance it with
// Image.Next, and drop it when done. The zero value is a valid cursor
// positioned at the start of the root directory.
type Entry struct {
	// cursorRecord is the byte offset, from the start of the directory
	// being iterated, of the next slot to read. Always a multiple of 32.
	cursorRecord uint32

	// root is 0 when iterating the flat root directory region, or the
	// starting cluster of a subdirectory otherwise.
	root ClusterID

	entry      FundamentalEntry
	lfnEntries []LongFileNameEntry
}

// Fundamental returns the most recently decoded 8.3 record.
func (e *Entry) Fundamental() FundamentalEntry {
	return e.entry
}

// IsRoot reports whether this cursor walks the flat root directory
// region rather than a subdirectory cluster chain.
func (e *Entry) IsRoot() bool {
	return e.root == 0
}

// Type returns the classification of the current fundamental entry's
// leading filename byte.
func (e *Entry) Type() EntryKind {
	return e.entry.Kind()
}

// Attributes returns the raw attribute bitmask of the current entry.
func (e *Entry) Attributes() Attribute {
	return e.entry.Attr
}

// IsDirectory reports whether the current entry carries the directory
// attribute, regardless of its name classification.
func (e *Entry) IsDirectory() bool {
	return e.entry.IsDirectory()
}

// Size returns the current entry's file size in bytes, as stored on disk.
func (e *Entry) Size() uint32 {
	return e.entry.FileSize
}

// StartCluster returns the current entry's starting cluster.
func (e *Entry) StartCluster() ClusterID {
	return ClusterID(e.entry.StartCluster)
}

// Next decodes the next visible 8.3 record together with any long-
// filename slots that precede it. It returns false when the underlying
// read fails, when the root directory's fixed capacity is exhausted, or
// when the first filename byte of the fundamental entry read is 0x00
// (end-of-directory marker).
func (img *Image) Next(e *Entry) bool {
	e.lfnEntries = e.lfnEntries[:0]

	if e.IsRoot() {
		if e.cursorRecord/direntSize >= uint32(img.boot.RootDirEntries) {
			return false
		}
		if _, err := img.src.Seek(int64(img.boot.RootDirRegionStart+e.cursorRecord), SeekBegin); err != nil {
			return false
		}
	}

	readSlot := func() ([]byte, bool) {
		buf := make([]byte, direntSize)
		var n int
		var err error
		if e.IsRoot() {
			n, err = readFull(img.src, buf)
		} else {
			n = int(img.ReadFromCluster(buf, e.cursorRecord, e.root, direntSize))
		}
		if n != direntSize || err != nil {
			return nil, false
		}
		return buf, true
	}

	for {
		buf, ok := readSlot()
		if !ok {
			return false
		}

		if isLFNSlot(buf) {
			e.lfnEntries = append(e.lfnEntries, decodeLongFileNameEntry(buf))
			e.cursorRecord += direntSize
			continue
		}

		// buf holds the terminating (or standalone) 8.3 record. In the
		// root case the cursor has already moved past it; rewind so the
		// generic advance below re-reads it from the same starting point
		// a subdirectory read would have used.
		if e.IsRoot() {
			if _, err := img.src.Seek(-direntSize, SeekCurrent); err != nil {
				return false
			}
		}
		break
	}

	buf, ok := readSlot()
	if !ok {
		return false
	}
	e.cursorRecord += direntSize
	e.entry = decodeFundamentalEntry(buf)

	return e.entry.RawName[0] != nameUnusedByte
}

// FirstEntryOf positions out at the start of the subdirectory parent
// refers to. It returns false, leaving out untouched, if parent does not
// carry the directory attribute.
func (img *Image) FirstEntryOf(parent *Entry, out *Entry) bool {
	if parent.entry.Attr&AttrDirectory == 0 {
		return false
	}
	out.root = ClusterID(parent.entry.StartCluster)
	out.cursorRecord = 0
	out.lfnEntries = out.lfnEntries[:0]
	return true
}

// ShouldDescend reports whether entry names a real subdirectory worth
// recursing into: the directory attribute is set and the entry is
// neither unused, deleted, nor a "." / ".." pseudo-entry.
func (e *Entry) ShouldDescend() bool {
	if !e.entry.IsDirectory() {
		return false
	}
	switch e.entry.Kind() {
	case KindUnused, KindDeleted, KindDotEntry:
		return false
	default:
		return true
	}
}
