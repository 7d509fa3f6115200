package fat16

// Image composes the boot block and the backing ImageSource into the
// single entry point the rest of the package exposes. It owns both; an
// Image must not be driven from more than one goroutine at a time.
type Image struct {
	boot *BootBlock
	src  ImageSource
}

// Open reads and decodes the boot block at the start of src and returns
// an Image ready to iterate directories and stream file content. It
// fails with ErrMalformedBootBlock if the boot sector is short or its
// geometry fields are zero.
func Open(src ImageSource) (*Image, error) {
	boot, err := readBootBlock(src)
	if err != nil {
		return nil, err
	}
	return &Image{boot: boot, src: src}, nil
}

// BootBlock returns the decoded boot sector. Callers should treat the
// returned value as read-only.
func (img *Image) BootBlock() *BootBlock {
	return img.boot
}

// BytesPerCluster returns the number of bytes in one allocation unit.
func (img *Image) BytesPerCluster() uint32 {
	return img.boot.BytesPerCluster
}

// RootDirEntry builds a fresh iteration cursor positioned at the start
// of the root directory.
func (img *Image) RootDirEntry() *Entry {
	return &Entry{root: 0, cursorRecord: 0}
}
