package fat16

import (
	"encoding/binary"
	"fmt"
)

// BootSectorSize is the fixed size of the FAT16 boot sector / BIOS
// Parameter Block that begins every FAT16 image.
const BootSectorSize = 512

// bootSignature is the classic 0xAA55 boot-sector marker. The decoder
// reads it but never rejects an image over it — some images in the
// wild carry other values there.
const bootSignature = 0xAA55

// BootBlock is the decoded BIOS Parameter Block together with the region
// offsets and cluster size derived from it. All multi-byte fields on disk
// are little-endian; BootBlock stores them already converted to native
// byte order.
type BootBlock struct {
	OEMName           [8]byte // 0x03 OEM identifier, e.g. "MSDOS5.0"
	BytesPerSector    uint16  // 0x0B Logical sector size in bytes
	SectorsPerCluster uint8   // 0x0D Sectors per allocation unit
	ReservedSectors   uint16  // 0x0E Sectors before the first FAT
	NumFATs           uint8   // 0x10 Number of FAT copies
	RootDirEntries    uint16  // 0x11 Root directory capacity, in 32-byte slots
	TotalSectors16    uint16  // 0x13 Total sector count, if it fits in 16 bits
	MediaDescriptor   uint8   // 0x15
	SectorsPerFAT     uint16  // 0x16 Sectors occupied by a single FAT copy
	SectorsPerTrack   uint16  // 0x18
	NumHeads          uint16  // 0x1A
	HiddenSectors     uint32  // 0x1C
	TotalSectors32    uint32  // 0x20 Total sector count when TotalSectors16 is 0
	VolumeLabel       [11]byte
	FileSystemType    [8]byte
	Signature         uint16 // 0x1FE, conventionally 0xAA55

	// Derived geometry, computed once at decode time.
	FATRegionStart     uint32
	RootDirRegionStart uint32
	DataRegionStart    uint32
	BytesPerCluster    uint32
}

// DecodeBootBlock parses the 512-byte FAT16 boot sector in data and derives
// the region offsets used by the rest of the package. data must be exactly
// BootSectorSize bytes; callers read it from offset 0 of the image.
func DecodeBootBlock(data []byte) (*BootBlock, error) {
	if len(data) != BootSectorSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedBootBlock, BootSectorSize, len(data))
	}

	bb := &BootBlock{}
	copy(bb.OEMName[:], data[0x03:0x0B])
	bb.BytesPerSector = binary.LittleEndian.Uint16(data[0x0B:])
	bb.SectorsPerCluster = data[0x0D]
	bb.ReservedSectors = binary.LittleEndian.Uint16(data[0x0E:])
	bb.NumFATs = data[0x10]
	bb.RootDirEntries = binary.LittleEndian.Uint16(data[0x11:])
	bb.TotalSectors16 = binary.LittleEndian.Uint16(data[0x13:])
	bb.MediaDescriptor = data[0x15]
	bb.SectorsPerFAT = binary.LittleEndian.Uint16(data[0x16:])
	bb.SectorsPerTrack = binary.LittleEndian.Uint16(data[0x18:])
	bb.NumHeads = binary.LittleEndian.Uint16(data[0x1A:])
	bb.HiddenSectors = binary.LittleEndian.Uint32(data[0x1C:])
	bb.TotalSectors32 = binary.LittleEndian.Uint32(data[0x20:])
	copy(bb.VolumeLabel[:], data[0x2B:0x36])
	copy(bb.FileSystemType[:], data[0x36:0x3E])
	bb.Signature = binary.LittleEndian.Uint16(data[0x1FE:])

	if bb.BytesPerSector == 0 {
		return nil, fmt.Errorf("%w: bytes-per-sector is zero", ErrMalformedBootBlock)
	}
	if bb.SectorsPerCluster == 0 {
		return nil, fmt.Errorf("%w: sectors-per-cluster is zero", ErrMalformedBootBlock)
	}
	if bb.NumFATs == 0 {
		return nil, fmt.Errorf("%w: number of FATs is zero", ErrMalformedBootBlock)
	}
	if bb.SectorsPerFAT == 0 {
		return nil, fmt.Errorf("%w: sectors-per-fat is zero", ErrMalformedBootBlock)
	}

	bb.FATRegionStart = uint32(bb.ReservedSectors) * uint32(bb.BytesPerSector)
	bb.RootDirRegionStart = bb.FATRegionStart + uint32(bb.NumFATs)*uint32(bb.SectorsPerFAT)*uint32(bb.BytesPerSector)
	bb.DataRegionStart = bb.RootDirRegionStart + uint32(bb.RootDirEntries)*direntSize
	bb.BytesPerCluster = uint32(bb.BytesPerSector) * uint32(bb.SectorsPerCluster)

	return bb, nil
}

// HasValidSignature reports whether the boot sector carries the classic
// 0xAA55 marker. DecodeBootBlock does not require it; callers that want
// to warn on an unusual image can check this explicitly.
func (bb *BootBlock) HasValidSignature() bool {
	return bb.Signature == bootSignature
}

// clusterDataOffset returns the physical byte offset of cluster c's first
// byte in the data region. c must be >= 2.
func (bb *BootBlock) clusterDataOffset(c uint16) uint32 {
	return bb.DataRegionStart + uint32(c-2)*bb.BytesPerCluster
}

// readBootBlock seeks src to offset 0, then reads and decodes the boot
// sector found there.
func readBootBlock(src ImageSource) (*BootBlock, error) {
	buf := make([]byte, BootSectorSize)
	if _, err := src.Seek(0, SeekBegin); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBootBlock, err)
	}

	n, err := readFull(src, buf)
	if err != nil || n != BootSectorSize {
		return nil, fmt.Errorf("%w: short read (%d/%d bytes)", ErrMalformedBootBlock, n, BootSectorSize)
	}
	return DecodeBootBlock(buf)
}

// readFull loops Read calls until buf is full or a zero-byte read (EOF per
// the ImageSource contract) or an error is hit.
func readFull(src ImageSource, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := src.Read(buf[total:])
		if n == 0 {
			return total, err
		}
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
