package fat16_test

import (
	"bytes"
	"encoding/binary"

	"github.com/fat16fs/fat16/pkg/fat16"
)

// geometry bundles the handful of BPB fields the fixtures below vary.
type geometry struct {
	bytesPerSector    uint16
	sectorsPerCluster uint8
	reservedSectors   uint16
	numFATs           uint8
	rootDirEntries    uint16
	sectorsPerFAT     uint16
}

// buildBootSector renders a 512-byte boot sector from g, leaving every field
// the package doesn't care about (OEM name, geometry fields, volume label)
// zeroed.
func buildBootSector(g geometry) []byte {
	buf := make([]byte, fat16.BootSectorSize)
	binary.LittleEndian.PutUint16(buf[0x0B:], g.bytesPerSector)
	buf[0x0D] = g.sectorsPerCluster
	binary.LittleEndian.PutUint16(buf[0x0E:], g.reservedSectors)
	buf[0x10] = g.numFATs
	binary.LittleEndian.PutUint16(buf[0x11:], g.rootDirEntries)
	binary.LittleEndian.PutUint16(buf[0x16:], g.sectorsPerFAT)
	binary.LittleEndian.PutUint16(buf[0x1FE:], 0xAA55)
	return buf
}

// buildImage concatenates a boot sector built from g with a FAT region (fed
// from chain, a list of cluster->successor links starting at cluster 2), the
// root directory region (rootDir, padded/truncated to its fixed capacity)
// and a data region big enough to hold dataClusters contiguous clusters.
func buildImage(g geometry, chain []uint16, rootDir []byte, dataClusters int) []byte {
	var img bytes.Buffer
	img.Write(buildBootSector(g))

	fat := make([]byte, int(g.sectorsPerFAT)*int(g.bytesPerSector))
	for i, successor := range chain {
		off := (i + 2) * 2
		if off+2 <= len(fat) {
			binary.LittleEndian.PutUint16(fat[off:], successor)
		}
	}
	for f := 0; f < int(g.numFATs); f++ {
		img.Write(fat)
	}

	root := make([]byte, int(g.rootDirEntries)*32)
	copy(root, rootDir)
	img.Write(root)

	bpc := int(g.bytesPerSector) * int(g.sectorsPerCluster)
	img.Write(make([]byte, dataClusters*bpc))

	return img.Bytes()
}

// putFundamental writes a fundamental 8.3 record at buf[off:off+32].
func putFundamental(buf []byte, off int, name [8]byte, ext [3]byte, attr fat16.Attribute, startCluster uint16, size uint32) {
	copy(buf[off:off+8], name[:])
	copy(buf[off+8:off+11], ext[:])
	buf[off+11] = byte(attr)
	binary.LittleEndian.PutUint16(buf[off+26:], startCluster)
	binary.LittleEndian.PutUint32(buf[off+28:], size)
}

// putLFN writes one long-filename slot carrying up to 13 UTF-16 units of
// name, padded with 0x0000 then 0xFFFF per the usual on-disk convention.
func putLFN(buf []byte, off int, sequence uint8, units []uint16, checksum uint8) {
	buf[off] = sequence
	buf[off+11] = 0x0F // attrLFN
	buf[off+13] = checksum

	padded := make([]uint16, 13)
	for i := range padded {
		padded[i] = 0xFFFF
	}
	copy(padded, units)
	if len(units) < 13 {
		padded[len(units)] = 0x0000
	}

	offsets := [13]int{1, 3, 5, 7, 9, 14, 16, 18, 20, 22, 24, 28, 30}
	for i, u := range padded {
		binary.LittleEndian.PutUint16(buf[off+offsets[i]:], u)
	}
}

func name8(s string) [8]byte {
	var b [8]byte
	copy(b[:], s)
	for i := len(s); i < 8; i++ {
		b[i] = ' '
	}
	return b
}

func ext3(s string) [3]byte {
	var b [3]byte
	copy(b[:], s)
	for i := len(s); i < 3; i++ {
		b[i] = ' '
	}
	return b
}
