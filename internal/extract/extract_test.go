package extract_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fat16fs/fat16/internal/extract"
	"github.com/fat16fs/fat16/pkg/fat16"
)

// geometry mirrors the handful of BPB fields pkg/fat16's own fixtures vary;
// kept local since pkg/fat16's fixture helpers are unexported.
type geometry struct {
	bytesPerSector    uint16
	sectorsPerCluster uint8
	reservedSectors   uint16
	numFATs           uint8
	rootDirEntries    uint16
	sectorsPerFAT     uint16
}

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

func buildImage(g geometry, chain []uint16, rootDir []byte, dataClusters int, fill byte) []byte {
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
	data := make([]byte, dataClusters*bpc)
	for i := range data {
		data[i] = fill
	}
	img.Write(data)

	return img.Bytes()
}

func putFundamental(buf []byte, off int, name [8]byte, ext [3]byte, attr fat16.Attribute, startCluster uint16, size uint32) {
	copy(buf[off:off+8], name[:])
	copy(buf[off+8:off+11], ext[:])
	buf[off+11] = byte(attr)
	binary.LittleEndian.PutUint16(buf[off+26:], startCluster)
	binary.LittleEndian.PutUint32(buf[off+28:], size)
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

// buildSampleImage lays out:
//
//	/ONE.TXT      (cluster 2, 5 bytes, fill 'A')
//	/SUBDIR/      (cluster 3, directory)
//	  TWO.TXT     (cluster 4, 3 bytes, fill 'B')
func buildSampleImage(t *testing.T) *fat16.Image {
	t.Helper()
	g := geometry{bytesPerSector: 512, sectorsPerCluster: 1, reservedSectors: 1, numFATs: 1, rootDirEntries: 16, sectorsPerFAT: 1}

	root := make([]byte, 16*32)
	putFundamental(root, 0, name8("ONE"), ext3("TXT"), 0, 2, 5)
	putFundamental(root, 32, name8("SUBDIR"), ext3(""), fat16.AttrDirectory, 3, 0)

	sub := make([]byte, 512)
	putFundamental(sub, 0, name8("."), ext3(""), fat16.AttrDirectory, 3, 0)
	putFundamental(sub, 32, name8(".."), ext3(""), fat16.AttrDirectory, 0, 0)
	putFundamental(sub, 64, name8("TWO"), ext3("TXT"), 0, 4, 3)

	raw := buildImage(g, nil, root, 3, 'A')
	// Overwrite the subdirectory's cluster (3) and file cluster (4) content.
	bpc := 512
	dataStart := len(raw) - 3*bpc
	copy(raw[dataStart+1*bpc:], sub)
	for i := 0; i < 3; i++ {
		raw[dataStart+2*bpc+i] = 'B'
	}

	img, err := fat16.Open(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestTreeExtractsFilesAndSubdirectories(t *testing.T) {
	img := buildSampleImage(t)
	destDir := t.TempDir()

	stats, err := extract.Tree(img, img.RootDirEntry(), destDir, extract.Options{})
	require.NoError(t, err)

	require.Equal(t, 2, stats.FilesWritten)
	require.Equal(t, 1, stats.DirsCreated)
	require.EqualValues(t, 8, stats.BytesWritten)

	one, err := os.ReadFile(filepath.Join(destDir, "ONETXT"))
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{'A'}, 5), one)

	two, err := os.ReadFile(filepath.Join(destDir, "SUBDIR", "TWOTXT"))
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{'B'}, 3), two)
}

func TestTreeSkipsDotAndDotDot(t *testing.T) {
	img := buildSampleImage(t)
	destDir := t.TempDir()

	_, err := extract.Tree(img, img.RootDirEntry(), destDir, extract.Options{})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(destDir, "SUBDIR"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "TWOTXT", entries[0].Name())
}

func TestTreeFailsWhenDestinationParentIsMissing(t *testing.T) {
	img := buildSampleImage(t)

	destDir := filepath.Join(t.TempDir(), "missing-parent", "dest")
	_, err := extract.Tree(img, img.RootDirEntry(), destDir, extract.Options{})
	require.Error(t, err)
}
