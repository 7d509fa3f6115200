package fat16_test

import (
	"bytes"
	"testing"

	"github.com/fat16fs/fat16/pkg/fat16"
	"github.com/stretchr/testify/require"
)

// TestNextPairsLongNameWithFundamentalEntry covers spec scenario S4: two
// LFN slots (sequence 2 then 1, stored on disk in that descending order)
// immediately followed by their 8.3 record must reassemble to one name.
func TestNextPairsLongNameWithFundamentalEntry(t *testing.T) {
	g := geometry{bytesPerSector: 512, sectorsPerCluster: 1, reservedSectors: 1, numFATs: 1, rootDirEntries: 16, sectorsPerFAT: 1}

	root := make([]byte, 16*32)
	// "readme-long-name.txt" split across two 13-unit LFN slots.
	name := []uint16{}
	for _, r := range "readme-long-name.txt" {
		name = append(name, uint16(r))
	}
	putLFN(root, 0, 0x42, name[13:], 0xAB)
	putLFN(root, 32, 0x01, name[:13], 0xAB)
	putFundamental(root, 64, name8("README~1"), ext3("TXT"), 0, 5, 42)

	img, _ := openImage(t, g, nil, root, 4)

	e := img.RootDirEntry()
	require.True(t, img.Next(e))
	require.Equal(t, "readme-long-name.txt", e.Name())
	require.EqualValues(t, 42, e.Size())
}

// TestNextFallsBackToShortNameWithoutLFN covers spec scenario S5: a plain
// 8.3 record with no preceding LFN slots decodes via the short-name path.
func TestNextFallsBackToShortNameWithoutLFN(t *testing.T) {
	g := geometry{bytesPerSector: 512, sectorsPerCluster: 1, reservedSectors: 1, numFATs: 1, rootDirEntries: 16, sectorsPerFAT: 1}

	root := make([]byte, 16*32)
	putFundamental(root, 0, name8("HELLO"), ext3("TXT"), 0, 5, 11)

	img, _ := openImage(t, g, nil, root, 4)

	e := img.RootDirEntry()
	require.True(t, img.Next(e))
	require.Equal(t, "HELLOTXT", e.Name())
}

func TestNextStopsAtUnusedMarker(t *testing.T) {
	g := geometry{bytesPerSector: 512, sectorsPerCluster: 1, reservedSectors: 1, numFATs: 1, rootDirEntries: 16, sectorsPerFAT: 1}

	root := make([]byte, 16*32)
	putFundamental(root, 0, name8("ONE"), ext3("TXT"), 0, 5, 1)
	// slot 1 left entirely zeroed: first byte 0x00 ends the directory.

	img, _ := openImage(t, g, nil, root, 4)

	e := img.RootDirEntry()
	require.True(t, img.Next(e))
	require.Equal(t, "ONETXT", e.Name())
	require.False(t, img.Next(e))
}

func TestNextStopsAtRootDirCapacity(t *testing.T) {
	g := geometry{bytesPerSector: 512, sectorsPerCluster: 1, reservedSectors: 1, numFATs: 1, rootDirEntries: 2, sectorsPerFAT: 1}

	root := make([]byte, 2*32)
	putFundamental(root, 0, name8("ONE"), ext3("TXT"), 0, 5, 1)
	putFundamental(root, 32, name8("TWO"), ext3("TXT"), 0, 5, 1)

	img, _ := openImage(t, g, nil, root, 4)

	e := img.RootDirEntry()
	require.True(t, img.Next(e))
	require.True(t, img.Next(e))
	require.False(t, img.Next(e))
}

func TestShouldDescendExcludesPseudoAndMarkedEntries(t *testing.T) {
	g := geometry{bytesPerSector: 512, sectorsPerCluster: 1, reservedSectors: 1, numFATs: 1, rootDirEntries: 16, sectorsPerFAT: 1}

	root := make([]byte, 16*32)
	dotName := [8]byte{0x2E, ' ', ' ', ' ', ' ', ' ', ' ', ' '}
	putFundamental(root, 0, dotName, ext3(""), fat16.AttrDirectory, 0, 0)
	putFundamental(root, 32, name8("SUBDIR"), ext3(""), fat16.AttrDirectory, 5, 0)

	img, _ := openImage(t, g, nil, root, 4)

	e := img.RootDirEntry()
	require.True(t, img.Next(e))
	require.False(t, e.ShouldDescend(), "dot entry must not be descended into")

	require.True(t, img.Next(e))
	require.True(t, e.ShouldDescend())
}

func TestFirstEntryOfRejectsNonDirectory(t *testing.T) {
	g := geometry{bytesPerSector: 512, sectorsPerCluster: 1, reservedSectors: 1, numFATs: 1, rootDirEntries: 16, sectorsPerFAT: 1}

	root := make([]byte, 16*32)
	putFundamental(root, 0, name8("FILE"), ext3("TXT"), 0, 5, 1)

	img, _ := openImage(t, g, nil, root, 4)

	e := img.RootDirEntry()
	require.True(t, img.Next(e))

	var out fat16.Entry
	require.False(t, img.FirstEntryOf(e, &out))
}

func TestDescendIntoSubdirectoryLists(t *testing.T) {
	g := geometry{bytesPerSector: 512, sectorsPerCluster: 1, reservedSectors: 1, numFATs: 1, rootDirEntries: 16, sectorsPerFAT: 1}

	chain := make([]uint16, 2)
	chain[3-2] = 0xFFFF // cluster 3 holds the subdirectory, one cluster long

	root := make([]byte, 16*32)
	putFundamental(root, 0, name8("SUBDIR"), ext3(""), fat16.AttrDirectory, 3, 0)

	raw := buildImage(g, chain, root, 2)

	bpc := int(g.bytesPerSector) * int(g.sectorsPerCluster)
	dataStart := len(raw) - 2*bpc
	// cluster 2 is the first data cluster; cluster 3 (the subdirectory) is
	// the second.
	sub := raw[dataStart+bpc : dataStart+2*bpc]
	putFundamental(sub, 0, name8("CHILD"), ext3("TXT"), 0, 0, 7)

	img, err := fat16.Open(bytes.NewReader(raw))
	require.NoError(t, err)

	parent := img.RootDirEntry()
	require.True(t, img.Next(parent))
	require.True(t, parent.ShouldDescend())

	var child fat16.Entry
	require.True(t, img.FirstEntryOf(parent, &child))
	require.True(t, img.Next(&child))
	require.Equal(t, "CHILDTXT", child.Name())
	require.False(t, child.IsRoot())
}
