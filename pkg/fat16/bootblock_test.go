package fat16_test

import (
	"bytes"
	"testing"

	"github.com/fat16fs/fat16/pkg/fat16"
	"github.com/stretchr/testify/require"
)

func TestDecodeBootBlockGeometry(t *testing.T) {
	g := geometry{
		bytesPerSector:    512,
		sectorsPerCluster: 4,
		reservedSectors:   1,
		numFATs:           2,
		rootDirEntries:    512,
		sectorsPerFAT:     32,
	}
	sector := buildBootSector(g)

	bb, err := fat16.DecodeBootBlock(sector)
	require.NoError(t, err)

	require.EqualValues(t, 512, bb.FATRegionStart)
	require.EqualValues(t, 512+2*32*512, bb.RootDirRegionStart)
	require.EqualValues(t, 512+2*32*512+512*32, bb.DataRegionStart)
	require.EqualValues(t, 2048, bb.BytesPerCluster)
	require.True(t, bb.HasValidSignature())
}

func TestDecodeBootBlockRejectsShortBuffer(t *testing.T) {
	_, err := fat16.DecodeBootBlock(make([]byte, 100))
	require.ErrorIs(t, err, fat16.ErrMalformedBootBlock)
}

func TestDecodeBootBlockRejectsZeroGeometry(t *testing.T) {
	cases := []geometry{
		{bytesPerSector: 0, sectorsPerCluster: 1, reservedSectors: 1, numFATs: 1, sectorsPerFAT: 1},
		{bytesPerSector: 512, sectorsPerCluster: 0, reservedSectors: 1, numFATs: 1, sectorsPerFAT: 1},
		{bytesPerSector: 512, sectorsPerCluster: 1, reservedSectors: 1, numFATs: 0, sectorsPerFAT: 1},
		{bytesPerSector: 512, sectorsPerCluster: 1, reservedSectors: 1, numFATs: 1, sectorsPerFAT: 0},
	}
	for _, g := range cases {
		_, err := fat16.DecodeBootBlock(buildBootSector(g))
		require.ErrorIs(t, err, fat16.ErrMalformedBootBlock)
	}
}

func TestOpenReadsBootBlockFromStartOfSource(t *testing.T) {
	g := geometry{
		bytesPerSector:    512,
		sectorsPerCluster: 1,
		reservedSectors:   1,
		numFATs:           1,
		rootDirEntries:    16,
		sectorsPerFAT:     1,
	}
	raw := buildImage(g, nil, nil, 2)

	img, err := fat16.Open(bytes.NewReader(raw))
	require.NoError(t, err)
	require.EqualValues(t, 512, img.BootBlock().BytesPerCluster)
}
