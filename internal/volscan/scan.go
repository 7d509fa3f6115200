package volscan

import (
	"fmt"
	"io"

	"github.com/fat16fs/fat16/pkg/fat16"
	"github.com/fat16fs/fat16/pkg/table"
)

// Volume is one FAT16 volume located on a device or disk image, together
// with the decoded boot block at its start.
type Volume struct {
	Offset int64
	Boot   *fat16.BootBlock

	// KnownOEMID is true when the boot sector's OEM identifier matched
	// one of fatOEMIDs. Volumes found through the MBR path always leave
	// this false, since the MBR already identifies them with certainty.
	KnownOEMID bool
}

// fatOEMIDs lists the OEM identifier strings real FAT16 formatters write
// at boot-sector offset 0x03. It is not exhaustive — an image stamped by
// an unlisted formatter is picked up by the geometry sanity check in
// isPlausibleBootSector instead.
var fatOEMIDs = [][]byte{
	[]byte("MSDOS5.0"),
	[]byte("MSWIN4.1"),
	[]byte("FAT16   "),
	[]byte("mkdosfs "),
	[]byte("FRDOS4.1"),
}

func newOEMIDTable() *table.PrefixTable[struct{}] {
	t := table.New[struct{}]()
	for _, id := range fatOEMIDs {
		t.Insert(id, struct{}{})
	}
	return t
}

// DiscoverVolumes locates every FAT16 volume on src. It first tries the
// MBR partition table at offset 0; if that yields nothing (no valid MBR,
// or an MBR with no FAT16 entries) it falls back to a sector-aligned
// signature scan across the whole image.
func DiscoverVolumes(src io.ReaderAt, size int64) ([]Volume, error) {
	var firstSector [512]byte
	if _, err := src.ReadAt(firstSector[:], 0); err != nil {
		return nil, fmt.Errorf("volscan: reading first sector: %w", err)
	}

	if mbr, err := ParseMBR(firstSector[:]); err == nil {
		found, _ := FindFAT16Partitions(mbr, DefaultBlocksize)
		volumes := make([]Volume, 0, len(found))
		for _, p := range found {
			var bootSector [512]byte
			if _, err := src.ReadAt(bootSector[:], p.ByteOffset); err != nil {
				continue
			}
			boot, err := fat16.DecodeBootBlock(bootSector[:])
			if err != nil {
				continue
			}
			volumes = append(volumes, Volume{Offset: p.ByteOffset, Boot: boot})
		}
		if len(volumes) > 0 {
			return volumes, nil
		}
	}

	return signatureScan(src, size)
}

// signatureScan is the fallback path for raw, unpartitioned dumps (a
// floppy image, an SD card formatted as a single FAT16 volume, or a disk
// whose partition table was zeroed). It windows over the image a sector
// at a time looking for a plausible boot sector: each window must pass
// isPlausibleBootSector and DecodeBootBlock. An OEM-ID prefix table then
// only sets KnownOEMID on the accepted candidates; it rules nothing out.
func signatureScan(src io.ReaderAt, size int64) ([]Volume, error) {
	const chunkSize = 64 * 1024
	cb, err := NewChunkBuffer(src, int(min(size, chunkSize)), chunkSize)
	if err != nil {
		return nil, fmt.Errorf("volscan: %w", err)
	}

	oemIDs := newOEMIDTable()
	candidates := map[int64]Volume{}
	var candidateOffsets []uint64

	for offset := int64(0); offset+512 <= size; offset += DefaultBlocksize {
		chunkIdx := int(offset) / chunkSize
		if err := cb.EnsureChunkIsBuffered(chunkIdx); err != nil {
			break
		}

		var sector [512]byte
		if _, err := src.ReadAt(sector[:], offset); err != nil {
			break
		}

		if !isPlausibleBootSector(sector[:]) {
			continue
		}

		boot, err := fat16.DecodeBootBlock(sector[:])
		if err != nil {
			continue
		}

		var knownOEMID bool
		oemIDs.Walk(sector[3:11], func(struct{}) bool {
			knownOEMID = true
			return true
		})

		candidates[offset] = Volume{Offset: offset, Boot: boot, KnownOEMID: knownOEMID}
		candidateOffsets = append(candidateOffsets, uint64(offset))
	}

	// Real boot sectors land on the device's true sector boundary; a
	// byte-string match inside ordinary file data that happens to pass
	// isPlausibleBootSector usually doesn't. GuessBlockSize converges on
	// the shared alignment and filters out the stragglers.
	blockSize, residue := GuessBlockSize(candidateOffsets)

	var volumes []Volume
	for _, offset := range candidateOffsets {
		if offset%blockSize != residue {
			continue
		}
		volumes = append(volumes, candidates[int64(offset)])
	}
	return volumes, nil
}

// isPlausibleBootSector applies the sanity checks a scanned window must
// pass before DecodeBootBlock is even attempted: the 0xAA55
// marker at its fixed offset, a non-zero sector size, and a
// sectors-per-cluster value that is a power of two no larger than 128
// (the largest value real FAT16 volumes use).
func isPlausibleBootSector(sector []byte) bool {
	if len(sector) < 512 {
		return false
	}
	if sector[0x1FE] != 0x55 || sector[0x1FF] != 0xAA {
		return false
	}
	bytesPerSector := uint16(sector[0x0B]) | uint16(sector[0x0C])<<8
	if bytesPerSector == 0 {
		return false
	}
	spc := sector[0x0D]
	return spc != 0 && spc&(spc-1) == 0 && spc <= 128
}
