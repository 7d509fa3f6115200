package fat16

// ReadFromCluster translates a logical byte range within the cluster
// chain rooted at start into physical reads, following FAT links across
// cluster boundaries, and copies the result into dest.
//
// It returns the number of bytes actually copied, which is always <= len
// and equal to len only when the chain from start covers at least
// offset+len bytes. A chain that terminates early, or a start cluster
// that is itself terminal, yields a short (possibly zero) count — never
// an error.
func (img *Image) ReadFromCluster(dest []byte, offset uint32, start ClusterID, length uint32) uint32 {
	if length == 0 {
		return 0
	}
	if int(length) > len(dest) {
		length = uint32(len(dest))
	}

	bpc := img.boot.BytesPerCluster
	clusterSkip := offset / bpc
	clusterLocalOffset := offset % bpc

	cluster := start
	for i := uint32(0); i < clusterSkip; i++ {
		if cluster.IsEndOfChain() || cluster.IsBad() {
			return 0
		}
		cluster = successor(img.src, img.boot.FATRegionStart, cluster)
	}

	var copied uint32
	remaining := length
	firstIteration := true

	for steps := 0; remaining > 0 && !cluster.IsEndOfChain() && !cluster.IsBad(); steps++ {
		if steps >= maxChainSteps {
			break
		}

		var physOffset uint32
		var take uint32
		if firstIteration {
			physOffset = img.boot.clusterDataOffset(uint16(cluster)) + clusterLocalOffset
			take = bpc - clusterLocalOffset
		} else {
			physOffset = img.boot.clusterDataOffset(uint16(cluster))
			take = bpc
		}
		if take > remaining {
			take = remaining
		}

		if _, err := img.src.Seek(int64(physOffset), SeekBegin); err != nil {
			return copied
		}
		n, err := readFull(img.src, dest[copied:copied+take])
		copied += uint32(n)
		remaining -= uint32(n)

		if err != nil || uint32(n) != take {
			return copied
		}

		firstIteration = false
		cluster = successor(img.src, img.boot.FATRegionStart, cluster)
	}

	return copied
}
