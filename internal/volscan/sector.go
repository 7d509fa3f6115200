// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package volscan

// DefaultBlocksize is assumed when the signature scan has no other
// source of sector size (e.g. before a boot sector has been found).
const DefaultBlocksize = 512

// GuessBlockSize derives the device's underlying sector size from a set
// of candidate boot-sector signature offsets found by the windowed scan
// in window.go. Real boot sectors land on sector boundaries; halving the
// trial block size until every candidate shares one residue converges on
// the true alignment even when some candidates are coincidental 0xAA55
// matches inside file data rather than real boot sectors.
func GuessBlockSize(candidateOffsets []uint64) (uint64, uint64) {
	if len(candidateOffsets) == 0 {
		return DefaultBlocksize, 0
	}

	var blockSize uint64 = 128 * 512 // start with 64KB
	offset := candidateOffsets[0] % uint64(blockSize)

	for valid := false; !valid; {
		blockSize, offset, valid = EnforceAlignment(candidateOffsets, blockSize, offset)
	}
	return blockSize, offset
}

func EnforceAlignment(offsets []uint64, blockSize, offset uint64) (uint64, uint64, bool) {
	for _, off := range offsets {
		if off%uint64(blockSize) != offset && blockSize > DefaultBlocksize {
			return blockSize >> 1, off % uint64(blockSize>>1), false
		}
	}
	return blockSize, offset, true
}
