//go:build linux
// +build linux

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
package fatfs

import (
	"context"
	"os"
	"sort"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/fat16fs/fat16/pkg/fat16"
)

// FS exposes a fat16.Image as a read-only FUSE filesystem, mirroring the
// image's actual directory tree rather than a flat file list.
type FS struct {
	img *fat16.Image
}

// New wraps img for mounting.
func New(img *fat16.Image) *FS {
	return &FS{img: img}
}

func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f, cursor: *f.img.RootDirEntry()}, nil
}

// Dir implements fs.Node, fs.HandleReadDirAller and fs.NodeStringLookuper
// over one directory in the image: the flat root region, or a
// subdirectory cluster chain.
type Dir struct {
	fs     *FS
	cursor fat16.Entry
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	cursor := d.cursor
	for d.fs.img.Next(&cursor) {
		if cursor.Name() != name {
			continue
		}
		if cursor.ShouldDescend() {
			var sub fat16.Entry
			if !d.fs.img.FirstEntryOf(&cursor, &sub) {
				return nil, fuse.ENOENT
			}
			return &Dir{fs: d.fs, cursor: sub}, nil
		}
		if cursor.IsDirectory() {
			break // "." / ".." pseudo-entry: not a lookup target
		}
		return &File{fs: d.fs, entry: cursor.Fundamental()}, nil
	}
	return nil, fuse.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	cursor := d.cursor

	var dirents []fuse.Dirent
	for d.fs.img.Next(&cursor) {
		switch cursor.Type() {
		case fat16.KindUnused, fat16.KindDeleted, fat16.KindDotEntry:
			continue
		}

		dt := fuse.DT_File
		if cursor.IsDirectory() {
			dt = fuse.DT_Dir
		}
		dirents = append(dirents, fuse.Dirent{Name: cursor.Name(), Type: dt})
	}

	sort.Slice(dirents, func(i, j int) bool { return dirents[i].Name < dirents[j].Name })
	for i := range dirents {
		dirents[i].Inode = uint64(i + 1)
	}
	return dirents, nil
}

// File implements fs.Node and fs.HandleReader over a single fundamental
// directory entry.
type File struct {
	fs    *FS
	entry fat16.FundamentalEntry
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = uint64(f.entry.FileSize)
	a.Mtime = time.Now()
	return nil
}

func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	size := uint32(req.Size)
	offset := uint32(req.Offset)

	if offset >= f.entry.FileSize {
		resp.Data = []byte{}
		return nil
	}
	if offset+size > f.entry.FileSize {
		size = f.entry.FileSize - offset
	}

	buf := make([]byte, size)
	n := f.fs.img.ReadFromCluster(buf, offset, fat16.ClusterID(f.entry.StartCluster), size)
	resp.Data = buf[:n]
	return nil
}
