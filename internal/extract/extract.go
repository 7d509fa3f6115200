// Package extract walks a fat16.Image's directory tree and writes its
// files to the host filesystem.
package extract

import (
	"fmt"
	"path/filepath"

	"github.com/fat16fs/fat16/pkg/fat16"
	"github.com/fat16fs/fat16/pkg/pbar"
	ioutil "github.com/fat16fs/fat16/pkg/util/io"
	osutil "github.com/fat16fs/fat16/pkg/util/os"
)

// Stats summarizes one extraction run.
type Stats struct {
	FilesWritten int
	DirsCreated  int
	BytesWritten int64
}

// Options configures a Tree run.
type Options struct {
	// ShowProgress renders a progress bar to stdout via pkg/pbar while
	// extracting.
	ShowProgress bool
}

// Tree recursively extracts every regular file below root (typically
// img.RootDirEntry()) into destDir, recreating the image's directory
// structure on the host filesystem. It descends into subdirectories
// exactly where Entry.ShouldDescend reports true, which excludes "."
// and ".." pseudo-entries and unused/deleted slots.
func Tree(img *fat16.Image, root *fat16.Entry, destDir string, opts Options) (Stats, error) {
	if _, err := osutil.EnsureDir(destDir, false); err != nil {
		return Stats{}, err
	}

	var bar *pbar.ProgressBarState
	if opts.ShowProgress {
		bar = pbar.NewProgressBarState(totalSize(img, root))
	}

	stats := Stats{}
	err := walk(img, root, destDir, &stats, bar)
	if bar != nil {
		bar.Finish()
	}
	return stats, err
}

func totalSize(img *fat16.Image, dir *fat16.Entry) int64 {
	var total int64
	cursor := *dir
	for img.Next(&cursor) {
		if cursor.ShouldDescend() {
			var sub fat16.Entry
			if img.FirstEntryOf(&cursor, &sub) {
				total += totalSize(img, &sub)
			}
		} else if !cursor.IsDirectory() {
			total += int64(cursor.Size())
		}
	}
	return total
}

func walk(img *fat16.Image, dir *fat16.Entry, destDir string, stats *Stats, bar *pbar.ProgressBarState) error {
	cursor := *dir

	for img.Next(&cursor) {
		name := cursor.Name()
		if name == "" {
			continue
		}

		if cursor.ShouldDescend() {
			var sub fat16.Entry
			if !img.FirstEntryOf(&cursor, &sub) {
				continue
			}
			childDir := filepath.Join(destDir, name)
			if _, err := osutil.EnsureDir(childDir, false); err != nil {
				return fmt.Errorf("extract: %w", err)
			}
			stats.DirsCreated++
			if err := walk(img, &sub, childDir, stats, bar); err != nil {
				return err
			}
			continue
		}

		if cursor.IsDirectory() {
			continue // "." / ".." or an otherwise non-descendable directory entry
		}

		if err := writeFile(img, &cursor, filepath.Join(destDir, name)); err != nil {
			return fmt.Errorf("extract %q: %w", name, err)
		}
		stats.FilesWritten++
		stats.BytesWritten += int64(cursor.Size())

		if bar != nil {
			bar.ProcessedBytes += int64(cursor.Size())
			bar.FilesFound = stats.FilesWritten
			bar.Render(false)
		}
	}
	return nil
}

func writeFile(img *fat16.Image, entry *fat16.Entry, destPath string) error {
	return ioutil.CopyFile(destPath, img.OpenFile(entry))
}
