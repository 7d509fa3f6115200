//go:build !linux
// +build !linux

package fatfs

import (
	"fmt"

	"github.com/fat16fs/fat16/pkg/fat16"
)

// Mount is unavailable outside Linux: this build only wires the
// kernel-facing side of the FUSE protocol for Linux.
func Mount(mountpoint string, img *fat16.Image) error {
	return fmt.Errorf("fatfs: FUSE mount is only supported on Linux")
}
