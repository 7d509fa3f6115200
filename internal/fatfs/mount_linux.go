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
	"log"
	"os"
	"os/signal"
	"syscall"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"

	"github.com/fat16fs/fat16/pkg/fat16"
	osutil "github.com/fat16fs/fat16/pkg/util/os"
)

// Mount serves img as a read-only FUSE filesystem at mountpoint until an
// interrupt or termination signal is received.
func Mount(mountpoint string, img *fat16.Image) error {
	created, err := osutil.EnsureDir(mountpoint, true)
	if err != nil {
		return err
	}
	if created {
		defer os.Remove(mountpoint)
	}

	c, err := fuse.Mount(mountpoint)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := New(img)

	go func() {
		if err := fusefs.New(c, nil).Serve(srv); err != nil {
			log.Fatalf("fatfs: serve error: %v", err)
		}
	}()
	return waitForUmount(mountpoint)
}

func waitForUmount(mountpoint string) error {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	log.Println("fatfs: waiting for termination signal...")

	const maxUnmountRetries = 3
	unmountAttempts := 0
	for sig := range sigc {
		log.Printf("fatfs: signal received: %v.", sig)

		if unmountAttempts >= maxUnmountRetries {
			log.Fatalf("fatfs: maximum unmount retries (%d) exceeded for %s", maxUnmountRetries, mountpoint)
		}

		if err := fuse.Unmount(mountpoint); err == nil {
			log.Println("fatfs: unmounted successfully, exiting.")
			return nil
		} else {
			unmountAttempts++
			log.Printf("fatfs: unmount failed: %v. retries remaining: %d", err, maxUnmountRetries-unmountAttempts)
		}
	}
	return nil
}
