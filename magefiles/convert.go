//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts the log at url into dest.
// A relative dest resolves against bin/, where the binary lives.
func Convert(url, dest string) error {
	mg.Deps(Build)
	fmt.Printf("[convert] %s -> %s\n", url, dest)
	return sh.RunV(filepath.Join(binDir, binName), url, dest)
}
