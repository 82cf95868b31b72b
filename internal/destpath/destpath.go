// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package destpath resolves the output path of a conversion run.
//
// Relative destinations resolve against the directory that holds the running
// executable, not the caller's working directory. Running
// "/opt/tools/agora-convert URL out/today.log" from any directory writes to
// /opt/tools/out/today.log.
package destpath

import (
	"fmt"
	"os"
	"path/filepath"
)

// executable is swapped in tests.
var executable = os.Executable

// Resolve returns the absolute destination for path and creates its parent
// directories. Relative paths resolve against the executable's directory.
func Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return ResolveFrom("", path)
	}
	base, err := ExecutableDir()
	if err != nil {
		return "", err
	}
	return ResolveFrom(base, path)
}

// ResolveFrom is Resolve with an explicit base directory for relative paths.
// An empty base falls back to the executable's directory.
func ResolveFrom(base, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty destination path")
	}

	abs := path
	if !filepath.IsAbs(abs) {
		if base == "" {
			dir, err := ExecutableDir()
			if err != nil {
				return "", err
			}
			base = dir
		}
		abs = filepath.Join(base, path)
	}
	abs = filepath.Clean(abs)

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return abs, nil
}

// ExecutableDir returns the directory containing the running executable,
// with symlinks evaluated.
func ExecutableDir() (string, error) {
	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
