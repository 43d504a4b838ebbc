// Package pathing resolves user-supplied file paths for batch input and
// output. Input paths must point at an existing file; output paths must
// land in an existing directory so a failed run never creates stray
// directory trees.
package pathing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveInput expands a leading ~, makes the path absolute, and verifies
// the file exists and is not a directory.
func ResolveInput(path string) (string, error) {
	resolved, err := expand(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("input path %s: %w", resolved, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("input path %s is a directory, expected a file", resolved)
	}

	return resolved, nil
}

// ResolveOutput expands a leading ~, makes the path absolute, forces the
// given extension (e.g. ".csv"), and verifies the parent directory exists.
// The file itself may or may not exist; it will be overwritten.
func ResolveOutput(path, ext string) (string, error) {
	resolved, err := expand(path)
	if err != nil {
		return "", err
	}

	if !strings.EqualFold(filepath.Ext(resolved), ext) {
		resolved = strings.TrimSuffix(resolved, filepath.Ext(resolved)) + ext
	}

	dir := filepath.Dir(resolved)
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("output parent %s is not a directory", dir)
	}

	return resolved, nil
}

// expand turns a leading ~ into the user home directory and returns an
// absolute, cleaned path.
func expand(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}

	return abs, nil
}
