package buildpipeline

import (
	"path/filepath"
	"strings"
)

// displayName makes file relative to baseDir when it lies under it and
// uses forward slashes, so progress lines look the same on every OS.
func displayName(file, baseDir string) string {
	path := filepath.Clean(file)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// progressNames maps the driver's file keys to display names, keeping
// the order of files.
func progressNames(files []string, baseDir string) (names []string, byKey map[string]string) {
	names = make([]string, 0, len(files))
	byKey = make(map[string]string, len(files))
	for _, file := range files {
		if file == "" {
			continue
		}
		name := displayName(file, baseDir)
		byKey[driverKey(file)] = name
		names = append(names, name)
	}
	return names, byKey
}

// driverKey is how driver results name a file.
func driverKey(file string) string {
	return filepath.ToSlash(filepath.Clean(file))
}

// DisplayNames returns the names Compile uses in progress events for files.
func DisplayNames(files []string, baseDir string) []string {
	names, _ := progressNames(files, baseDir)
	return names
}
