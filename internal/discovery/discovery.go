// Package discovery lists candidate feature files for extraction.
package discovery

import (
	"os"
	"path/filepath"
	"strings"
)

// Files returns the paths of the regular entries directly inside each
// directory. Directories are visited in the order given and their entries
// in lexical order. A directory that does not exist or cannot be read
// contributes nothing.
func Files(dirs ...string) []string {
	var paths []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths
}

// WithExt keeps the paths ending in ext. An empty ext keeps every path.
func WithExt(paths []string, ext string) []string {
	if ext == "" {
		return paths
	}
	var out []string
	for _, p := range paths {
		if strings.HasSuffix(p, ext) {
			out = append(out, p)
		}
	}
	return out
}
