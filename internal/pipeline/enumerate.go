package pipeline

import (
	"os"
	"path/filepath"
	"strings"
)

// Enumerate lists the *.png files directly inside dir in lexical order.
// A missing or unreadable dir yields no files rather than an error.
func Enumerate(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || filepath.Ext(name) != SourceExt {
			continue
		}

		path := filepath.Join(dir, name)
		if entry.IsDir() {
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				continue
			}
		}
		paths = append(paths, path)
	}
	return paths
}
