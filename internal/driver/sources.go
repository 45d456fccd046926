package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension picked up when walking directories.
const SourceExt = ".cs"

// build output and VCS metadata never hold sources worth analyzing
var skipDirs = map[string]bool{
	".git":         true,
	".vs":          true,
	"bin":          true,
	"obj":          true,
	"node_modules": true,
}

// ListSources expands paths into a sorted list without duplicates.
// Directories are walked for *.cs files; files named explicitly are kept
// whatever their extension.
func ListSources(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		clean := filepath.Clean(p)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), SourceExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// baseDirFor picks the directory relative paths are shown against: the
// target itself for a single directory, its parent for a single file, the
// working directory otherwise.
func baseDirFor(paths []string) string {
	if len(paths) == 1 {
		if info, err := os.Stat(paths[0]); err == nil {
			if info.IsDir() {
				return paths[0]
			}
			return filepath.Dir(paths[0])
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
