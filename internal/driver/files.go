package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// StdinPath names standard input in a path list.
const StdinPath = "-"

// ExpandPaths turns the command-line paths into a sorted file list.
// Directories are walked for files with one of exts; files named
// explicitly are kept whatever their extension, and a missing file is
// kept too so that loading reports it.
func ExpandPaths(paths []string, exts []string) ([]string, error) {
	seen := make(map[string]struct{}, len(paths))
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, p := range paths {
		if p == StdinPath {
			add(p)
			continue
		}
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			add(filepath.Clean(p))
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if hasExt(path, exts) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Сортируем для детерминированного порядка, stdin остаётся первым
	sort.SliceStable(files, func(i, j int) bool {
		if files[i] == StdinPath || files[j] == StdinPath {
			return files[i] == StdinPath && files[j] != StdinPath
		}
		return files[i] < files[j]
	})
	return files, nil
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext != "" && slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}
