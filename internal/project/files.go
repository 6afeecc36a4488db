package project

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the Sable source-file extension.
const SourceExt = ".sbl"

// SourceFiles walks dir and returns every source file under it, sorted
// for deterministic analysis order. Hidden directories and the build
// cache are skipped.
func SourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != dir && (strings.HasPrefix(name, ".") || name == "target") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(name) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// SourceFilesIn gathers sources across several directories, dropping
// duplicates while keeping the overall order sorted.
func SourceFilesIn(dirs []string) ([]string, error) {
	seen := make(map[string]struct{})
	var all []string
	for _, dir := range dirs {
		files, err := SourceFiles(dir)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			all = append(all, f)
		}
	}
	sort.Strings(all)
	return all, nil
}
