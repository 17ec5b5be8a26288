package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// GatherFiles walks root and returns the regular files with one of the given
// extensions, as slash-separated paths relative to root. Hidden files and
// directories are skipped. Extensions are compared case-insensitively and
// include the dot.
func GatherFiles(root string, extensions []string) ([]string, error) {
	hasExtension := func(name string) bool {
		ext := strings.ToLower(filepath.Ext(name))
		for _, e := range extensions {
			if strings.ToLower(e) == ext {
				return true
			}
		}
		return false
	}

	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !fi.IsDir() {
		return nil, fmt.Errorf("path '%s' is not a directory", root)
	}

	var paths []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !hasExtension(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path: %w", err)
		}

		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("could not gather files: %w", err)
	}

	return paths, nil
}

// Exists reports whether path names a regular file.
func Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
