package source

import (
	"os"
	"path/filepath"
	"strings"
)

// ScanDir walks a portfolio directory and discovers every project document
// (.json, .yaml, .yml). Hidden directories are skipped. A missing directory
// yields no files and no error.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if df, ok := NewDiscoveredFile(path); ok {
			files = append(files, df)
		}
		return nil
	})

	return files, err
}
