package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Ignore lists glob patterns (doublestar syntax) matched against entry names
	Ignore []string
}

// FileEntry is a regular file found in the scanned directory
type FileEntry struct {
	Name string // Base name inside the directory
	Size int64  // Size in bytes
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains every accepted file, sorted by name
	Files []FileEntry
	// Ignored contains the names dropped by an ignore pattern
	Ignored []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// ScanDirectory lists the regular files directly inside dir
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	result := &ScanResult{
		Files:   make([]FileEntry, 0, len(entries)),
		Ignored: make([]string, 0),
		Errors:  make([]error, 0),
	}

	for _, entry := range entries {
		name := entry.Name()

		if isIgnored(name, opts.Ignore) {
			result.Ignored = append(result.Ignored, name)
			continue
		}

		// os.Stat follows symlinks
		fi, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", name, err))
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}

		result.Files = append(result.Files, FileEntry{Name: name, Size: fi.Size()})
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Name < result.Files[j].Name
	})

	return result, nil
}

// isIgnored reports whether name matches any of the patterns
func isIgnored(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
