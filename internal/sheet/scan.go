package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SupportedExtensions lists the sheet formats ReadFile understands
var SupportedExtensions = []string{".xlsx", ".csv"}

// ScanResult contains the results of an input directory scan
type ScanResult struct {
	// Files contains the absolute paths of readable sheets, sorted by name
	Files []string
	// Skipped contains regular files that were ignored because of their type
	Skipped []string
}

// ScanInputDir lists the sheets in dir. Subdirectories, hidden files and
// office lock files (~$name.xlsx) are ignored.
func ScanInputDir(dir string) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path is not a directory: %s", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	result := &ScanResult{Files: make([]string, 0), Skipped: make([]string, 0)}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
			continue
		}

		absPath, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", name, err)
		}

		if IsSupported(name) {
			result.Files = append(result.Files, absPath)
		} else {
			result.Skipped = append(result.Skipped, absPath)
		}
	}

	sort.Strings(result.Files)
	sort.Strings(result.Skipped)
	return result, nil
}

// IsSupported reports whether name has a readable sheet extension
func IsSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
