package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/anstrom/portmerge/internal/errors"
)

// DefaultScanPattern matches nmap XML output files.
const DefaultScanPattern = "*.xml"

// DiscoverDocuments lists the regular files directly under dir whose names
// match pattern, ignoring case, in lexical order. Paths in exclude are left
// out, so a merged document written into dir is not merged again.
func DiscoverDocuments(dir, pattern string, exclude ...string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultScanPattern
	}
	pattern = strings.ToLower(pattern)
	if _, err := filepath.Match(pattern, "probe"); err != nil {
		return nil, errors.ErrConfigInvalid("input.scan_pattern", pattern)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapSourceError(errors.CodeSourceMissing, "Scan directory is not readable", dir, err)
	}

	skip := make(map[string]struct{}, len(exclude))
	for _, path := range exclude {
		if path == "" {
			continue
		}
		skip[absPath(path)] = struct{}{}
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(pattern, strings.ToLower(entry.Name())); !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, excluded := skip[absPath(path)]; excluded {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
