package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SpecExt is the extension of spec files picked up from directories and globs.
const SpecExt = ".json"

// Discover expands patterns into spec file paths.
//
// A pattern may be a file (taken as is), a directory (every *.json file
// below it) or a glob with doublestar ** support (matching *.json files
// only). Results keep pattern order, each expansion is sorted, and
// duplicates are dropped.
func Discover(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := expand(pattern)
		if err != nil {
			return nil, fmt.Errorf("batch: resolve pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

func expand(pattern string) ([]string, error) {
	if containsGlob(pattern) {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}
		var specs []string
		for _, m := range matches {
			if isSpecFile(m) {
				specs = append(specs, m)
			}
		}
		sort.Strings(specs)
		return specs, nil
	}

	info, err := os.Stat(pattern)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{pattern}, nil
	}

	var specs []string
	err = filepath.WalkDir(pattern, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isSpecFile(path) {
			specs = append(specs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(specs)
	return specs, nil
}

// isSpecFile reports whether path has the spec extension. Companion
// .jsonld files do not qualify.
func isSpecFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SpecExt)
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
