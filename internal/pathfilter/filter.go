// Package pathfilter selects model and whitelist files with doublestar
// glob patterns.
package pathfilter

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter holds include and exclude patterns. A file is selected when it
// matches at least one include pattern and no exclude pattern.
type Filter struct {
	include []string
	exclude []string
}

// New creates a Filter from include and exclude patterns
func New(include, exclude []string) *Filter {
	return &Filter{
		include: include,
		exclude: exclude,
	}
}

// ModelFilter returns the default filter for model files
func ModelFilter() *Filter {
	return New(
		[]string{"**/*.graph.hcl"},
		[]string{".git/**"},
	)
}

// WhitelistFilter returns the default filter for discovering whitelist
// files under the model directory
func WhitelistFilter() *Filter {
	return New(
		[]string{"**/*.whitelist"},
		[]string{".git/**"},
	)
}

// FilterFiles returns the files under dir selected by the filter, as
// slash-separated paths relative to dir. Files matched by several include
// patterns appear once.
func (f *Filter) FilterFiles(dir string) ([]string, error) {
	fsys := os.DirFS(dir)
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range f.include {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				result = append(result, match)
			}
		}
	}

	if len(f.exclude) == 0 {
		return result, nil
	}

	filtered := make([]string, 0, len(result))
	for _, path := range result {
		excluded, err := f.matchesAny(f.exclude, path)
		if err != nil {
			return nil, err
		}
		if !excluded {
			filtered = append(filtered, path)
		}
	}
	return filtered, nil
}

// FilterFilesAbs returns the selected files as absolute paths
func (f *Filter) FilterFilesAbs(dir string) ([]string, error) {
	relPaths, err := f.FilterFiles(dir)
	if err != nil {
		return nil, err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	absPaths := make([]string, len(relPaths))
	for i, relPath := range relPaths {
		absPaths[i] = filepath.Join(absDir, relPath)
	}
	return absPaths, nil
}

// MatchFile reports whether a single slash-separated relative path is
// selected by the filter
func (f *Filter) MatchFile(path string) (bool, error) {
	included, err := f.matchesAny(f.include, path)
	if err != nil || !included {
		return false, err
	}

	excluded, err := f.matchesAny(f.exclude, path)
	if err != nil {
		return false, err
	}
	return !excluded, nil
}

func (f *Filter) matchesAny(patterns []string, path string) (bool, error) {
	for _, pattern := range patterns {
		match, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, err
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// WalkDir walks dir applying the filter and calls fn for each selected
// file. Directories covered by a "dir/**" exclude pattern are skipped
// without descending.
func (f *Filter) WalkDir(dir string, fn func(path string, d fs.DirEntry) error) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		relPath = strings.ReplaceAll(relPath, string(filepath.Separator), "/")

		if d.IsDir() {
			for _, pattern := range f.exclude {
				dirPattern := strings.TrimSuffix(pattern, "/**")
				if relPath == dirPattern || strings.HasPrefix(relPath, dirPattern+"/") {
					return filepath.SkipDir
				}
			}
			return nil
		}

		match, err := f.MatchFile(relPath)
		if err != nil {
			return err
		}
		if match {
			return fn(path, d)
		}
		return nil
	})
}
