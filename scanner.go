package atomcss

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultInclude matches the markup and source files class names are
// usually written in.
var DefaultInclude = []string{"**/*.{html,htm,templ,go,jsx,tsx,vue,svelte,astro}"}

// ExcludePrefix marks a pattern that removes files matched by the others.
const ExcludePrefix = "!"

// ScanStats counts what a walk found.
type ScanStats struct {
	FilesDiscovered int      // files matched by include patterns
	FilesScanned    int      // files left after exclusions
	FilesSkipped    int      // files removed by "!" patterns or .gitignore
	EmptyPatterns   []string // include patterns that matched nothing
}

// WalkFiles returns the regular files under root matched by patterns, in
// lexical order. Patterns are doublestar globs relative to root; patterns
// prefixed with "!" exclude files. Files ignored by root/.gitignore and
// anything inside .git are skipped.
func WalkFiles(root string, patterns []string) ([]string, error) {
	files, _, err := walkFiles(root, patterns)
	return files, err
}

func walkFiles(root string, patterns []string) ([]string, ScanStats, error) {
	var stats ScanStats
	if root == "" {
		root = "."
	}

	var includes, excludes []string
	for _, p := range patterns {
		pattern, exclude := strings.CutPrefix(p, ExcludePrefix)
		pattern = filepath.ToSlash(pattern)
		if !doublestar.ValidatePattern(pattern) {
			return nil, stats, fmt.Errorf("invalid pattern %q", p)
		}
		if exclude {
			excludes = append(excludes, pattern)
		} else {
			includes = append(includes, pattern)
		}
	}

	gi := loadGitIgnore(root)
	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var matched []string

	for _, pattern := range includes {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			stats.EmptyPatterns = append(stats.EmptyPatterns, pattern)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			stats.FilesDiscovered++

			if shouldSkipFile(m, excludes, gi) {
				stats.FilesSkipped++
				continue
			}
			matched = append(matched, m)
		}
	}

	sort.Strings(matched)
	files := make([]string, len(matched))
	for i, m := range matched {
		files[i] = filepath.Join(root, filepath.FromSlash(m))
	}
	stats.FilesScanned = len(files)
	return files, stats, nil
}

// loadGitIgnore compiles root/.gitignore. A missing file yields nil.
func loadGitIgnore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}

// shouldSkipFile applies exclusions to a slash separated path relative to
// the walk root.
func shouldSkipFile(path string, excludes []string, gi *ignore.GitIgnore) bool {
	if path == ".git" || strings.HasPrefix(path, ".git/") {
		return true
	}
	for _, ex := range excludes {
		if ok, _ := doublestar.Match(ex, path); ok {
			return true
		}
	}
	return gi != nil && gi.MatchesPath(path)
}

func readFile(path string) ([]byte, error) {
	// #nosec G304 - paths come from the walk over configured patterns
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return data, nil
}
