package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	ignore "github.com/sabhiram/go-gitignore"
)

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// isMinified checks if a stylesheet is pre-minified. Minified output carries
// no authoring intent worth tokenizing.
func isMinified(path string) bool {
	return strings.HasSuffix(path, ".min.css")
}

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			// Gracefully degrade - no .gitignore is fine
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile determines if a file should be excluded from scanning.
//
// Two-layer filtering:
// 1. Pattern check (fast): skip *.min.css files
// 2. Gitignore check: skip gitignored files (only for relative paths)
func shouldSkipFile(path string) bool {
	if isMinified(path) {
		return true
	}

	// Only apply gitignore to relative paths (paths within the project).
	// Absolute paths (like /tmp/...) should not be affected by project gitignore.
	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// resolvePatterns returns the positional patterns, then the configured ones,
// then the default.
func resolvePatterns(args []string, configKey string) []string {
	if len(args) > 0 {
		return args
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return []string{"**/*.css"}
}

// expandGlobPatterns expands glob patterns to actual file paths
func expandGlobPatterns(patterns []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			// Deduplicate and only include files (not directories)
			if !seen[match] {
				info, err := os.Stat(match)
				if err == nil && !info.IsDir() {
					if !shouldSkipFile(match) {
						allFiles = append(allFiles, match)
						seen[match] = true
					}
				}
			}
		}
	}

	return allFiles, nil
}

// cachedFile is one cache entry, validated against mtime and size.
type cachedFile struct {
	mtime time.Time
	size  int64
	text  string
}

// sourceCache keeps recently read stylesheets so watch mode only re-reads
// changed files between runs.
type sourceCache struct {
	files *lru.Cache[string, cachedFile]
}

func newSourceCache() *sourceCache {
	cache, err := lru.New[string, cachedFile](256)
	if err != nil {
		panic(fmt.Sprintf("creating source cache: %v", err))
	}
	return &sourceCache{files: cache}
}

// read returns a file's text, from the cache when mtime and size still match.
func (c *sourceCache) read(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if entry, ok := c.files.Get(path); ok && entry.mtime.Equal(info.ModTime()) && entry.size == info.Size() {
		return entry.text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	c.files.Add(path, cachedFile{mtime: info.ModTime(), size: info.Size(), text: string(data)})
	return string(data), nil
}

// readSources concatenates the matched stylesheets into one working text.
func readSources(files []string, cache *sourceCache) (string, error) {
	var b strings.Builder
	for _, f := range files {
		text, err := cache.read(f)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", f, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
