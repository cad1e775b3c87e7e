package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/rs/zerolog/log"
)

// ScanOptions tunes ScanExcludedFolders.
type ScanOptions struct {
	// Gitignore makes directories matched by <root>/.gitignore excluded outright.
	Gitignore bool
}

// MatchesAllowList reports whether name ends with any allow-listed extension,
// ignoring case. It is a plain suffix test: "foo.cs.txt" and "xtxt" both match "txt".
func MatchesAllowList(name string, allow []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range allow {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// ScanExcludedFolders returns every directory below root whose subtree holds no
// file matching the allow-list. Root itself is never a candidate. Directories
// come back in walk order (lexical, parents before children). Symlinked
// directories are followed and reported under their link path.
//
// The whole tree is re-read on every call; nothing is cached between runs.
func ScanExcludedFolders(root string, allow []string, opts ScanOptions) ([]string, error) {
	root = filepath.Clean(root)

	var ignoreMatcher gitignore.IgnoreMatcher
	if opts.Gitignore {
		ignorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(ignorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(ignorePath)
			if err != nil {
				return nil, fmt.Errorf("error parsing %s: %w", ignorePath, err)
			}
			ignoreMatcher = matcher
		}
	}

	var dirs []string
	relevant := make(map[string]bool)
	ignored := make(map[string]bool)

	err := walkTree(root, func(path, name string, isDir bool) error {
		if ignoreMatcher != nil && ignoreMatcher.Match(path, isDir) {
			if isDir {
				dirs = append(dirs, path)
				ignored[path] = true
				return fs.SkipDir
			}
			return nil
		}

		if isDir {
			dirs = append(dirs, path)
			return nil
		}

		if !MatchesAllowList(name, allow) {
			return nil
		}
		// Every ancestor up to root now has a file of interest below it.
		for dir := filepath.Dir(path); dir != root && !relevant[dir]; dir = filepath.Dir(dir) {
			relevant[dir] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}

	excluded := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if ignored[dir] || !relevant[dir] {
			excluded = append(excluded, dir)
		}
	}

	log.Debug().Str("root", root).Int("directories", len(dirs)).Int("excluded", len(excluded)).
		Msg("scanned asset folders")
	return excluded, nil
}

// CollectLibraries returns every .dll below root in walk order.
func CollectLibraries(root string) ([]string, error) {
	var libs []string
	err := walkTree(filepath.Clean(root), func(path, name string, isDir bool) error {
		if !isDir && strings.HasSuffix(strings.ToLower(name), ".dll") {
			libs = append(libs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error collecting libraries in %s: %w", root, err)
	}
	return libs, nil
}
