package main

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/rs/zerolog/log"
)

// gitProjectRoot looks for a Unity project inside the git worktree containing start.
// Repositories often keep the project one level down (repo/Game/Assets), so the
// worktree root and its direct children are checked.
func gitProjectRoot(start string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", false
	}
	top := wt.Filesystem.Root()

	if isProjectRoot(top) {
		return top, true
	}

	entries, err := os.ReadDir(top)
	if err != nil {
		return "", false
	}
	var candidates []string
	for _, e := range entries {
		if !e.IsDir() || isHidden(e.Name()) {
			continue
		}
		dir := filepath.Join(top, e.Name())
		if isProjectRoot(dir) {
			candidates = append(candidates, dir)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.Strings(candidates)
	if len(candidates) > 1 {
		log.Warn().Strs("candidates", candidates).Str("using", candidates[0]).
			Msg("multiple projects in git worktree")
	}
	return candidates[0], true
}

// isHidden checks if a base name is hidden (starts with '.').
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return len(name) > 0 && name[0] == '.'
}
