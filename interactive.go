package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// findProjectCandidates lists every directory below root that holds an Assets folder.
// Project internals (Assets, Library, hidden dirs) are not descended.
func findProjectCandidates(root string) ([]string, error) {
	var candidates []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Unreadable corners are not worth failing the picker
		}
		if !d.IsDir() {
			return nil
		}
		if path != root {
			switch name := d.Name(); {
			case isHidden(name), name == assetsDirName, name == "Library", name == "node_modules":
				return fs.SkipDir
			}
		}
		if isProjectRoot(path) {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for projects: %w", err)
	}
	return candidates, nil
}

// runInteractiveFinder lets the user pick a project below the current directory.
// It returns "" when the user aborts.
func runInteractiveFinder() (string, error) {
	candidates, err := findProjectCandidates(".")
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w below the current directory", ErrNoProject)
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string {
			return candidates[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the project to sync. Enter to confirm."
			}
			path := candidates[i]
			descriptor := filepath.Join(path, filepath.Base(path)+descriptorExtension)
			if _, statErr := os.Stat(descriptor); statErr == nil {
				return fmt.Sprintf("Project: %s\nDescriptor: %s (exists)", path, descriptor)
			}
			return fmt.Sprintf("Project: %s\nDescriptor: not generated yet", path)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}
	return candidates[idx], nil
}
