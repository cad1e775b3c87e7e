package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// treeVisitFunc is called for every entry below the walk root. Returning
// fs.SkipDir for a directory keeps the walk out of it.
type treeVisitFunc func(path string, name string, isDir bool) error

// walkTree visits root's subtree in lexical pre-order like filepath.WalkDir,
// but descends into symlinked directories. Paths are reported as reached
// (through the link). Each real directory is entered once; a link back to a
// directory already on the walk is skipped, which ends cycles.
func walkTree(root string, visit treeVisitFunc) error {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return err
	}
	visited := map[string]bool{realRoot: true}
	return walkTreeDir(root, realRoot, visited, visit)
}

func walkTreeDir(dir, realDir string, visited map[string]bool, visit treeVisitFunc) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()
		realPath := filepath.Join(realDir, entry.Name())

		if entry.Type()&os.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr == nil && info.IsDir() {
				realPath, err = filepath.EvalSymlinks(path)
				if err != nil {
					return fmt.Errorf("error resolving link %s: %w", path, err)
				}
				isDir = true
			}
			// Dangling links and links to files count as files.
		}

		if isDir {
			if visited[realPath] {
				continue
			}
			visited[realPath] = true
		}

		if err := visit(path, entry.Name(), isDir); err != nil {
			if isDir && errors.Is(err, fs.SkipDir) {
				continue
			}
			return err
		}
		if isDir {
			if err := walkTreeDir(path, realPath, visited, visit); err != nil {
				return err
			}
		}
	}
	return nil
}
