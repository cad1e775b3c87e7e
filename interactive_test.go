package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProjectCandidates(t *testing.T) {
	base := t.TempDir()
	makeTree(t, base,
		"Alpha/Assets/A.cs",
		"Alpha/Assets/Nested/Assets/", // inside a project's assets: not a project
		"Alpha/Library/Fake/Assets/",
		"work/Beta/Assets/",
		".hidden/Gamma/Assets/",
		"notes/readme.md",
	)

	got, err := findProjectCandidates(base)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(base, "Alpha"),
		filepath.Join(base, "work", "Beta"),
	}, got)
}
