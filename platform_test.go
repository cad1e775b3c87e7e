package main

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFor(t *testing.T) {
	win := profileFor("windows")
	assert.Equal(t, SeparatorBackslash, win.Separator)
	assert.True(t, win.RestoreFocus)
	assert.True(t, win.AutoOpen)
	assert.Equal(t, `C:\Program Files\Sublime Text 3\sublime_text.exe`, win.EditorPath)

	mac := profileFor("darwin")
	assert.Equal(t, SeparatorSlash, mac.Separator)
	assert.False(t, mac.RestoreFocus)
	assert.Equal(t, "/Applications/Sublime Text.app/Contents/SharedSupport/bin/subl", mac.EditorPath)

	linux := profileFor("linux")
	assert.Equal(t, SeparatorSlash, linux.Separator)
	assert.False(t, linux.RestoreFocus)
}

func TestResolvePaths_Slash(t *testing.T) {
	root := filepath.Join(t.TempDir(), "MyGame")
	paths := ResolvePaths(root+string(filepath.Separator), "/Applications/Unity/Unity.app/Contents", profileFor("darwin"))

	assert.Equal(t, root, paths.ProjectRoot)
	assert.Equal(t, filepath.Join(root, "Assets"), paths.AssetRoot)
	assert.Equal(t, "MyGame", paths.ProjectName)
	assert.Equal(t, filepath.Join(root, "MyGame.sublime-project"), paths.DescriptorPath)
	assert.Equal(t, "/Applications/Unity/Unity.app/Contents/Frameworks/Managed/", paths.ManagedDir)
	assert.Equal(t, filepath.Join(root, "Assets")+"/../Library/ScriptAssemblies/", paths.ScriptAssemblies)
}

func TestResolvePaths_Backslash(t *testing.T) {
	paths := ResolvePaths(`C:\Games\Proj`, `C:/Program Files/Unity/Editor/Data`, profileFor("windows"))

	assert.Equal(t, `C:\Program Files\Unity\Editor\Data\Managed\`, paths.ManagedDir)
	assert.Equal(t, `C:\Games\Proj\Assets\..\Library\ScriptAssemblies\`, paths.ScriptAssemblies)
}

func TestFindProjectRoot_WalksUpward(t *testing.T) {
	base := t.TempDir()
	makeTree(t, base, "Game/Assets/Scripts/Enemies/A.cs")

	root, err := FindProjectRoot(filepath.Join(base, "Game", "Assets", "Scripts", "Enemies"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "Game"), root)

	root, err = FindProjectRoot(filepath.Join(base, "Game"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "Game"), root)
}

func TestFindProjectRoot_NotFound(t *testing.T) {
	base := t.TempDir()
	makeTree(t, base, "docs/readme.md")

	_, err := FindProjectRoot(filepath.Join(base, "docs"))
	assert.ErrorIs(t, err, ErrNoProject)
}

func TestFindProjectRoot_GitWorktreeFallback(t *testing.T) {
	repo := t.TempDir()
	_, err := git.PlainInit(repo, false)
	require.NoError(t, err)
	makeTree(t, repo, "Tools/build.sh", "Zed/Assets/B.cs", "Game/Assets/A.cs", ".cache/Assets/")

	root, err := FindProjectRoot(filepath.Join(repo, "Tools"))
	require.NoError(t, err)
	assert.Equal(t, evalPath(t, filepath.Join(repo, "Game")), evalPath(t, root))
}

func evalPath(t *testing.T, p string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return resolved
}
