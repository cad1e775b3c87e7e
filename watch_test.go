package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestRelevantEvent(t *testing.T) {
	assert.True(t, relevantEvent(fsnotify.Event{Name: "a", Op: fsnotify.Create}))
	assert.True(t, relevantEvent(fsnotify.Event{Name: "a", Op: fsnotify.Remove}))
	assert.True(t, relevantEvent(fsnotify.Event{Name: "a", Op: fsnotify.Rename}))
	assert.False(t, relevantEvent(fsnotify.Event{Name: "a", Op: fsnotify.Write}))
	assert.False(t, relevantEvent(fsnotify.Event{Name: "a", Op: fsnotify.Chmod}))
}

func TestWatchProject_RewritesOnNewFolder(t *testing.T) {
	root := newTestProject(t)
	profile := profileFor("linux")
	profile.AutoOpen = false

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	synced := make(chan Result, 4)
	done := make(chan error, 1)
	go func() {
		done <- watchProject(ctx, root, testSettings(profile, "cs"), func(r Result) { synced <- r })
	}()

	// Give the watcher time to register before changing the tree.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Assets", "Audio"), 0o755))

	select {
	case res := <-synced:
		excluded := stringsOf(gjson.Get(res.Text, "folders.0.folder_exclude_patterns"))
		assert.Contains(t, excluded, filepath.Join(root, "Assets", "Audio"))
		assert.FileExists(t, res.DescriptorPath)
	case <-time.After(5 * time.Second):
		t.Fatal("descriptor was not rewritten")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatchProject_SurvivesFailedRewrite(t *testing.T) {
	root := newTestProject(t)
	profile := profileFor("linux")
	profile.AutoOpen = false

	// A directory where the descriptor belongs makes every rewrite fail.
	blocker := filepath.Join(root, "Game.sublime-project")
	require.NoError(t, os.Mkdir(blocker, 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	synced := make(chan Result, 4)
	done := make(chan error, 1)
	go func() {
		done <- watchProject(ctx, root, testSettings(profile, "cs"), func(r Result) { synced <- r })
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Assets", "Audio"), 0o755))

	select {
	case err := <-done:
		t.Fatalf("watch stopped after a failed rewrite: %v", err)
	case <-synced:
		t.Fatal("rewrite should have failed")
	case <-time.After(4 * watchDebounce):
	}

	require.NoError(t, os.Remove(blocker))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Assets", "Music"), 0o755))

	select {
	case res := <-synced:
		assert.FileExists(t, res.DescriptorPath)
	case <-time.After(5 * time.Second):
		t.Fatal("descriptor was not rewritten after the failure cleared")
	}

	cancel()
	require.NoError(t, <-done)
}
