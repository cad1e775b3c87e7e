package main

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const watchDebounce = 300 * time.Millisecond

// addWatchTree registers root and every directory below it with w.
// fsnotify does not watch recursively.
func addWatchTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				return fmt.Errorf("error watching %s: %w", path, err)
			}
		}
		return nil
	})
}

// relevantEvent reports whether an event can change the descriptor. Content
// writes never do; only the set of names does.
func relevantEvent(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// watchProject rewrites the descriptor whenever files or folders under the
// asset root appear, disappear or move. The editor is never launched from here.
// Failed rewrites are logged and watching goes on. It returns when ctx is done.
func watchProject(ctx context.Context, root string, s Settings, onSync func(Result)) error {
	inv := newInvocation(root, s)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer w.Close()

	if err := addWatchTree(w, inv.Paths.AssetRoot); err != nil {
		return err
	}
	log.Info().Str("assets", inv.Paths.AssetRoot).Msg("watching for changes")

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				if err := addWatchTree(w, ev.Name); err != nil {
					log.Warn().Err(err).Str("path", ev.Name).Msg("could not watch new directory")
				}
			}
			log.Debug().Str("event", ev.String()).Msg("change detected")
			pending = time.After(watchDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")

		case <-pending:
			pending = nil
			res, err := inv.Write()
			if err != nil {
				// Unity moves folders around while importing; the next change retries.
				log.Error().Err(err).Msg("could not rewrite descriptor")
				continue
			}
			inv.pendingDescriptor = ""
			if onSync != nil {
				onSync(res)
			}
		}
	}
}
