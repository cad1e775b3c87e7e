package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStarter starts a process without waiting for it to exit.
type ProcessStarter interface {
	Start(name string, args ...string) error
}

type execStarter struct{}

func (execStarter) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Launcher opens the written descriptor in the editor.
type Launcher struct {
	Starter    ProcessStarter
	Focus      Focuser
	Probe      func(processName string) (bool, error) // optional
	FocusDelay time.Duration
}

// newLauncher returns a launcher wired to the real OS.
func newLauncher(focusDelay time.Duration) *Launcher {
	return &Launcher{
		Starter:    execStarter{},
		Focus:      newFocuser(),
		Probe:      editorRunning,
		FocusDelay: focusDelay,
	}
}

// editorArgs asks the editor to open the project in an existing window, in the background.
func editorArgs(descriptorPath string) []string {
	return []string{"-a", "-b", "--project", descriptorPath}
}

// descriptorMode is the mode of a newly created descriptor. An existing
// descriptor keeps its mode.
const descriptorMode = 0o644

// WriteDescriptor replaces path with text atomically.
func WriteDescriptor(path, text string) error {
	_, statErr := os.Stat(path)
	created := errors.Is(statErr, fs.ErrNotExist)

	if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
		return fmt.Errorf("error writing descriptor %s: %w", path, err)
	}
	if created {
		if err := os.Chmod(path, descriptorMode); err != nil {
			return fmt.Errorf("error setting mode of %s: %w", path, err)
		}
	}
	return nil
}

// Launch starts the editor on the pending descriptor when the profile allows it.
// On profiles that restore focus, the window focused before the launch gets
// focus back once, after FocusDelay.
func (l *Launcher) Launch(ctx context.Context, inv *Invocation) (bool, error) {
	path := inv.pendingDescriptor
	inv.pendingDescriptor = ""
	if !inv.Profile.AutoOpen || path == "" {
		return false, nil
	}

	if l.Probe != nil {
		running, err := l.Probe(inv.Profile.ProcessName)
		if err != nil {
			log.Debug().Err(err).Msg("could not list processes")
		} else {
			log.Debug().Bool("running", running).Str("process", inv.Profile.ProcessName).Msg("editor probe")
		}
	}

	if inv.Profile.RestoreFocus {
		inv.pendingFocus = l.Focus.Foreground()
	}

	log.Info().Str("editor", inv.Profile.EditorPath).Str("project", path).Msg("opening editor")
	if err := l.Starter.Start(inv.Profile.EditorPath, editorArgs(path)...); err != nil {
		inv.pendingFocus = 0
		return false, fmt.Errorf("error starting editor %s: %w", inv.Profile.EditorPath, err)
	}

	if inv.Profile.RestoreFocus {
		task := scheduleOnce(l.FocusDelay, func() { l.restoreFocus(inv) })
		if err := task.Wait(ctx); err != nil {
			log.Debug().Err(err).Msg("focus restore cancelled")
			inv.pendingFocus = 0
		}
	}
	return true, nil
}

func (l *Launcher) restoreFocus(inv *Invocation) {
	handle := inv.pendingFocus
	inv.pendingFocus = 0
	if handle == 0 {
		return
	}
	if err := l.Focus.SetForeground(handle); err != nil {
		log.Warn().Err(err).Msg("could not restore window focus")
	}
}

// editorRunning reports whether a process with the given name is alive.
func editorRunning(name string) (bool, error) {
	procs, err := process.Processes()
	if err != nil {
		return false, err
	}
	for _, p := range procs {
		n, err := p.Name()
		if err != nil {
			continue
		}
		if strings.EqualFold(n, name) {
			return true, nil
		}
	}
	return false, nil
}
