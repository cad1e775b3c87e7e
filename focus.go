package main

import (
	"context"
	"sync"
	"time"
)

// Focuser reads and restores the window that has OS input focus.
// A zero handle means "no window".
type Focuser interface {
	Foreground() uintptr
	SetForeground(handle uintptr) error
}

// oneShot is a task that runs at most once after a delay.
type oneShot struct {
	once  sync.Once
	done  chan struct{}
	timer *time.Timer
}

// scheduleOnce runs fn once after delay.
func scheduleOnce(delay time.Duration, fn func()) *oneShot {
	task := &oneShot{done: make(chan struct{})}
	task.timer = time.AfterFunc(delay, func() {
		task.once.Do(func() {
			fn()
			close(task.done)
		})
	})
	return task
}

// Cancel drops the task if it has not fired yet.
func (t *oneShot) Cancel() {
	t.timer.Stop()
	t.once.Do(func() { close(t.done) })
}

// Wait blocks until the task has run or was cancelled. If ctx ends first the
// task is cancelled.
func (t *oneShot) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		t.Cancel()
		<-t.done
		return ctx.Err()
	}
}
