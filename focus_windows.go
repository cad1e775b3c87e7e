//go:build windows

package main

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
)

type windowFocuser struct{}

func newFocuser() Focuser { return windowFocuser{} }

func (windowFocuser) Foreground() uintptr {
	hwnd, _, _ := procGetForegroundWindow.Call()
	return hwnd
}

func (windowFocuser) SetForeground(handle uintptr) error {
	ok, _, err := procSetForegroundWindow.Call(handle)
	if ok == 0 {
		return fmt.Errorf("SetForegroundWindow: %w", err)
	}
	return nil
}
