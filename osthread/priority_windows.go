//go:build windows
// +build windows

// File: osthread/priority_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows thread priority via SetThreadPriority on the current pseudo
// handle.

package osthread

import "golang.org/x/sys/windows"

var (
	modkernel32           = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadPriority = modkernel32.NewProc("SetThreadPriority")
	procGetCurrentThread  = modkernel32.NewProc("GetCurrentThread")
)

func setCurrentThreadPriority(priority int) error {
	handle, _, _ := procGetCurrentThread.Call()
	ret, _, err := procSetThreadPriority.Call(handle, uintptr(priority))
	if ret == 0 {
		return err
	}
	return nil
}
