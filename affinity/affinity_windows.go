//go:build windows
// +build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows thread affinity via SetThreadAffinityMask.

package affinity

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/windows"
)

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = modkernel32.NewProc("SetThreadAffinityMask")
	procGetCurrentThread      = modkernel32.NewProc("GetCurrentThread")
)

func setAffinityPlatform(cpu int) error {
	handle, _, _ := procGetCurrentThread.Call()
	mask := uintptr(1) << uint(cpu)
	old, _, err := procSetThreadAffinityMask.Call(handle, mask)
	if old == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask(cpu=%d): %w", cpu, err)
	}
	return nil
}

func unsetAffinityPlatform() error {
	total := runtime.NumCPU()
	if total <= 0 || total > 64 {
		total = 64
	}
	handle, _, _ := procGetCurrentThread.Call()
	mask := (uintptr(1) << uint(total)) - 1
	old, _, err := procSetThreadAffinityMask.Call(handle, mask)
	if old == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask(reset): %w", err)
	}
	return nil
}
