//go:build !linux && !windows
// +build !linux,!windows

// File: osthread/stack_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stack bounds are unknown on this platform.

package osthread

func GetCurrentStackBounds() (lower, upper uintptr, ok bool) {
	return 0, 0, false
}

func osStackCeiling() uint64 {
	return 1 << 30
}
