//go:build !linux && !windows
// +build !linux,!windows

// File: osthread/name_stub.go
// Author: momentics <momentics@gmail.com>

package osthread

func setCurrentThreadName(name string) {}

func getCurrentThreadName() string {
	return ""
}
