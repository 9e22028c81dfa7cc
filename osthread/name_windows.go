//go:build windows
// +build windows

// File: osthread/name_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows offers no naming facility this layer relies on: the display name
// is carried by the per-thread runtime object instead, and native read-back
// reports an absent name without error.

package osthread

func setCurrentThreadName(name string) {}

func getCurrentThreadName() string {
	return ""
}
