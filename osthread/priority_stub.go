//go:build !linux && !windows
// +build !linux,!windows

// File: osthread/priority_stub.go
// Author: momentics <momentics@gmail.com>
//
// No priority facility on this platform; the setting is skipped entirely
// rather than reported as a failure.

package osthread

func setCurrentThreadPriority(priority int) error {
	return nil
}
