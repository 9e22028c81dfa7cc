//go:build linux
// +build linux

// File: osthread/priority_linux.go
// Author: momentics <momentics@gmail.com>
//
// Scheduling priority for the calling thread: setpriority against the
// kernel tid, so only this thread is affected, not the whole process.

package osthread

import "golang.org/x/sys/unix"

func setCurrentThreadPriority(priority int) error {
	return unix.Setpriority(unix.PRIO_PROCESS, unix.Gettid(), priority)
}
