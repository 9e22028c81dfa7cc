//go:build windows
// +build windows

// File: osthread/id_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows thread identity via GetCurrentThreadId.

package osthread

import "golang.org/x/sys/windows"

func currentThreadID() ThreadID {
	return ThreadID(windows.GetCurrentThreadId())
}

func currentThreadTraceID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
