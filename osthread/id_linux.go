//go:build linux
// +build linux

// File: osthread/id_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux thread identity: the kernel tid doubles as the trace id.

package osthread

import "golang.org/x/sys/unix"

func currentThreadID() ThreadID {
	return ThreadID(unix.Gettid())
}

func currentThreadTraceID() uint64 {
	return uint64(unix.Gettid())
}
