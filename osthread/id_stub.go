//go:build !linux && !windows
// +build !linux,!windows

// File: osthread/id_stub.go
// Author: momentics <momentics@gmail.com>
//
// Identity stub for platforms without a native tid accessor. All callers
// share one pseudo identity, so per-thread storage degrades to process-wide
// storage here; the supported targets are Linux and Windows.

package osthread

const stubThreadID ThreadID = 1

func currentThreadID() ThreadID {
	return stubThreadID
}

func currentThreadTraceID() uint64 {
	return 0
}
