//go:build linux
// +build linux

// File: osthread/sigprof_linux.go
// Author: momentics <momentics@gmail.com>
//
// New threads inherit the spawner's signal mask, and spawners sometimes run
// with SIGPROF blocked. Unblock it so the sampling profiler can observe
// every managed thread.

package osthread

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func unblockProfilingSignal() {
	var set unix.Sigset_t
	n := uint(unix.SIGPROF) - 1
	bits := uint(unsafe.Sizeof(set.Val[0])) * 8
	set.Val[n/bits] |= 1 << (n % bits)
	err := unix.PthreadSigmask(unix.SIG_UNBLOCK, &set, nil)
	debugAssert(err == nil, "unblocking SIGPROF failed: %v", err)
}
