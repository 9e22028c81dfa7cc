//go:build linux
// +build linux

// File: osthread/name_linux.go
// Author: momentics <momentics@gmail.com>
//
// Native thread naming via prctl. The kernel enforces a 16-byte limit
// including the terminator and rejects longer names outright, so the name
// is truncated to 15 characters before the call.

package osthread

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-threads/control"
)

const nameBufferSize = 16

func setCurrentThreadName(name string) {
	buf := make([]byte, nameBufferSize)
	copy(buf[:nameBufferSize-1], name)
	if err := unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(&buf[0])), 0, 0, 0); err != nil {
		control.Fatalf("Setting thread name %q failed: %v", name, err)
	}
}

func getCurrentThreadName() string {
	buf := make([]byte, nameBufferSize)
	if err := unix.Prctl(unix.PR_GET_NAME, uintptr(unsafe.Pointer(&buf[0])), 0, 0, 0); err != nil {
		return ""
	}
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
