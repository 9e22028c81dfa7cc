//go:build linux
// +build linux

// File: osthread/stack_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stack introspection on Linux: locate the mapping containing the current
// stack pointer in /proc/self/maps. Goroutine stacks live in ordinary
// anonymous mappings, so this covers managed and foreign threads alike.

package osthread

import (
	"os"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// GetCurrentStackBounds reports the memory bounds of the calling thread's
// stack region. ok=false means "bounds unknown" and is an expected outcome
// callers tolerate, not an error to propagate.
func GetCurrentStackBounds() (lower, upper uintptr, ok bool) {
	var anchor byte
	sp := uintptr(unsafe.Pointer(&anchor))

	maps, err := os.ReadFile("/proc/self/maps")
	if err != nil {
		return 0, 0, false
	}
	for _, line := range strings.Split(string(maps), "\n") {
		rangeEnd := strings.IndexByte(line, ' ')
		if rangeEnd < 0 {
			continue
		}
		dash := strings.IndexByte(line[:rangeEnd], '-')
		if dash < 0 {
			continue
		}
		start, err := strconv.ParseUint(line[:dash], 16, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseUint(line[dash+1:rangeEnd], 16, 64)
		if err != nil {
			continue
		}
		if uintptr(start) <= sp && sp < uintptr(end) {
			return uintptr(start), uintptr(end), true
		}
	}
	return 0, 0, false
}

// unlimitedStackCeiling caps stack requests when RLIMIT_STACK is unlimited.
const unlimitedStackCeiling = 1 << 30

// osStackCeiling returns the largest per-thread stack the OS will grant.
func osStackCeiling() uint64 {
	var lim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_STACK, &lim); err != nil {
		return unlimitedStackCeiling
	}
	if lim.Cur == unix.RLIM_INFINITY {
		return unlimitedStackCeiling
	}
	return uint64(lim.Cur)
}
