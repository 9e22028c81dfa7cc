//go:build windows
// +build windows

// File: osthread/stack_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stack introspection on Windows. VirtualQuery on a stack address yields
// the committed region containing the stack pointer and the reserved
// allocation base beneath it; the committed floor shrinks as guard pages
// are consumed, so the allocation base is the true floor. The lowest four
// pages of the reservation stay reserved for guard-page machinery and are
// excluded from the usable range.

package osthread

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const guardRegionSize = 4 * 0x1000

// GetCurrentStackBounds reports the memory bounds of the calling thread's
// stack region. ok=false means "bounds unknown".
//
// The upper bound is the top of the committed region containing the query
// anchor, not the TIB StackBase. The two differ only when pages above the
// anchor carry different protection attributes, in which case the reported
// ceiling is conservative. Callers use the bounds for containment checks,
// where a conservative ceiling is acceptable.
func GetCurrentStackBounds() (lower, upper uintptr, ok bool) {
	var anchor byte
	var info windows.MemoryBasicInformation
	err := windows.VirtualQuery(uintptr(unsafe.Pointer(&anchor)), &info, unsafe.Sizeof(info))
	if err != nil {
		return 0, 0, false
	}
	upper = info.BaseAddress + info.RegionSize
	lower = info.AllocationBase
	if upper <= lower+guardRegionSize {
		return 0, 0, false
	}
	return lower + guardRegionSize, upper, true
}

// osStackCeiling returns the largest per-thread stack request accepted on
// Windows, where reservations beyond 1 GiB fail in practice.
func osStackCeiling() uint64 {
	return 1 << 30
}
