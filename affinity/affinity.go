// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity of the calling OS thread. Platform
// implementations live in affinity_linux.go / affinity_windows.go /
// affinity_stub.go behind build tags. Callers must already be locked to
// their OS thread; managed threads spawned via osthread always are.

package affinity

import "runtime"

// Pin binds the calling OS thread to one logical CPU. The cpu index wraps
// around the available CPU count so callers can pass worker ordinals
// directly. On unsupported platforms returns an error.
func Pin(cpu int) error {
	total := runtime.NumCPU()
	if total <= 0 {
		total = 1
	}
	if cpu < 0 {
		cpu = 0
	}
	return setAffinityPlatform(cpu % total)
}

// Unpin resets the calling thread's affinity to all CPUs.
func Unpin() error {
	return unsetAffinityPlatform()
}
