//go:build !linux
// +build !linux

// File: osthread/sigprof_stub.go
// Author: momentics <momentics@gmail.com>
//
// No profiling-signal handling outside the signal-based sampler platforms.

package osthread

func unblockProfilingSignal() {}
