//go:build windows
// +build windows

// control/platform_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows-specific metrics/debug introspection points.

package control

import (
	"os"
	"runtime"

	"golang.org/x/sys/windows"
)

// registerPlatformProbes sets Windows-specific debug probes.
func registerPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.pagesize", func() any {
		return os.Getpagesize()
	})
	dp.RegisterProbe("platform.thread_id", func() any {
		return windows.GetCurrentThreadId()
	})
}
