//go:build linux
// +build linux

// control/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific platform metrics or debug probe integrations.

package control

import (
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

// registerPlatformProbes sets Linux-specific debug probes.
func registerPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.pagesize", func() any {
		return os.Getpagesize()
	})
	dp.RegisterProbe("platform.stack_rlimit", func() any {
		var lim unix.Rlimit
		if err := unix.Getrlimit(unix.RLIMIT_STACK, &lim); err != nil {
			return err.Error()
		}
		return lim.Cur
	})
}
