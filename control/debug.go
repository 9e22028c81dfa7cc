// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug handler and probe reflector for internal inspection. The
// thread layer registers its live-thread and TLS-key probes here.

package control

import "sync"

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// DefaultProbes is the process-wide probe registry. The tunable probes and
// the platform probes are registered at init; the osthread package adds its
// own on first use.
var DefaultProbes = NewDebugProbes()

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	dp := &DebugProbes{
		probes: make(map[string]func() any),
	}
	dp.RegisterProbe("control.worker_thread_priority", func() any {
		return WorkerThreadPriority()
	})
	dp.RegisterProbe("control.max_concurrent_threads", func() any {
		return MaxConcurrentThreads()
	})
	registerPlatformProbes(dp)
	return dp
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any, len(dp.probes))
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}
