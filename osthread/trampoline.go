// File: osthread/trampoline.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The start trampoline every managed thread begins in. It owns the ordering
// of thread setup: priority, name, profiling signal, runtime object, entry
// dispatch, and the detach sweep on the way out.

package osthread

import (
	"runtime"

	"github.com/momentics/hioload-threads/api"
	"github.com/momentics/hioload-threads/control"
)

// threadStartPackage carries the launch triple from Start to the trampoline.
// Single owner: the trampoline consumes it exactly once and drops it.
type threadStartPackage struct {
	name      string
	entry     api.ThreadStartFunc
	parameter uintptr
	consumed  bool
}

func (p *threadStartPackage) consume() (string, api.ThreadStartFunc, uintptr) {
	debugAssert(!p.consumed, "thread start package consumed twice")
	p.consumed = true
	name, entry, parameter := p.name, p.entry, p.parameter
	p.entry = nil
	return name, entry, parameter
}

// threadObjectFactory constructs the per-thread runtime object installed
// before the entry function runs. The higher-level registry replaces it via
// SetThreadObjectFactory; the default is a minimal record.
var threadObjectFactory api.ThreadObjectFactory = newBasicThreadObject

// SetThreadObjectFactory installs the constructor for per-thread runtime
// objects. Must be called before the first Start.
func SetThreadObjectFactory(factory api.ThreadObjectFactory) {
	if factory == nil {
		factory = newBasicThreadObject
	}
	threadObjectFactory = factory
}

// trampoline runs on the new thread. The goroutine stays locked to its OS
// thread and never unlocks, so the OS thread is destroyed when the
// goroutine returns rather than being returned to the scheduler tainted.
func trampoline(pkg *threadStartPackage, stackSize int) {
	runtime.LockOSThread()

	if priority := control.WorkerThreadPriority(); priority != control.UnsetThreadPriority {
		if err := setCurrentThreadPriority(priority); err != nil {
			control.Fatalf("Setting thread priority to %d failed: %v", priority, err)
		}
	}

	name, entry, parameter := pkg.consume()

	st := currentState()
	st.mu.Lock()
	st.managed = true
	st.status = api.ThreadStarting
	st.stackSize = stackSize
	st.mu.Unlock()

	// The join handle is signalled last so joiners observe the sweep and
	// the counters fully settled.
	defer func() {
		st.setStatus(api.ThreadExited)
		onThreadExit(reasonThreadDetach, st.slots)
		threads.Delete(st.id)
		liveThreads.Add(-1)
		threadBudget().Release(1)
		publishMetrics()
		close(st.join.done)
	}()

	setCurrentThreadName(name)

	// Spawned threads inherit the spawner's signal mask; unblock the
	// profiling signal so the sampler can always observe this thread.
	unblockProfilingSignal()

	obj := threadObjectFactory()
	if obj == nil {
		// No runtime object, no user work. The thread exits quietly.
		return
	}
	SetCurrent(obj)
	obj.SetName(name)

	st.setStatus(api.ThreadRunning)
	entry(parameter)
}

// basicThreadObject is the default per-thread record used when no external
// registry has installed a factory.
type basicThreadObject struct {
	name string
}

func newBasicThreadObject() api.ThreadObject {
	return &basicThreadObject{}
}

func (b *basicThreadObject) SetName(name string) { b.name = name }

func (b *basicThreadObject) ID() uint64 { return uint64(currentThreadID()) }
