// File: osthread/osthread.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread launcher, join/detach, identity converters, and the per-thread
// state registry shared by the TLS and naming facilities.

package osthread

import (
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/sync/semaphore"

	"github.com/momentics/hioload-threads/api"
	"github.com/momentics/hioload-threads/control"
)

// ThreadID identifies a native thread. On Linux it is the kernel tid, on
// Windows the thread id from GetCurrentThreadId; see id_stub.go for the rest.
type ThreadID uint64

// InvalidThreadID is never assigned to a managed thread.
const InvalidThreadID ThreadID = 0

// ThreadJoinID is the opaque handle one thread uses to wait for another's
// completion. Obtained exactly once per thread via GetCurrentThreadJoinID.
type ThreadJoinID *joinHandle

// InvalidThreadJoinID is the zero value of a join identifier.
var InvalidThreadJoinID ThreadJoinID

type joinHandle struct {
	done     chan struct{}
	released atomic.Bool
}

// wordSize is 4 on 32-bit and 8 on 64-bit targets.
const wordSize = 4 << (^uintptr(0) >> 63)

// GetMaxStackSize returns the stack budget assigned to every thread spawned
// through Start: 128 * wordSize KB (1 MiB on 64-bit hosts).
func GetMaxStackSize() int {
	return 128 * wordSize * 1024
}

// threadState is the layer's own bookkeeping for one native thread. Managed
// threads get theirs from the trampoline; foreign threads (such as the
// process main thread) get one lazily on first TLS or naming access.
type threadState struct {
	id    ThreadID
	join  *joinHandle
	slots *tlsSlots

	mu         sync.Mutex
	managed    bool
	status     api.ThreadStatus
	obj        api.ThreadObject
	joinIssued bool
	stackSize  int
}

func (st *threadState) setStatus(s api.ThreadStatus) {
	st.mu.Lock()
	st.status = s
	st.mu.Unlock()
}

var threads = xsync.NewMap[ThreadID, *threadState]()

var (
	budgetOnce  sync.Once
	startBudget *semaphore.Weighted

	liveThreads    atomic.Int64
	startedTotal   atomic.Uint64
	failedStarts   atomic.Uint64
	destructorRuns atomic.Uint64

	startedAt = time.Now()
)

func threadBudget() *semaphore.Weighted {
	budgetOnce.Do(func() {
		startBudget = semaphore.NewWeighted(int64(control.MaxConcurrentThreads()))
		registerProbes(control.DefaultProbes)
	})
	return startBudget
}

func registerProbes(dp *control.DebugProbes) {
	dp.RegisterProbe("osthread.live_threads", func() any { return liveThreads.Load() })
	dp.RegisterProbe("osthread.started_total", func() any { return startedTotal.Load() })
	dp.RegisterProbe("osthread.tls_keys_in_use", func() any { return keyTable.inUse() })
	dp.RegisterProbe("osthread.managed_states", func() any {
		n := 0
		threads.Range(func(_ ThreadID, st *threadState) bool {
			st.mu.Lock()
			if st.managed {
				n++
			}
			st.mu.Unlock()
			return true
		})
		return n
	})
}

// publishMetrics mirrors the thread-layer counters into the process metrics
// registry. Called on every launch and detach; both are rare events.
func publishMetrics() {
	m := control.DefaultMetrics
	m.Set("osthread.live_threads", liveThreads.Load())
	m.Set("osthread.started_total", int64(startedTotal.Load()))
	m.Set("osthread.failed_starts", int64(failedStarts.Load()))
	m.Set("osthread.destructor_runs", int64(destructorRuns.Load()))
	m.Set("osthread.tls_keys_in_use", int64(keyTable.inUse()))
}

// Start spawns one native thread running entry(parameter) after trampoline
// setup, with the default stack budget. It returns 0 on success or an
// errno-style code with no thread created otherwise; retry policy is the
// caller's.
func Start(name string, entry api.ThreadStartFunc, parameter uintptr) int {
	return StartWithStackSize(name, entry, parameter, GetMaxStackSize())
}

// StartWithStackSize is Start with an explicit stack budget. A request the
// OS cannot satisfy is rejected up front, before any thread-local side
// effects occur.
func StartWithStackSize(name string, entry api.ThreadStartFunc, parameter uintptr, stackSize int) int {
	if entry == nil || stackSize <= 0 {
		failedStarts.Add(1)
		publishMetrics()
		return int(syscall.EINVAL)
	}
	if ceiling := osStackCeiling(); ceiling > 0 && uint64(stackSize) > ceiling {
		failedStarts.Add(1)
		publishMetrics()
		return int(syscall.EAGAIN)
	}
	if !threadBudget().TryAcquire(1) {
		failedStarts.Add(1)
		publishMetrics()
		return int(syscall.EAGAIN)
	}

	pkg := &threadStartPackage{name: name, entry: entry, parameter: parameter}
	startedTotal.Add(1)
	liveThreads.Add(1)
	publishMetrics()
	go trampoline(pkg, stackSize)
	return 0
}

// CurrentThreadStackSize returns the stack budget recorded for the calling
// managed thread. Foreign threads report the default budget.
func CurrentThreadStackSize() int {
	st := currentState()
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.stackSize == 0 {
		return GetMaxStackSize()
	}
	return st.stackSize
}

// LiveThreadCount reports how many managed threads are currently running.
func LiveThreadCount() int64 {
	return liveThreads.Load()
}

// Metrics returns a snapshot of the thread-layer counters.
func Metrics() api.ThreadMetrics {
	return api.ThreadMetrics{
		LiveThreads:    int(liveThreads.Load()),
		StartedTotal:   startedTotal.Load(),
		FailedStarts:   failedStarts.Load(),
		TLSKeysInUse:   keyTable.inUse(),
		DestructorRuns: destructorRuns.Load(),
		StartedAt:      startedAt,
	}
}

// currentState returns the calling thread's state, creating one for foreign
// threads on first use. Callers that need a stable native identity must be
// locked to their OS thread.
func currentState() *threadState {
	id := currentThreadID()
	if st, ok := threads.Load(id); ok {
		return st
	}
	st := &threadState{
		id:    id,
		join:  &joinHandle{done: make(chan struct{})},
		slots: newTLSSlots(),
	}
	actual, _ := threads.LoadOrStore(id, st)
	return actual
}

// SetCurrent installs obj as the calling thread's runtime object.
func SetCurrent(obj api.ThreadObject) {
	st := currentState()
	st.mu.Lock()
	st.obj = obj
	st.mu.Unlock()
}

// Current returns the calling thread's runtime object, or nil before
// SetCurrent.
func Current() api.ThreadObject {
	st := currentState()
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.obj
}

// CurrentThreadStatus reports where the calling thread is in the managed
// lifecycle. Foreign threads that only attached lazily report ThreadUnknown.
func CurrentThreadStatus() api.ThreadStatus {
	st := currentState()
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.status
}

// GetCurrentThreadID returns the calling thread's native identity.
func GetCurrentThreadID() ThreadID {
	return currentThreadID()
}

// GetCurrentThreadTraceID returns the identifier external tracing should use
// for the calling thread. Diagnostics only; not a join handle.
func GetCurrentThreadTraceID() uint64 {
	return currentThreadTraceID()
}

// ThreadIDToIntPtr converts a thread id to a word-sized integer so upper
// layers can store it uniformly.
func ThreadIDToIntPtr(id ThreadID) uintptr {
	return uintptr(id)
}

// ThreadIDFromIntPtr recovers a thread id stored via ThreadIDToIntPtr.
func ThreadIDFromIntPtr(v uintptr) ThreadID {
	return ThreadID(v)
}

// GetCurrentThreadJoinID returns the join handle for the calling thread.
// It must be called on the thread being identified, with its installed
// runtime object, and at most once per thread.
func GetCurrentThreadJoinID(obj api.ThreadObject) ThreadJoinID {
	st := currentState()
	st.mu.Lock()
	defer st.mu.Unlock()
	debugAssert(obj != nil && st.obj == obj, "join id requested with a foreign thread object")
	debugAssert(!st.joinIssued, "join id for thread %d issued twice", st.id)
	st.joinIssued = true
	return st.join
}

// Join blocks until the thread behind id has exited. The handle is consumed:
// joining or detaching it again is an invariant violation.
func Join(id ThreadJoinID) {
	h := (*joinHandle)(id)
	debugAssert(h != nil, "join on invalid thread join id")
	if h == nil {
		return
	}
	<-h.done
	ok := h.released.CompareAndSwap(false, true)
	debugAssert(ok, "thread join handle waited on twice")
}

// Detach releases joinability for id without blocking.
func Detach(id ThreadJoinID) {
	h := (*joinHandle)(id)
	debugAssert(h != nil, "detach on invalid thread join id")
	if h == nil {
		return
	}
	ok := h.released.CompareAndSwap(false, true)
	debugAssert(ok, "thread join handle detached twice")
}

// SetCurrentThreadName assigns the native display name of the calling
// thread, truncating where the platform demands it.
func SetCurrentThreadName(name string) {
	setCurrentThreadName(name)
}

// GetCurrentThreadName reads the native display name of the calling thread.
// Platforms without name read-back return "".
func GetCurrentThreadName() string {
	return getCurrentThreadName()
}

// SetCurrentThreadPriority applies an OS scheduling priority to the calling
// thread. Explicit API failure is fatal; platforms with no priority facility
// skip silently.
func SetCurrentThreadPriority(priority int) {
	if err := setCurrentThreadPriority(priority); err != nil {
		control.Fatalf("Setting thread priority to %d failed: %v", priority, err)
	}
}
