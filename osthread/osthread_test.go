// File: osthread/osthread_test.go
// Author: momentics <momentics@gmail.com>
//
// Launcher, join, and identity tests.

package osthread

import (
	"math"
	"os"
	"runtime"
	"sync"
	"testing"
	"unsafe"

	"github.com/momentics/hioload-threads/api"
	"github.com/momentics/hioload-threads/control"
)

func TestMain(m *testing.M) {
	// A thread can exit before the registry is initialized; the sweep must
	// be a silent no-op rather than a crash.
	onThreadExit(reasonThreadDetach, newTLSSlots())

	InitThreadLocalData()
	code := m.Run()
	CleanupThreadLocalData()
	os.Exit(code)
}

func TestStartRunsEntryWithArgument(t *testing.T) {
	got := make(chan uintptr, 1)
	joins := make(chan ThreadJoinID, 1)

	status := Start("entry-test", func(parameter uintptr) {
		joins <- GetCurrentThreadJoinID(Current())
		got <- parameter
	}, 1234)
	if status != 0 {
		t.Fatalf("Start returned %d, want 0", status)
	}
	if v := <-got; v != 1234 {
		t.Fatalf("entry received %d, want 1234", v)
	}
	Join(<-joins)
}

func TestStartRunsOnDistinctThread(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	self := GetCurrentThreadTraceID()

	ids := make(chan uint64, 1)
	joins := make(chan ThreadJoinID, 1)
	status := Start("tid-test", func(uintptr) {
		joins <- GetCurrentThreadJoinID(Current())
		ids <- GetCurrentThreadTraceID()
	}, 0)
	if status != 0 {
		t.Fatalf("Start returned %d", status)
	}
	worker := <-ids
	Join(<-joins)

	if worker == 0 {
		t.Skip("no native thread identity on this platform")
	}
	if worker == self {
		t.Fatalf("entry ran on the spawning thread (tid %d)", self)
	}
}

func TestStartRejectsInvalidArguments(t *testing.T) {
	before := LiveThreadCount()
	if status := Start("nil-entry", nil, 0); status == 0 {
		t.Fatal("Start accepted a nil entry function")
	}
	if status := StartWithStackSize("bad-stack", func(uintptr) {}, 0, -1); status == 0 {
		t.Fatal("Start accepted a negative stack size")
	}
	if LiveThreadCount() != before {
		t.Fatalf("failed starts changed live thread count: %d -> %d", before, LiveThreadCount())
	}
}

func TestOversizedStackIsRejectedWithoutSideEffects(t *testing.T) {
	before := LiveThreadCount()
	metricsBefore := Metrics().StartedTotal

	status := StartWithStackSize("huge-stack", func(uintptr) {
		t.Error("entry ran despite rejected stack request")
	}, 0, math.MaxInt)
	if status == 0 {
		t.Fatal("oversized stack request was accepted")
	}
	if LiveThreadCount() != before {
		t.Fatalf("live thread count changed: %d -> %d", before, LiveThreadCount())
	}
	if Metrics().StartedTotal != metricsBefore {
		t.Fatal("started counter advanced for a rejected request")
	}
}

func TestStackBoundsContainStackPointer(t *testing.T) {
	type result struct {
		lower, upper, sp uintptr
		ok               bool
	}
	res := make(chan result, 1)
	joins := make(chan ThreadJoinID, 1)

	status := Start("stack-test", func(uintptr) {
		joins <- GetCurrentThreadJoinID(Current())
		var anchor byte
		lower, upper, ok := GetCurrentStackBounds()
		res <- result{lower, upper, uintptr(unsafe.Pointer(&anchor)), ok}
	}, 0)
	if status != 0 {
		t.Fatalf("Start returned %d", status)
	}
	r := <-res
	Join(<-joins)

	if !r.ok {
		t.Skip("stack bounds unknown on this platform")
	}
	if r.lower >= r.upper {
		t.Fatalf("lower %#x >= upper %#x", r.lower, r.upper)
	}
	if r.sp < r.lower || r.sp >= r.upper {
		t.Fatalf("stack pointer %#x outside [%#x, %#x)", r.sp, r.lower, r.upper)
	}
}

func TestDetachReleasesHandle(t *testing.T) {
	joins := make(chan ThreadJoinID, 1)
	block := make(chan struct{})
	status := Start("detach-test", func(uintptr) {
		joins <- GetCurrentThreadJoinID(Current())
		<-block
	}, 0)
	if status != 0 {
		t.Fatalf("Start returned %d", status)
	}
	Detach(<-joins)
	close(block)
}

func TestThreadIDConverters(t *testing.T) {
	id := GetCurrentThreadID()
	if back := ThreadIDFromIntPtr(ThreadIDToIntPtr(id)); back != id {
		t.Fatalf("round trip changed id: %d -> %d", id, back)
	}
}

func TestThreadStatusLifecycle(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if got := CurrentThreadStatus(); got != api.ThreadUnknown {
		t.Fatalf("foreign thread status = %v, want %v", got, api.ThreadUnknown)
	}

	statuses := make(chan api.ThreadStatus, 1)
	joins := make(chan ThreadJoinID, 1)
	status := Start("status-test", func(uintptr) {
		joins <- GetCurrentThreadJoinID(Current())
		statuses <- CurrentThreadStatus()
	}, 0)
	if status != 0 {
		t.Fatalf("Start returned %d", status)
	}
	if got := <-statuses; got != api.ThreadRunning {
		t.Fatalf("entry observed status %v, want %v", got, api.ThreadRunning)
	}
	Join(<-joins)
}

func TestCountersPublishedToDefaultMetrics(t *testing.T) {
	joins := make(chan ThreadJoinID, 1)
	if status := Start("metrics-test", func(uintptr) {
		joins <- GetCurrentThreadJoinID(Current())
	}, 0); status != 0 {
		t.Fatalf("Start returned %d", status)
	}
	Join(<-joins)

	snap := control.DefaultMetrics.GetSnapshot()
	started, ok := snap["osthread.started_total"].(int64)
	if !ok || started < 1 {
		t.Fatalf("osthread.started_total = %v, want a positive int64", snap["osthread.started_total"])
	}
	if _, ok := snap["osthread.live_threads"]; !ok {
		t.Fatal("osthread.live_threads missing from the process registry")
	}
	if control.DefaultMetrics.UpdatedAt().IsZero() {
		t.Fatal("registry update time was never stamped")
	}
}

func TestProbesSafeDuringThreadChurn(t *testing.T) {
	stop := make(chan struct{})
	var readers sync.WaitGroup
	readers.Add(1)
	go func() {
		defer readers.Done()
		for {
			select {
			case <-stop:
				return
			default:
				control.DefaultProbes.DumpState()
			}
		}
	}()

	joins := make(chan ThreadJoinID, 8)
	for i := 0; i < 8; i++ {
		if status := Start("churn-test", func(uintptr) {
			joins <- GetCurrentThreadJoinID(Current())
		}, 0); status != 0 {
			t.Fatalf("Start returned %d", status)
		}
	}
	for i := 0; i < 8; i++ {
		Join(<-joins)
	}
	close(stop)
	readers.Wait()
}

func TestMaxStackSize(t *testing.T) {
	want := 128 * wordSize * 1024
	if got := GetMaxStackSize(); got != want {
		t.Fatalf("GetMaxStackSize = %d, want %d", got, want)
	}
}
