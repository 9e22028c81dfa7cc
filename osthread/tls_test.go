// File: osthread/tls_test.go
// Author: momentics <momentics@gmail.com>
//
// White-box tests for the TLS key manager, the destructor registry, and the
// exit hook sweep.

package osthread

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

// startAndJoin runs entry on a managed thread and blocks until the thread
// has fully detached, destructor sweep included.
func startAndJoin(t *testing.T, entry func(uintptr), parameter uintptr) {
	t.Helper()
	joins := make(chan ThreadJoinID, 1)
	status := Start("tls-test", func(p uintptr) {
		joins <- GetCurrentThreadJoinID(Current())
		entry(p)
	}, parameter)
	if status != 0 {
		t.Fatalf("Start failed with status %d", status)
	}
	Join(<-joins)
}

func TestDestructorRunsExactlyOnceWithValue(t *testing.T) {
	var calls atomic.Int64
	var got atomic.Uintptr

	key := CreateThreadLocal(func(value uintptr) {
		if value != 0 {
			calls.Add(1)
			got.Store(value)
		}
	})
	defer DeleteThreadLocal(key)

	startAndJoin(t, func(uintptr) {
		SetThreadLocal(key, 42)
		if v := GetThreadLocal(key); v != 42 {
			t.Errorf("GetThreadLocal = %d, want 42", v)
		}
	}, 0)

	if n := calls.Load(); n != 1 {
		t.Fatalf("destructor ran %d times, want 1", n)
	}
	if v := got.Load(); v != 42 {
		t.Fatalf("destructor saw value %d, want 42", v)
	}
}

func TestDestructorOrderFollowsRegistration(t *testing.T) {
	var seen chanOrder
	k1 := CreateThreadLocal(func(value uintptr) {
		if value != 0 {
			seen.record(1)
		}
	})
	defer DeleteThreadLocal(k1)
	k2 := CreateThreadLocal(func(value uintptr) {
		if value != 0 {
			seen.record(2)
		}
	})
	defer DeleteThreadLocal(k2)

	startAndJoin(t, func(uintptr) {
		SetThreadLocal(k2, 7)
		SetThreadLocal(k1, 9)
	}, 0)

	order := seen.snapshot()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("destructor order = %v, want [1 2]", order)
	}
}

func TestDeleteUnregisteredKeyLeavesRegistryUnchanged(t *testing.T) {
	tracked := CreateThreadLocal(func(uintptr) {})
	defer DeleteThreadLocal(tracked)

	before := destructorCount()
	plain := CreateThreadLocal(nil)
	if n := destructorCount(); n != before {
		t.Fatalf("nil-destructor key changed registry count: %d -> %d", before, n)
	}
	DeleteThreadLocal(plain)
	if n := destructorCount(); n != before {
		t.Fatalf("deleting untracked key changed registry count: %d -> %d", before, n)
	}
}

func TestSuppressionFlagSkipsSweep(t *testing.T) {
	var calls atomic.Int64
	key := CreateThreadLocal(func(value uintptr) {
		if value != 0 {
			calls.Add(1)
		}
	})
	defer DeleteThreadLocal(key)

	SetRunTLSDestructors(false)
	defer SetRunTLSDestructors(true)

	startAndJoin(t, func(uintptr) {
		SetThreadLocal(key, 5)
	}, 0)

	if n := calls.Load(); n != 0 {
		t.Fatalf("destructor ran %d times under suppression, want 0", n)
	}
}

func TestAttachReasonDoesNotSweep(t *testing.T) {
	var calls atomic.Int64
	key := CreateThreadLocal(func(uintptr) { calls.Add(1) })
	defer DeleteThreadLocal(key)

	onThreadExit(reasonThreadAttach, newTLSSlots())
	if n := calls.Load(); n != 0 {
		t.Fatalf("attach reason triggered %d destructor runs", n)
	}
}

func TestValuesAreThreadLocal(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	key := CreateThreadLocal(nil)
	defer DeleteThreadLocal(key)

	SetThreadLocal(key, 11)
	read := make(chan uintptr, 1)
	startAndJoin(t, func(uintptr) {
		read <- GetThreadLocal(key)
	}, 0)
	if v := <-read; v != 0 {
		t.Fatalf("fresh thread read %d for unset slot, want 0", v)
	}
	if v := GetThreadLocal(key); v != 11 {
		t.Fatalf("own slot = %d after other thread exit, want 11", v)
	}
}

// chanOrder collects destructor invocation order across threads.
type chanOrder struct {
	mu    sync.Mutex
	order []int
}

func (c *chanOrder) record(v int) {
	c.mu.Lock()
	c.order = append(c.order, v)
	c.mu.Unlock()
}

func (c *chanOrder) snapshot() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.order...)
}
