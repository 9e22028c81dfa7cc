// File: osthread/tls.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Keyed thread-local storage. Keys come from a process-wide table with a
// fixed index capacity; values live in per-thread slot tables reached
// through the thread registry. Key allocation failure and get/set on a key
// that was never allocated are unrecoverable misuse.

package osthread

import (
	"sync"

	"github.com/momentics/hioload-threads/api"
	"github.com/momentics/hioload-threads/control"
)

// ThreadLocalKey addresses one TLS slot on every thread.
type ThreadLocalKey uint32

// UnsetThreadLocalKey is the invalid key sentinel.
const UnsetThreadLocalKey = ^ThreadLocalKey(0)

// maxThreadLocalKeys mirrors the index capacity of the most restrictive
// native TLS implementation this layer stands in for.
const maxThreadLocalKeys = 1088

type threadLocalKeyTable struct {
	mu    sync.Mutex
	alive []bool
	free  []ThreadLocalKey
}

var keyTable threadLocalKeyTable

func (t *threadLocalKeyTable) allocate() (ThreadLocalKey, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := len(t.free); n > 0 {
		key := t.free[n-1]
		t.free = t.free[:n-1]
		t.alive[key] = true
		return key, true
	}
	if len(t.alive) >= maxThreadLocalKeys {
		return UnsetThreadLocalKey, false
	}
	key := ThreadLocalKey(len(t.alive))
	t.alive = append(t.alive, true)
	return key, true
}

func (t *threadLocalKeyTable) release(key ThreadLocalKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(key) >= len(t.alive) || !t.alive[key] {
		return false
	}
	t.alive[key] = false
	t.free = append(t.free, key)
	return true
}

func (t *threadLocalKeyTable) isAlive(key ThreadLocalKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(key) < len(t.alive) && t.alive[key]
}

func (t *threadLocalKeyTable) inUse() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.alive) - len(t.free)
}

// tlsSlots is one thread's key/value table. The owning thread is the only
// writer; DeleteThreadLocal clears stale values from other threads, hence
// the mutex.
type tlsSlots struct {
	mu     sync.Mutex
	values map[ThreadLocalKey]uintptr
}

func newTLSSlots() *tlsSlots {
	return &tlsSlots{values: make(map[ThreadLocalKey]uintptr)}
}

func (s *tlsSlots) set(key ThreadLocalKey, value uintptr) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
}

func (s *tlsSlots) get(key ThreadLocalKey) uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func (s *tlsSlots) clear(key ThreadLocalKey) {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
}

// CreateThreadLocal allocates a TLS key. A non-nil destructor is registered
// with the thread-local registry and will run with the exiting thread's
// value for the key. Index exhaustion is fatal.
func CreateThreadLocal(destructor api.ThreadDestructor) ThreadLocalKey {
	key, ok := keyTable.allocate()
	if !ok {
		control.Fatalf("CreateThreadLocal failed: out of TLS indexes (%d allocated)", maxThreadLocalKeys)
	}
	debugAssert(key != UnsetThreadLocalKey, "allocated the unset TLS key sentinel")
	registerDestructor(key, destructor)
	return key
}

// DeleteThreadLocal releases a TLS key, clears its stale values on all live
// threads, and drops any destructor registration. Deleting a key that was
// never allocated is fatal misuse; a missing registry entry (key created
// with a nil destructor) is a silent no-op.
func DeleteThreadLocal(key ThreadLocalKey) {
	debugAssert(key != UnsetThreadLocalKey, "delete of unset TLS key")
	if !keyTable.release(key) {
		control.Fatalf("DeleteThreadLocal failed: key %d is not allocated", key)
	}
	threads.Range(func(_ ThreadID, st *threadState) bool {
		st.slots.clear(key)
		return true
	})
	unregisterDestructor(key)
}

// SetThreadLocal stores value in the calling thread's slot for key.
func SetThreadLocal(key ThreadLocalKey, value uintptr) {
	debugAssert(key != UnsetThreadLocalKey, "set on unset TLS key")
	if !keyTable.isAlive(key) {
		control.Fatalf("SetThreadLocal failed: key %d is not allocated", key)
	}
	currentState().slots.set(key, value)
}

// GetThreadLocal reads the calling thread's slot for key; a slot never set
// on this thread reads as 0.
func GetThreadLocal(key ThreadLocalKey) uintptr {
	debugAssert(key != UnsetThreadLocalKey, "get on unset TLS key")
	if !keyTable.isAlive(key) {
		control.Fatalf("GetThreadLocal failed: key %d is not allocated", key)
	}
	return currentState().slots.get(key)
}
