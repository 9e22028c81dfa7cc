// File: osthread/tlsdata.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread-local destructor registry: an ordered, mutex-guarded sequence of
// (key, destructor) pairs with an explicit Init/Cleanup lifecycle. The exit
// hook sweeps it for every detaching thread.

package osthread

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-threads/api"
)

type threadLocalEntry struct {
	key        ThreadLocalKey
	destructor api.ThreadDestructor
}

// threadLocalData is the registry singleton payload. It exists between
// InitThreadLocalData and CleanupThreadLocalData; every access outside that
// window is either a defensive no-op (destructor sweeps) or caller error.
type threadLocalData struct {
	mu      sync.Mutex
	entries []threadLocalEntry
}

var tlsData atomic.Pointer[threadLocalData]

// InitThreadLocalData allocates the registry. Must run before the first
// CreateThreadLocal with a destructor.
func InitThreadLocalData() {
	debugAssert(tlsData.Load() == nil, "thread-local registry initialized twice")
	tlsData.Store(&threadLocalData{})
}

// CleanupThreadLocalData tears the registry down during runtime shutdown.
// Key creation after this point must not occur.
func CleanupThreadLocalData() {
	tlsData.Store(nil)
}

// registerDestructor records (key, destructor) in insertion order. Keys
// without a destructor are not tracked.
func registerDestructor(key ThreadLocalKey, destructor api.ThreadDestructor) {
	if destructor == nil {
		// We only care about thread locals with destructors.
		return
	}
	d := tlsData.Load()
	debugAssert(d != nil, "TLS key %d created with destructor before registry init", key)
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if debugChecks {
		for _, entry := range d.entries {
			debugAssert(entry.key != key, "TLS key %d registered twice", key)
		}
	}
	d.entries = append(d.entries, threadLocalEntry{key: key, destructor: destructor})
}

// unregisterDestructor removes the entry for key. Absence is a silent no-op:
// keys created with a nil destructor were never registered.
func unregisterDestructor(key ThreadLocalKey) {
	d := tlsData.Load()
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, entry := range d.entries {
		if entry.key == key {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			return
		}
	}
}

// destructorCount reports the number of registered entries.
func destructorCount() int {
	d := tlsData.Load()
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// runDestructors invokes every registered destructor with the exiting
// thread's current value for its key, in registry insertion order, whether
// or not the value was ever set. The registry lock is held across the
// sweep: destructor bodies must not create or delete TLS keys.
//
// A thread can exit before the registry was ever initialized; that sweep is
// a safe no-op.
func runDestructors(slots *tlsSlots) {
	d := tlsData.Load()
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, entry := range d.entries {
		value := slots.get(entry.key)
		entry.destructor(value)
		destructorRuns.Add(1)
	}
}
