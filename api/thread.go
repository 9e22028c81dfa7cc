// File: api/thread.go
// Author: momentics <momentics@gmail.com>
//
// Contracts between the OS-thread layer and the higher-level thread registry.

package api

// ThreadStartFunc is the entry point a spawned thread runs. The parameter is
// an opaque word handed through Start unmodified.
type ThreadStartFunc func(parameter uintptr)

// ThreadDestructor is invoked with a thread's current value for a TLS key
// when that thread exits.
type ThreadDestructor func(value uintptr)

// ThreadObject is the capability set this layer needs from the per-thread
// runtime object owned by the registry above: no-arg construction (via
// ThreadObjectFactory), a settable name, and an identity accessor.
type ThreadObject interface {
	SetName(name string)
	ID() uint64
}

// ThreadObjectFactory constructs the per-thread object installed by the
// start trampoline. Returning nil makes the new thread exit without running
// its entry function.
type ThreadObjectFactory func() ThreadObject
