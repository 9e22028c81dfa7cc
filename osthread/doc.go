// File: osthread/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package osthread is the native-thread abstraction layer of the
// hioload-threads runtime core. It spawns dedicated OS threads (goroutines
// locked to their thread for life), applies scheduling priority and display
// names, tracks a bounded stack budget, and provides keyed thread-local
// storage with destructors that are guaranteed to run at thread exit.
//
// Go exposes no keyed native TLS on any platform, so the destructor sweep is
// driven by a thread-detach hook fired from the start trampoline, backed by
// a mutex-guarded registry of (key, destructor) pairs with an explicit
// Init/Cleanup lifecycle. Priority, naming, trace identifiers, stack bounds,
// and profiling-signal handling keep real per-platform implementations in
// _linux/_windows/_stub build-tag files.
package osthread
