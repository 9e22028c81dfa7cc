// control/flags.go
// Author: momentics <momentics@gmail.com>
//
// VM-wide tunables consumed by the OS-thread layer. The values live in the
// process-wide ConfigStore and are mirrored into atomics so the hot paths
// (thread start) read them without taking the store lock.

package control

import (
	"math"
	"sync/atomic"
)

// UnsetThreadPriority is the sentinel meaning "leave the OS default priority".
const UnsetThreadPriority = math.MinInt

// Tunable keys recognized by the thread layer.
const (
	KeyWorkerThreadPriority = "worker_thread_priority"
	KeyMaxConcurrentThreads = "max_concurrent_threads"
)

// DefaultMaxConcurrentThreads bounds how many managed threads may be live at
// once before Start reports resource exhaustion.
const DefaultMaxConcurrentThreads = 4096

// Flags is the process-wide tunable store.
var Flags = NewConfigStore()

var (
	workerThreadPriority atomic.Int64
	maxConcurrentThreads atomic.Int64
)

func init() {
	workerThreadPriority.Store(UnsetThreadPriority)
	maxConcurrentThreads.Store(DefaultMaxConcurrentThreads)
	Flags.OnReload(reloadThreadTunables)
}

func reloadThreadTunables() {
	workerThreadPriority.Store(int64(Flags.GetInt(KeyWorkerThreadPriority, UnsetThreadPriority)))
	maxConcurrentThreads.Store(int64(Flags.GetInt(KeyMaxConcurrentThreads, DefaultMaxConcurrentThreads)))
}

// WorkerThreadPriority returns the scheduling priority new worker threads
// should apply, or UnsetThreadPriority when the OS default is to be kept.
func WorkerThreadPriority() int {
	return int(workerThreadPriority.Load())
}

// SetWorkerThreadPriority updates the worker priority tunable.
func SetWorkerThreadPriority(priority int) {
	Flags.Set(KeyWorkerThreadPriority, priority)
}

// MaxConcurrentThreads returns the live-thread budget for the launcher.
func MaxConcurrentThreads() int {
	return int(maxConcurrentThreads.Load())
}
