// File: osthread/exithook.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread/process detach hook. This is the analog of a loader-invoked TLS
// callback: all real logic stays in the registry sweep, the hook body only
// checks the suppression flag and the detach reason. The trampoline fires
// it on thread detach; control.Shutdown fires the process-detach pass.

package osthread

import (
	"sync/atomic"

	"github.com/momentics/hioload-threads/control"
)

type detachReason int32

const (
	reasonThreadAttach detachReason = iota
	reasonThreadDetach
	reasonProcessDetach
)

// runTLSDestructors suppresses destructor sweeps when cleared. Flipped off
// during deliberate shutdown sequencing so late detaches cannot touch state
// that is already torn down.
var runTLSDestructors atomic.Bool

func init() {
	runTLSDestructors.Store(true)
	control.RegisterShutdownHook(func() {
		onThreadExit(reasonProcessDetach, currentState().slots)
		SetRunTLSDestructors(false)
	})
}

// SetRunTLSDestructors toggles the destructor-sweep suppression flag.
func SetRunTLSDestructors(run bool) {
	runTLSDestructors.Store(run)
}

// onThreadExit is the detach hook proper.
func onThreadExit(reason detachReason, slots *tlsSlots) {
	if !runTLSDestructors.Load() {
		return
	}
	if reason != reasonThreadDetach && reason != reasonProcessDetach {
		return
	}
	runDestructors(slots)
}
