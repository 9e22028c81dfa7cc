// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations, DTOs, and constants.

package api

import "time"

// ThreadStatus enumerates the lifecycle state of a managed thread.
type ThreadStatus int

const (
	ThreadUnknown ThreadStatus = iota
	ThreadStarting
	ThreadRunning
	ThreadExited
)

func (s ThreadStatus) String() string {
	switch s {
	case ThreadStarting:
		return "starting"
	case ThreadRunning:
		return "running"
	case ThreadExited:
		return "exited"
	default:
		return "unknown"
	}
}

// ThreadMetrics provides a standard layout for thread-layer statistics
// reporting.
type ThreadMetrics struct {
	LiveThreads    int
	StartedTotal   uint64
	FailedStarts   uint64
	TLSKeysInUse   int
	DestructorRuns uint64
	StartedAt      time.Time
}

// ServiceInfo exposes descriptive build- and runtime info for external tools.
type ServiceInfo struct {
	Name      string
	Version   string
	Build     string
	StartedAt time.Time
}
