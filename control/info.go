// control/info.go
// Author: momentics <momentics@gmail.com>
//
// Build and runtime identity of the embedding process.

package control

import (
	"time"

	"github.com/momentics/hioload-threads/api"
)

// Build identity. Version and Build are overridable at link time via
// -ldflags "-X".
var (
	ServiceName = "hioload-threads"
	Version     = "dev"
	Build       = "unknown"
)

var serviceStartedAt = time.Now()

// Info returns the descriptive record external tools report alongside the
// metrics snapshot.
func Info() api.ServiceInfo {
	return api.ServiceInfo{
		Name:      ServiceName,
		Version:   Version,
		Build:     Build,
		StartedAt: serviceStartedAt,
	}
}
