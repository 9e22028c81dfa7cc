// File: osthread/assert.go
// Author: momentics <momentics@gmail.com>
//
// Debug assertion helper. Assertions guard invariants that indicate caller
// bugs (double join issue, duplicate TLS registration); they compile to
// no-ops under the release build tag.

package osthread

import "github.com/momentics/hioload-threads/control"

func debugAssert(cond bool, format string, args ...any) {
	if !debugChecks || cond {
		return
	}
	control.Fatalf("assertion failed: "+format, args...)
}
