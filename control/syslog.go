// control/syslog.go
// Author: momentics <momentics@gmail.com>
//
// Process diagnostic sink. All thread-layer diagnostics funnel through here
// so embedders can redirect them; Fatalf is the unrecoverable-error path and
// never returns.

package control

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var (
	logMu  sync.RWMutex
	logger log.Logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

	// exit is swapped out only in tests of non-fatal paths; the production
	// value must terminate the process.
	exit = os.Exit
)

// SetLogger redirects the diagnostic sink.
func SetLogger(l log.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	logger = l
}

func sink() log.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}

// Print emits an informational diagnostic as logfmt key/value pairs.
func Print(msg string, keyvals ...any) {
	_ = level.Info(sink()).Log(append([]any{"msg", msg}, keyvals...)...)
}

// PrintErr emits an error-level diagnostic.
func PrintErr(msg string, keyvals ...any) {
	_ = level.Error(sink()).Log(append([]any{"msg", msg}, keyvals...)...)
}

// Fatalf reports an unrecoverable condition (OS resource exhaustion or API
// misuse) and terminates the process. Callers throughout the thread layer
// assume it never returns.
func Fatalf(format string, args ...any) {
	_ = level.Error(sink()).Log("fatal", fmt.Sprintf(format, args...))
	exit(70)
	panic("unreachable")
}
