// control/hotreload.go
// Manages global reload and shutdown hooks. Shutdown hooks let the embedder
// sequence teardown (e.g. suppressing TLS destructor sweeps) without this
// package depending on the thread layer.

package control

import "sync"

var (
	hookMu        sync.Mutex
	reloadHooks   []func()
	shutdownHooks []func()
)

// RegisterReloadHook adds a new component reload listener.
func RegisterReloadHook(fn func()) {
	hookMu.Lock()
	defer hookMu.Unlock()
	reloadHooks = append(reloadHooks, fn)
}

// RegisterShutdownHook adds a listener invoked by Shutdown, in registration
// order.
func RegisterShutdownHook(fn func()) {
	hookMu.Lock()
	defer hookMu.Unlock()
	shutdownHooks = append(shutdownHooks, fn)
}

// TriggerReload invokes all reload hooks synchronously.
func TriggerReload() {
	hookMu.Lock()
	hooks := append([]func(){}, reloadHooks...)
	hookMu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// Shutdown runs all registered shutdown hooks once, in order.
func Shutdown() {
	hookMu.Lock()
	hooks := shutdownHooks
	shutdownHooks = nil
	hookMu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}
