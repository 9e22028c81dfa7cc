// File: workers/handles.go
// Author: momentics <momentics@gmail.com>
//
// Thread entry points receive a single opaque word. Worker context crosses
// that boundary through a handle table rather than a closure, keeping the
// launch contract identical for every caller.

package workers

import "sync"

type workerCtx struct {
	pool *Pool
	id   int
}

var (
	handleMu   sync.Mutex
	handles    = make(map[uintptr]*workerCtx)
	nextHandle uintptr
)

func registerWorker(p *Pool, id int) uintptr {
	handleMu.Lock()
	defer handleMu.Unlock()
	nextHandle++
	handles[nextHandle] = &workerCtx{pool: p, id: id}
	return nextHandle
}

func releaseWorker(handle uintptr) *workerCtx {
	handleMu.Lock()
	defer handleMu.Unlock()
	ctx := handles[handle]
	delete(handles, handle)
	return ctx
}

// workerEntry is the osthread entry point for every pool worker.
func workerEntry(parameter uintptr) {
	ctx := releaseWorker(parameter)
	if ctx == nil {
		return
	}
	ctx.pool.run(ctx.id)
}
