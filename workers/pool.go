// File: workers/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker pool running each worker on a dedicated managed OS thread. Tasks
// flow through a FIFO queue guarded by a mutex and condition variable;
// workers park on the condition until work or close arrives.

package workers

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-threads/affinity"
	"github.com/momentics/hioload-threads/api"
	"github.com/momentics/hioload-threads/control"
	"github.com/momentics/hioload-threads/osthread"
)

// Task is a unit of work to execute.
type Task func()

// Config shapes a Pool.
type Config struct {
	// Workers is the number of dedicated threads; defaults to 1 when <= 0.
	Workers int
	// Name prefixes the worker thread names ("name-0", "name-1", ...).
	Name string
	// QueueLimit bounds pending tasks; 0 means unbounded.
	QueueLimit int
	// PinWorkers spreads workers across CPUs via the affinity layer.
	// Pinning failure is reported and ignored.
	PinWorkers bool
}

// Pool is a fixed set of managed worker threads draining a shared queue.
type Pool struct {
	cfg Config

	mu     sync.Mutex
	cond   *sync.Cond
	tasks  *queue.Queue
	closed bool

	joins   chan osthread.ThreadJoinID
	started int

	workerKey osthread.ThreadLocalKey

	submitted   atomic.Int64
	completed   atomic.Int64
	workerExits atomic.Int64
}

// NewPool spawns cfg.Workers managed threads. The thread-local registry
// must be initialized first: each worker holds a TLS slot whose destructor
// records the worker's exit.
func NewPool(cfg Config) (*Pool, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Name == "" {
		cfg.Name = "worker"
	}
	p := &Pool{
		cfg:   cfg,
		tasks: queue.New(),
		joins: make(chan osthread.ThreadJoinID, cfg.Workers),
	}
	p.cond = sync.NewCond(&p.mu)
	// The sweep visits every registered key on every exiting thread; only
	// threads that set the slot are pool workers.
	p.workerKey = osthread.CreateThreadLocal(func(value uintptr) {
		if value != 0 {
			p.workerExits.Add(1)
		}
	})

	for i := 0; i < cfg.Workers; i++ {
		name := fmt.Sprintf("%s-%d", cfg.Name, i)
		handle := registerWorker(p, i)
		if status := osthread.Start(name, workerEntry, handle); status != 0 {
			releaseWorker(handle)
			p.Close()
			return nil, api.NewError(api.ErrCodeResourceExhausted,
				"workers: thread start failed").WithContext("status", status)
		}
		p.started++
	}
	return p, nil
}

// Submit enqueues a task, failing once the pool is closed or the queue
// limit is reached.
func (p *Pool) Submit(task Task) error {
	if task == nil {
		return api.ErrInvalidArgument
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return api.ErrPoolClosed
	}
	if p.cfg.QueueLimit > 0 && p.tasks.Length() >= p.cfg.QueueLimit {
		return api.ErrResourceExhausted
	}
	p.tasks.Add(task)
	p.submitted.Add(1)
	p.cond.Signal()
	return nil
}

// Close drains remaining tasks, stops the workers, and joins every worker
// thread. Safe to call once; Submit fails afterwards.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cond.Broadcast()
	started := p.started
	p.mu.Unlock()

	for i := 0; i < started; i++ {
		osthread.Join(<-p.joins)
	}
	osthread.DeleteThreadLocal(p.workerKey)

	// Fold this pool's totals into the process registry. Accumulates
	// across pool lifetimes, unlike the per-pool Stats view.
	m := control.DefaultMetrics
	m.Add("workers.submitted_tasks", p.submitted.Load())
	m.Add("workers.completed_tasks", p.completed.Load())
	m.Add("workers.worker_exits", p.workerExits.Load())
}

// Stats returns basic pool metrics.
func (p *Pool) Stats() map[string]int64 {
	p.mu.Lock()
	pending := int64(p.tasks.Length())
	p.mu.Unlock()
	return map[string]int64{
		"submitted_tasks": p.submitted.Load(),
		"completed_tasks": p.completed.Load(),
		"pending_tasks":   pending,
		"worker_exits":    p.workerExits.Load(),
	}
}

// run is the main loop for one worker thread.
func (p *Pool) run(workerID int) {
	p.joins <- osthread.GetCurrentThreadJoinID(osthread.Current())

	if p.cfg.PinWorkers {
		if err := affinity.Pin(workerID); err != nil {
			control.PrintErr("workers: pinning failed", "worker", workerID, "err", err.Error())
		}
	}
	osthread.SetThreadLocal(p.workerKey, uintptr(workerID)+1)

	for {
		p.mu.Lock()
		for p.tasks.Length() == 0 && !p.closed {
			p.cond.Wait()
		}
		if p.tasks.Length() == 0 {
			p.mu.Unlock()
			return
		}
		task := p.tasks.Remove().(Task)
		p.mu.Unlock()
		p.runTask(task)
	}
}

// runTask executes one task, keeping the worker alive across panics.
func (p *Pool) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			control.PrintErr("workers: task panic", "panic", fmt.Sprint(r))
		}
		p.completed.Add(1)
	}()
	task()
}
