package task

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// DefaultWorkers is the worker count used when none is configured.
const DefaultWorkers = 4

// Executor is a fixed-size worker pool for media load and processing work.
// Submission never blocks the caller; queued work is drained by the worker
// goroutines. Every submitted task is tracked in a pending set until it
// reaches a terminal state, so teardown can cancel work that has not
// started yet.
type Executor struct {
	logger *slog.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []*Handle
	pending map[uuid.UUID]*Handle
	closed  bool

	workers sync.WaitGroup
}

// NewExecutor starts an executor with the given number of worker
// goroutines. A non-positive count falls back to DefaultWorkers.
func NewExecutor(workers int, logger *slog.Logger) *Executor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Executor{
		logger:  logger,
		pending: make(map[uuid.UUID]*Handle),
	}
	e.cond = sync.NewCond(&e.mu)
	for i := 0; i < workers; i++ {
		e.workers.Add(1)
		go e.worker()
	}
	return e
}

// Submit enqueues fn for asynchronous execution and returns immediately.
// The handle joins the pending set at submission and is removed by a
// completion continuation, whatever the outcome. Submit fails only after
// Shutdown, with ErrExecutorClosed.
func (e *Executor) Submit(fn Func) (*Handle, error) {
	h := newHandle(fn)
	// Registered before enqueue so the removal fires even if a worker
	// finishes the task immediately. Map deletion keeps it idempotent.
	h.OnDone(func(h *Handle) {
		e.mu.Lock()
		delete(e.pending, h.id)
		e.mu.Unlock()
	})

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrExecutorClosed
	}
	e.queue = append(e.queue, h)
	e.pending[h.id] = h
	e.mu.Unlock()

	e.cond.Signal()
	return h, nil
}

// PendingCount returns the number of tasks that have not yet reached a
// terminal state.
func (e *Executor) PendingCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// CancelPending cancels every tracked task that has not started running and
// returns how many were canceled. Running tasks are left to finish.
func (e *Executor) CancelPending() int {
	e.mu.Lock()
	handles := make([]*Handle, 0, len(e.pending))
	for _, h := range e.pending {
		handles = append(handles, h)
	}
	e.mu.Unlock()

	// Cancellation fires the pending-set continuation, which takes the
	// executor lock, so it must happen outside the critical section.
	n := 0
	for _, h := range handles {
		if h.Cancel() {
			n++
		}
	}
	return n
}

// Shutdown stops the executor from accepting new work. Workers drain the
// remaining queue and exit. If wait is true, Shutdown blocks until all
// workers have returned. Safe to call more than once.
func (e *Executor) Shutdown(wait bool) {
	e.mu.Lock()
	already := e.closed
	e.closed = true
	e.mu.Unlock()

	if !already {
		e.cond.Broadcast()
	}
	if wait {
		e.workers.Wait()
	}
}

func (e *Executor) worker() {
	defer e.workers.Done()
	for {
		e.mu.Lock()
		for len(e.queue) == 0 && !e.closed {
			e.cond.Wait()
		}
		if len(e.queue) == 0 {
			e.mu.Unlock()
			return
		}
		h := e.queue[0]
		e.queue = e.queue[1:]
		e.mu.Unlock()

		e.run(h)
	}
}

// run executes one task. A panic inside the submitted function is captured
// on the handle as an error; it never takes down the worker.
func (e *Executor) run(h *Handle) {
	if !h.begin() {
		// Canceled before any worker picked it up.
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("task panicked", "task", h.id, "panic", r)
			h.resolve(nil, fmt.Errorf("task panic: %v", r))
		}
	}()
	value, err := h.fn()
	h.resolve(value, err)
}
