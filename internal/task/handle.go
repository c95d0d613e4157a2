package task

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// State describes where a task is in its lifecycle.
type State int

const (
	StatePending State = iota
	StateRunning
	StateDone
	StateCanceled
)

var (
	// ErrCanceled is reported by handles whose task was canceled before it started.
	ErrCanceled = errors.New("task canceled before start")

	// ErrExecutorClosed is returned by Submit once the executor has shut down.
	ErrExecutorClosed = errors.New("executor is shut down")
)

// Func is a unit of work submitted to an Executor.
type Func func() (any, error)

// Handle represents one asynchronous unit of work. Its outcome (value,
// error, or cancellation) is unknown at submission time and resolved later;
// callers observe completion through Done, Wait, or OnDone.
type Handle struct {
	id uuid.UUID
	fn Func

	mu        sync.Mutex
	state     State
	value     any
	err       error
	done      chan struct{}
	callbacks []func(*Handle)
}

func newHandle(fn Func) *Handle {
	return &Handle{
		id:   uuid.New(),
		fn:   fn,
		done: make(chan struct{}),
	}
}

// ID returns the handle's unique identifier.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// State returns the handle's current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Done returns a channel closed when the task reaches a terminal state.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the task reaches a terminal state or ctx is done.
func (h *Handle) Wait(ctx context.Context) (any, error) {
	select {
	case <-h.done:
		return h.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the task's value and error. Only meaningful once Done is
// closed; before that it reports the zero value and a nil error.
func (h *Handle) Result() (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.value, h.err
}

// Err returns the task's error, ErrCanceled for canceled tasks, or nil.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Cancel marks a not-yet-started task as canceled and reports whether it
// took effect. Tasks that are already running are left to finish; there is
// no mid-task interruption.
func (h *Handle) Cancel() bool {
	h.mu.Lock()
	if h.state != StatePending {
		h.mu.Unlock()
		return false
	}
	h.state = StateCanceled
	h.err = ErrCanceled
	cbs := h.callbacks
	h.callbacks = nil
	h.mu.Unlock()

	// Continuations run before done closes, so a caller woken by Wait
	// observes their effects (pending-set removal in particular).
	for _, cb := range cbs {
		cb(h)
	}
	close(h.done)
	return true
}

// OnDone registers fn to run when the task reaches a terminal state. If the
// task is already terminal, fn runs immediately on the calling goroutine;
// otherwise it runs on the worker goroutine that completes the task.
func (h *Handle) OnDone(fn func(*Handle)) {
	h.mu.Lock()
	if h.state == StateDone || h.state == StateCanceled {
		h.mu.Unlock()
		fn(h)
		return
	}
	h.callbacks = append(h.callbacks, fn)
	h.mu.Unlock()
}

// begin transitions the handle from pending to running. It reports false if
// the task was canceled before a worker picked it up.
func (h *Handle) begin() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StatePending {
		return false
	}
	h.state = StateRunning
	return true
}

// resolve records the task's outcome and fires registered callbacks.
// Calling resolve on an already-terminal handle is a no-op.
func (h *Handle) resolve(value any, err error) {
	h.mu.Lock()
	if h.state == StateDone || h.state == StateCanceled {
		h.mu.Unlock()
		return
	}
	h.state = StateDone
	h.value = value
	h.err = err
	cbs := h.callbacks
	h.callbacks = nil
	h.mu.Unlock()

	// Same ordering as Cancel: continuations, then the done signal.
	for _, cb := range cbs {
		cb(h)
	}
	close(h.done)
}
