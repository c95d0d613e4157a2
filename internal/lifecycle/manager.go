// Package lifecycle owns the one sanctioned teardown path for the popup
// subsystem. Callers must not destroy surfaces or the executor directly.
package lifecycle

import (
	"log/slog"

	"github.com/1broseidon/popsurface/internal/preload"
	"github.com/1broseidon/popsurface/internal/surface"
	"github.com/1broseidon/popsurface/internal/task"
)

// Manager coordinates graceful shutdown of the executor, the surface pool,
// and everything tracking them.
type Manager struct {
	exec      *task.Executor
	pool      *surface.Pool
	tracker   *surface.Tracker
	preloader *preload.Preloader
	logger    *slog.Logger
}

// NewManager wires a manager over the given components. Any of them may be
// nil; Cleanup skips what is absent.
func NewManager(exec *task.Executor, pool *surface.Pool, tracker *surface.Tracker, preloader *preload.Preloader, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		exec:      exec,
		pool:      pool,
		tracker:   tracker,
		preloader: preloader,
		logger:    logger,
	}
}

// Cleanup cancels tasks that have not started, shuts down the executor
// without waiting on running work, retires every shown surface, and
// destroys the idle pool. It is idempotent and never fails from the
// caller's point of view; internal failures are logged and swallowed.
func (m *Manager) Cleanup() {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("panic during cleanup recovered", "panic", r)
		}
	}()

	if m.exec != nil {
		if n := m.exec.CancelPending(); n > 0 {
			m.logger.Info("canceled unstarted tasks", "count", n)
		}
		// Running tasks are not interrupted; they finish on their own
		// after the executor stops accepting work.
		m.exec.Shutdown(false)
	}

	if m.tracker != nil {
		m.tracker.Clear()
	}
	if m.preloader != nil {
		m.preloader.PurgeCache()
	}
	if m.pool != nil {
		m.pool.Drain()
	}
	m.logger.Info("popup subsystem cleaned up")
}
