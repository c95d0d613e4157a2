package surface

import (
	"log/slog"
	"sync"
)

// DefaultMaxPoolSize bounds how many idle surfaces are retained for reuse.
const DefaultMaxPoolSize = 5

// Pool keeps a bounded LIFO stack of idle surfaces. Surface creation is
// expensive (window allocation plus style flag setup) relative to teardown,
// so reuse amortizes the cost while the cap keeps resource usage flat under
// bursty load.
type Pool struct {
	factory Factory
	logger  *slog.Logger
	max     int

	mu   sync.Mutex
	idle []Handle
}

// NewPool creates a pool backed by factory. A non-positive max falls back
// to DefaultMaxPoolSize.
func NewPool(factory Factory, max int, logger *slog.Logger) *Pool {
	if max <= 0 {
		max = DefaultMaxPoolSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{factory: factory, logger: logger, max: max}
}

// Acquire returns the most recently released idle surface, or creates a new
// one when the pool is empty. It never blocks; factory failures propagate
// to the caller.
func (p *Pool) Acquire() (Handle, error) {
	p.mu.Lock()
	if n := len(p.idle); n > 0 {
		h := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return h, nil
	}
	p.mu.Unlock()
	return p.factory.CreateSurface()
}

// Release clears the surface's content, hides it, and returns it to the
// idle stack. It reports false when the pool is at capacity or disposal
// failed; in both cases ownership stays with the caller, who should destroy
// the surface. Disposal failures are contained here and never propagate.
func (p *Pool) Release(h Handle) bool {
	if h == nil {
		return false
	}
	p.mu.Lock()
	full := len(p.idle) >= p.max
	p.mu.Unlock()
	if full {
		return false
	}

	if err := h.ClearContent(); err != nil {
		p.logger.Warn("surface content disposal failed, not pooling", "error", err)
		return false
	}
	if err := h.Hide(); err != nil {
		p.logger.Warn("hiding surface failed, not pooling", "error", err)
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// Capacity may have been consumed while the surface was being cleared.
	if len(p.idle) >= p.max {
		return false
	}
	p.idle = append(p.idle, h)
	return true
}

// Idle returns the number of surfaces currently held for reuse.
func (p *Pool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// Drain destroys every idle surface and empties the pool. Destruction
// failures are logged and swallowed; teardown must not fail. Safe to call
// repeatedly.
func (p *Pool) Drain() {
	p.mu.Lock()
	idle := p.idle
	p.idle = nil
	p.mu.Unlock()

	for _, h := range idle {
		if err := h.Destroy(); err != nil {
			p.logger.Warn("destroying pooled surface failed", "error", err)
		}
	}
}
