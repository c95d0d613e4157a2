package surface

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultMaxSurfaces bounds how many surfaces may be shown at once.
const DefaultMaxSurfaces = 5

type tracked struct {
	handle  Handle
	shownAt time.Time
}

// Tracker records the surfaces currently on screen and enforces an upper
// bound by retiring the oldest surface first. Retired surfaces go back to
// the pool when it has room and are destroyed otherwise.
type Tracker struct {
	pool   *Pool
	logger *slog.Logger
	max    int

	mu      sync.Mutex
	entries []tracked // append order, oldest first
}

// NewTracker creates a tracker that retires surfaces through pool. A
// non-positive max falls back to DefaultMaxSurfaces.
func NewTracker(pool *Pool, max int, logger *slog.Logger) *Tracker {
	if max <= 0 {
		max = DefaultMaxSurfaces
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{pool: pool, logger: logger, max: max}
}

// Add registers a shown surface. If the bound is exceeded, the oldest
// tracked surfaces are retired until the count is back within it.
func (t *Tracker) Add(h Handle) {
	if h == nil {
		return
	}
	var evicted []Handle
	t.mu.Lock()
	t.entries = append(t.entries, tracked{handle: h, shownAt: time.Now()})
	for len(t.entries) > t.max {
		evicted = append(evicted, t.entries[0].handle)
		t.entries = t.entries[1:]
	}
	t.mu.Unlock()

	for _, old := range evicted {
		t.logger.Debug("retiring oldest surface, over limit", "limit", t.max)
		t.retire(old)
	}
}

// Remove untracks a surface and retires it. It reports whether the surface
// was being tracked.
func (t *Tracker) Remove(h Handle) bool {
	t.mu.Lock()
	found := false
	for i, e := range t.entries {
		if e.handle == h {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			found = true
			break
		}
	}
	t.mu.Unlock()

	if found {
		t.retire(h)
	}
	return found
}

// Count returns the number of surfaces currently tracked.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Clear retires every tracked surface.
func (t *Tracker) Clear() {
	t.mu.Lock()
	entries := t.entries
	t.entries = nil
	t.mu.Unlock()

	for _, e := range entries {
		t.retire(e.handle)
	}
}

// retire hands a surface back to the pool, destroying it when the pool
// refuses. Failures stay contained here.
func (t *Tracker) retire(h Handle) {
	if t.pool != nil && t.pool.Release(h) {
		return
	}
	if err := h.Destroy(); err != nil {
		t.logger.Warn("destroying retired surface failed", "error", err)
	}
}
