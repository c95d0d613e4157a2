// Package preload performs speculative background loading of media ahead
// of display need. Preloading is a heuristic warm-up, not a completeness
// guarantee: only a bounded sample of the requested paths is loaded.
package preload

import (
	"log/slog"
	"math/rand"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/1broseidon/popsurface/internal/media"
	"github.com/1broseidon/popsurface/internal/task"
)

const (
	// DefaultSampleSize bounds how many paths one Preload call loads.
	DefaultSampleSize = 10
	// DefaultCacheSize bounds the retained loaded-media cache.
	DefaultCacheSize = 32
)

// Callback receives the successfully loaded media once a whole preload
// group has resolved. It runs on a worker goroutine, not the caller's; do
// not touch interactive-only resources from it.
type Callback func([]media.Handle)

// Preloader samples media paths and loads them through a shared executor,
// caching results for later display.
type Preloader struct {
	exec       *task.Executor
	cache      *lru.Cache[string, media.Handle]
	sampleSize int
	logger     *slog.Logger
}

// New creates a preloader submitting work to exec. Non-positive sizes fall
// back to the defaults.
func New(exec *task.Executor, sampleSize, cacheSize int, logger *slog.Logger) *Preloader {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	// lru.New only fails for non-positive sizes, which are normalized above.
	cache, _ := lru.New[string, media.Handle](cacheSize)
	return &Preloader{
		exec:       exec,
		cache:      cache,
		sampleSize: sampleSize,
		logger:     logger,
	}
}

// Preload samples up to sampleSize of the given paths uniformly without
// replacement, submits one load job per sampled path, and invokes callback
// exactly once after every submitted job has reached a terminal state.
// Failed, canceled, or rejected loads are logged and omitted from the
// callback's results; the result order follows submission order. An empty
// paths slice invokes callback synchronously with an empty slice and
// submits nothing.
func (p *Preloader) Preload(paths []string, loader media.Loader, callback Callback) {
	if len(paths) == 0 {
		if callback != nil {
			callback([]media.Handle{})
		}
		return
	}

	sample := p.samplePaths(paths)
	handles := make([]*task.Handle, 0, len(sample))
	for _, path := range sample {
		h, err := p.exec.Submit(p.loadJob(path, loader))
		if err != nil {
			p.logger.Warn("preload submission rejected", "path", path, "error", err)
			continue
		}
		handles = append(handles, h)
	}

	if len(handles) == 0 {
		// Nothing was submitted (executor shut down); report emptiness
		// rather than dropping the callback.
		if callback != nil {
			callback([]media.Handle{})
		}
		return
	}

	// Counting barrier: the aggregate fires only when the last handle of
	// the group reaches a terminal state, whichever order they finish in.
	var remaining atomic.Int64
	remaining.Store(int64(len(handles)))
	for _, h := range handles {
		h.OnDone(func(*task.Handle) {
			if remaining.Add(-1) != 0 {
				return
			}
			results := p.collect(handles)
			if callback != nil {
				callback(results)
			}
		})
	}
}

// Cached returns a previously loaded handle for path, if still retained.
func (p *Preloader) Cached(path string) (media.Handle, bool) {
	return p.cache.Get(path)
}

// PurgeCache drops all cached media.
func (p *Preloader) PurgeCache() {
	p.cache.Purge()
}

func (p *Preloader) loadJob(path string, loader media.Loader) task.Func {
	return func() (any, error) {
		if cached, ok := p.cache.Get(path); ok {
			return cached, nil
		}
		m, err := loader(path)
		if err != nil {
			return nil, err
		}
		if m != nil {
			p.cache.Add(path, m)
		}
		return m, nil
	}
}

// samplePaths picks min(sampleSize, len(paths)) paths uniformly without
// replacement.
func (p *Preloader) samplePaths(paths []string) []string {
	n := min(p.sampleSize, len(paths))
	sample := make([]string, 0, n)
	for _, j := range rand.Perm(len(paths))[:n] {
		sample = append(sample, paths[j])
	}
	return sample
}

// collect gathers successful results in submission order. Per-handle
// failures are logged and skipped; they never abort the rest of the group.
func (p *Preloader) collect(handles []*task.Handle) []media.Handle {
	results := make([]media.Handle, 0, len(handles))
	for _, h := range handles {
		if h.State() != task.StateDone {
			p.logger.Debug("preload task canceled", "task", h.ID())
			continue
		}
		value, err := h.Result()
		if err != nil {
			p.logger.Warn("preload task failed", "task", h.ID(), "error", err)
			continue
		}
		m, ok := value.(media.Handle)
		if !ok || m == nil {
			p.logger.Warn("preload task produced no media", "task", h.ID())
			continue
		}
		results = append(results, m)
	}
	return results
}
