// Package display drives the popup loop: pick a media path, load it off
// the interactive path, and show it on a pooled surface.
package display

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/1broseidon/popsurface/internal/media"
	"github.com/1broseidon/popsurface/internal/preload"
	"github.com/1broseidon/popsurface/internal/surface"
	"github.com/1broseidon/popsurface/internal/task"
)

// Placeable is implemented by surfaces that can be moved and sized. The
// X11 surface implements it; test doubles may too.
type Placeable interface {
	MoveResize(x, y, width, height int)
}

// Config holds the runner's tuning knobs.
type Config struct {
	// Interval is the delay between popups.
	Interval time.Duration
	// Duration is how long each popup stays on screen.
	Duration time.Duration
	// DefaultWidth and DefaultHeight size surfaces for media without
	// intrinsic dimensions (videos).
	DefaultWidth  int
	DefaultHeight int
	Logger        *slog.Logger
}

// Runner periodically shows a randomly chosen media item on a pooled
// surface. Loading happens on the shared executor; only the show step
// touches the surface.
type Runner struct {
	cfg       Config
	pool      *surface.Pool
	tracker   *surface.Tracker
	layout    *surface.Layout
	exec      *task.Executor
	preloader *preload.Preloader
	library   *media.Library
	loader    media.Loader
}

// NewRunner wires a runner over the popup subsystem.
func NewRunner(cfg Config, pool *surface.Pool, tracker *surface.Tracker, layout *surface.Layout, exec *task.Executor, preloader *preload.Preloader, library *media.Library, loader media.Loader) *Runner {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.Duration <= 0 {
		cfg.Duration = 10 * time.Second
	}
	if cfg.DefaultWidth <= 0 {
		cfg.DefaultWidth = 640
	}
	if cfg.DefaultHeight <= 0 {
		cfg.DefaultHeight = 480
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Runner{
		cfg:       cfg,
		pool:      pool,
		tracker:   tracker,
		layout:    layout,
		exec:      exec,
		preloader: preloader,
		library:   library,
		loader:    loader,
	}
}

// Run starts the popup loop. Blocks until ctx is cancelled. Teardown of
// surfaces and the executor belongs to the lifecycle manager, not here.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	r.cfg.Logger.Info("popup loop started",
		"interval", r.cfg.Interval,
		"media", r.library.Count())

	for {
		select {
		case <-ctx.Done():
			r.cfg.Logger.Info("popup loop stopped")
			return
		case <-ticker.C:
			r.showOne(ctx)
		}
	}
}

// showOne submits one load job and, once it resolves, presents the result.
// A failure at any step skips this popup; the loop goes on.
func (r *Runner) showOne(ctx context.Context) {
	paths := r.library.All()
	if len(paths) == 0 {
		return
	}
	path := paths[rand.Intn(len(paths))]

	h, err := r.exec.Submit(func() (any, error) {
		if cached, ok := r.preloader.Cached(path); ok {
			return cached, nil
		}
		return r.loader(path)
	})
	if err != nil {
		r.cfg.Logger.Warn("load submission rejected", "path", path, "error", err)
		return
	}
	h.OnDone(func(h *task.Handle) {
		if ctx.Err() != nil {
			return
		}
		value, err := h.Result()
		if err != nil {
			r.cfg.Logger.Warn("media load failed", "path", path, "error", err)
			return
		}
		m, ok := value.(media.Handle)
		if !ok || m == nil {
			return
		}
		r.present(ctx, m)
	})
}

// present acquires a surface, positions it for the media, shows it, and
// schedules its removal.
func (r *Runner) present(ctx context.Context, m media.Handle) {
	defer func() {
		if rec := recover(); rec != nil {
			r.cfg.Logger.Error("panic while presenting recovered", "panic", rec)
		}
	}()

	s, err := r.pool.Acquire()
	if err != nil {
		r.cfg.Logger.Error("surface creation failed", "error", err)
		return
	}

	w, h := r.contentSize(m)
	placement, err := r.layout.PositionSurface(w, h)
	if err != nil {
		r.cfg.Logger.Error("surface placement failed", "error", err)
		r.retire(s)
		return
	}
	if p, ok := s.(Placeable); ok {
		p.MoveResize(placement.X, placement.Y, w, h)
	}
	if err := s.Show(); err != nil {
		r.cfg.Logger.Warn("showing surface failed", "error", err)
		r.retire(s)
		return
	}
	r.tracker.Add(s)
	r.cfg.Logger.Debug("popup shown",
		"path", m.Path(),
		"kind", m.Kind(),
		"monitor", placement.Monitor,
		"x", placement.X,
		"y", placement.Y)

	time.AfterFunc(r.cfg.Duration, func() {
		// The lifecycle manager owns teardown once the loop stops.
		if ctx.Err() != nil {
			return
		}
		r.tracker.Remove(s)
	})
}

func (r *Runner) contentSize(m media.Handle) (int, int) {
	switch v := m.(type) {
	case *media.Image:
		b := v.Bounds()
		return b.Dx(), b.Dy()
	case *media.GIF:
		if len(v.Frames) > 0 {
			b := v.Frames[0].Bounds()
			return b.Dx(), b.Dy()
		}
	}
	return r.cfg.DefaultWidth, r.cfg.DefaultHeight
}

func (r *Runner) retire(s surface.Handle) {
	if r.pool.Release(s) {
		return
	}
	if err := s.Destroy(); err != nil {
		r.cfg.Logger.Warn("destroying surface failed", "error", err)
	}
}
