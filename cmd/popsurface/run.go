package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/popsurface/internal/display"
	"github.com/1broseidon/popsurface/internal/lifecycle"
	"github.com/1broseidon/popsurface/internal/media"
	"github.com/1broseidon/popsurface/internal/preload"
	"github.com/1broseidon/popsurface/internal/surface"
	"github.com/1broseidon/popsurface/internal/task"
	"github.com/1broseidon/popsurface/internal/x11"
)

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cfgPath := fs.String("config", "", "config file path")
	mediaDir := fs.String("media", "", "media directory (overrides config)")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *mediaDir != "" {
		cfg.MediaDir = *mediaDir
	}
	if cfg.MediaDir == "" {
		fmt.Fprintln(os.Stderr, "Error: no media directory configured (set media_dir or pass -media)")
		return 2
	}
	logger := newLogger(cfg.LogLevel)

	library, err := media.Scan(cfg.MediaDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if library.Count() == 0 {
		fmt.Fprintf(os.Stderr, "Error: no media found under %s\n", cfg.MediaDir)
		return 1
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to connect to X server: %v\n", err)
		return 1
	}
	defer conn.Close()

	monitors, err := conn.ActiveMonitors()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	rects := make([]surface.Rect, 0, len(monitors))
	for _, m := range monitors {
		rects = append(rects, surface.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height})
	}
	layout := surface.NewLayout(rects, time.Now().UnixNano())
	if len(cfg.Display.Monitors) > 0 {
		layout.SetActive(cfg.Display.Monitors)
	}

	factory := x11.NewFactory(conn, logger)
	pool := surface.NewPool(factory, cfg.Display.PoolSize, logger)
	tracker := surface.NewTracker(pool, cfg.Display.MaxSurfaces, logger)
	exec := task.NewExecutor(cfg.Workers, logger)
	pre := preload.New(exec, cfg.Preload.SampleSize, cfg.Preload.CacheSize, logger)
	manager := lifecycle.NewManager(exec, pool, tracker, pre, logger)
	defer manager.Cleanup()

	loader := media.NewLoader(cfg.Display.MaxWidth, cfg.Display.MaxHeight)
	pre.Preload(library.All(), loader, func(loaded []media.Handle) {
		logger.Info("media cache warmed", "count", len(loaded))
	})

	runner := display.NewRunner(display.Config{
		Interval: cfg.Interval(),
		Duration: cfg.Duration(),
		Logger:   logger,
	}, pool, tracker, layout, exec, pre, library, loader)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runner.Run(ctx)
	return 0
}
