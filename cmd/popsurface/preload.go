package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/popsurface/internal/lifecycle"
	"github.com/1broseidon/popsurface/internal/media"
	"github.com/1broseidon/popsurface/internal/preload"
	"github.com/1broseidon/popsurface/internal/task"
)

// runPreload warms the media cache once and reports how much loaded. It
// needs no X server; only decoding work happens.
func runPreload(args []string) int {
	fs := flag.NewFlagSet("preload", flag.ExitOnError)
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

	exec := task.NewExecutor(cfg.Workers, logger)
	pre := preload.New(exec, cfg.Preload.SampleSize, cfg.Preload.CacheSize, logger)
	manager := lifecycle.NewManager(exec, nil, nil, pre, logger)
	defer manager.Cleanup()

	loaded := make(chan int, 1)
	pre.Preload(library.All(), media.NewLoader(cfg.Display.MaxWidth, cfg.Display.MaxHeight),
		func(results []media.Handle) {
			loaded <- len(results)
		})

	fmt.Printf("preloaded %d of %d media files\n", <-loaded, library.Count())
	return 0
}
