// Package config loads popsurface's YAML configuration and applies
// defaults and sanity clamps.
package config

import (
	"time"
)

// Display tunes how popup surfaces appear and disappear.
type Display struct {
	// IntervalSeconds is the delay between popups while running.
	IntervalSeconds float64 `yaml:"interval_seconds"`
	// DurationSeconds is how long a popup stays on screen.
	DurationSeconds float64 `yaml:"duration_seconds"`
	// MaxSurfaces bounds how many popups may be visible at once.
	MaxSurfaces int `yaml:"max_surfaces"`
	// PoolSize bounds how many idle surfaces are kept for reuse.
	PoolSize int `yaml:"pool_size"`
	// MaxWidth and MaxHeight bound loaded image dimensions.
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
	// Monitors restricts popups to these monitor indices; empty means all.
	Monitors []int `yaml:"monitors"`
}

// Preload tunes the background warm-up of the media library.
type Preload struct {
	// SampleSize bounds how many paths one preload pass loads.
	SampleSize int `yaml:"sample_size"`
	// CacheSize bounds the retained loaded-media cache.
	CacheSize int `yaml:"cache_size"`
}

// Config is the root configuration.
type Config struct {
	// MediaDir is scanned for loose media files and archives.
	MediaDir string `yaml:"media_dir"`
	// Workers sizes the shared load executor.
	Workers  int     `yaml:"workers"`
	LogLevel string  `yaml:"log_level"`
	Display  Display `yaml:"display"`
	Preload  Preload `yaml:"preload"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Workers:  4,
		LogLevel: "info",
		Display: Display{
			IntervalSeconds: 5,
			DurationSeconds: 10,
			MaxSurfaces:     5,
			PoolSize:        5,
			MaxWidth:        800,
			MaxHeight:       600,
		},
		Preload: Preload{
			SampleSize: 10,
			CacheSize:  32,
		},
	}
}

// Validate clamps values to safe ranges in place.
func (c *Config) Validate() error {
	def := Default()
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.Display.IntervalSeconds <= 0 {
		c.Display.IntervalSeconds = def.Display.IntervalSeconds
	}
	if c.Display.DurationSeconds <= 0 {
		c.Display.DurationSeconds = def.Display.DurationSeconds
	}
	if c.Display.MaxSurfaces <= 0 {
		c.Display.MaxSurfaces = def.Display.MaxSurfaces
	}
	if c.Display.PoolSize <= 0 {
		c.Display.PoolSize = def.Display.PoolSize
	}
	if c.Display.MaxWidth <= 0 {
		c.Display.MaxWidth = def.Display.MaxWidth
	}
	if c.Display.MaxHeight <= 0 {
		c.Display.MaxHeight = def.Display.MaxHeight
	}
	if c.Preload.SampleSize <= 0 {
		c.Preload.SampleSize = def.Preload.SampleSize
	}
	if c.Preload.CacheSize <= 0 {
		c.Preload.CacheSize = def.Preload.CacheSize
	}
	return nil
}

// Interval returns the popup interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Display.IntervalSeconds * float64(time.Second))
}

// Duration returns the popup lifetime as a duration.
func (c *Config) Duration() time.Duration {
	return time.Duration(c.Display.DurationSeconds * float64(time.Second))
}
