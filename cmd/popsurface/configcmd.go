package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/popsurface/internal/config"
)

// runConfig prints the effective configuration after defaults and file
// merging, so users can see what the daemon would actually run with.
func runConfig(args []string) int {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	cfgPath := fs.String("config", "", "config file path")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out, err := config.Dump(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("# %s\n%s", config.DefaultConfigPath(), out)
	return 0
}
