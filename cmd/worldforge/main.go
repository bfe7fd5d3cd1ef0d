package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shieldskcd/worldforge/internal/config"
	"github.com/shieldskcd/worldforge/internal/forge"
	"github.com/shieldskcd/worldforge/internal/logger"
	"github.com/shieldskcd/worldforge/internal/templates"
	"github.com/shieldskcd/worldforge/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen owns the terminal, so only file logging is used.
	if err := logger.Initialize(logger.Config{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		FileFormat: cfg.LogFormat,
	}); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting world forge", "llm", cfg.ExternalEnabled(), "model", cfg.Model)

	f, closeForge := forge.FromConfig(ctx, cfg)
	defer closeForge()

	if err := tui.Run(f, templates.Default().Examples, cfg.SaveDir); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
