// Command worldforge generates a single world from the prompt given on the
// command line and prints it as JSON or YAML. Use cmd/worldforge for the
// interactive shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/shieldskcd/worldforge/internal/config"
	"github.com/shieldskcd/worldforge/internal/forge"
	"github.com/shieldskcd/worldforge/internal/logger"
	"github.com/shieldskcd/worldforge/internal/models"
)

func main() {
	format := flag.String("format", "json", "output format: json or yaml")
	save := flag.Bool("save", false, "also write the world as JSON into the save directory")
	templatesOnly := flag.Bool("templates", false, "skip the LLM even when an API key is configured")
	flag.Parse()

	prompt := strings.Join(flag.Args(), " ")
	if prompt == "" {
		fmt.Fprintln(os.Stderr, "usage: worldforge [-format json|yaml] [-save] [-templates] <prompt>")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *templatesOnly {
		cfg.UseExternal = false
	}

	if err := logger.Initialize(logger.Config{
		Level:          cfg.LogLevel,
		ConsoleEnabled: cfg.LogConsole,
		ConsoleFormat:  cfg.LogFormat,
		FilePath:       cfg.LogFile,
		FileFormat:     cfg.LogFormat,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	f, closeForge := forge.FromConfig(ctx, cfg)
	defer closeForge()

	world := f.Generate(ctx, prompt)

	var out []byte
	switch *format {
	case "json":
		out, err = models.ExportJSON(world)
	case "yaml":
		out, err = models.ExportYAML(world)
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting world: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(strings.TrimRight(string(out), "\n"))

	if *save {
		path, err := models.SaveWorld(cfg.SaveDir, world)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving world: %v\n", err)
			os.Exit(1)
		}
		logger.Info("saved world", "path", path)
	}
}
