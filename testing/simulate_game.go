package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shieldskcd/worldforge/internal/config"
	"github.com/shieldskcd/worldforge/internal/forge"
	"github.com/shieldskcd/worldforge/internal/logger"
	"github.com/shieldskcd/worldforge/internal/templates"
)

// Runs every example prompt through the forge and prints a summary of each
// world, so the template tables (and the LLM path, when a key is set) can
// be eyeballed in one go.
func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(logger.Config{Level: cfg.LogLevel, ConsoleEnabled: true}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	f, closeForge := forge.FromConfig(ctx, cfg)
	defer closeForge()

	for i, prompt := range templates.Default().Examples {
		fmt.Printf("--- Example %d: %s ---\n", i+1, prompt)

		world := f.Generate(ctx, prompt)
		fmt.Printf("Name: %s (source: %s)\n", world.Name, world.Source)
		fmt.Printf("Size: %s, Stability: %s\n", world.Size, world.Stability)
		fmt.Printf("Description: %s\n", world.Description)
		fmt.Printf("Mood: %s\n", strings.Join(world.MoodTags, ", "))

		for _, npc := range world.NPCs {
			fmt.Printf("NPC: %s (%s), %d dialogue lines\n", npc.Name, npc.Type, len(npc.Dialogue))
		}
		for _, prop := range world.Props {
			fmt.Printf("Prop: %s [%s]\n", prop.Name, prop.Type)
		}
		for dir, dest := range world.Exits {
			fmt.Printf("Exit %s: %s\n", dir, dest)
		}
		fmt.Println()
	}
}
