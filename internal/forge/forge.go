// Package forge is the single entry point for world generation. It tries
// the rich generator when one is configured and falls back to the
// template pipeline on any failure.
package forge

import (
	"context"
	"errors"
	"sync"

	"github.com/shieldskcd/worldforge/internal/generator"
	"github.com/shieldskcd/worldforge/internal/logger"
	"github.com/shieldskcd/worldforge/internal/models"
)

var errNoWorld = errors.New("rich generator returned no world")

// RichGenerator produces a World from an external service.
type RichGenerator interface {
	TryGenerate(ctx context.Context, prompt string) (*models.World, error)
}

// creativitySetter is implemented by rich generators whose output can be
// tuned by the creativity setting.
type creativitySetter interface {
	SetCreativity(float64)
}

// Settings are the caller-facing options, changeable between calls.
type Settings struct {
	UseExternal  bool
	Creativity   float64 // only meaningful to the rich generator
	IncludeNPCs  bool
	IncludeProps bool
	IncludeExits bool
}

// DefaultSettings mirrors the defaults of the interactive shell.
func DefaultSettings() Settings {
	return Settings{
		UseExternal:  true,
		Creativity:   0.7,
		IncludeNPCs:  true,
		IncludeProps: true,
		IncludeExits: true,
	}
}

func (s Settings) options() generator.Options {
	return generator.Options{
		IncludeNPCs:  s.IncludeNPCs,
		IncludeProps: s.IncludeProps,
		IncludeExits: s.IncludeExits,
	}
}

type Forge struct {
	templates *generator.Generator
	rich      RichGenerator // nil when no credential is configured

	mu       sync.RWMutex
	settings Settings
}

// New returns a Forge. rich may be nil, in which case only the template
// pipeline is used.
func New(templates *generator.Generator, rich RichGenerator, settings Settings) *Forge {
	f := &Forge{templates: templates, rich: rich}
	f.SetSettings(settings)
	return f
}

func (f *Forge) Settings() Settings {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.settings
}

func (f *Forge) SetSettings(s Settings) {
	s.Creativity = min(max(s.Creativity, 0), 1)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = s
	if cs, ok := f.rich.(creativitySetter); ok {
		cs.SetCreativity(s.Creativity)
	}
}

// ExternalAvailable reports whether a rich generator is wired in at all.
func (f *Forge) ExternalAvailable() bool {
	return f.rich != nil
}

// Generate returns a World for prompt. It never fails: errors from the
// rich generator are logged and the template pipeline is used instead, so
// callers must look at World.Source to learn which path ran.
func (f *Forge) Generate(ctx context.Context, prompt string) models.World {
	s := f.Settings()

	if s.UseExternal && f.rich != nil {
		w, err := f.rich.TryGenerate(ctx, prompt)
		if err == nil && w == nil {
			err = errNoWorld
		}
		if err == nil {
			world := *w
			world.Source = models.SourceLLM
			world.OriginalPrompt = prompt
			return world
		}
		logger.Warning("rich generation failed, falling back to templates", "error", err)
	}

	world := f.templates.Generate(prompt, s.options())
	logger.Debug("generated world from templates", "name", world.Name, "npcs", len(world.NPCs), "props", len(world.Props))
	return world
}
