package forge

import (
	"context"

	"github.com/shieldskcd/worldforge/internal/config"
	"github.com/shieldskcd/worldforge/internal/engine"
	"github.com/shieldskcd/worldforge/internal/generator"
	"github.com/shieldskcd/worldforge/internal/logger"
	"github.com/shieldskcd/worldforge/internal/templates"
)

// FromConfig wires the template pipeline and, when an API key is present,
// the Gemini engine. If the engine cannot be created the Forge runs
// template-only. The returned func releases the engine.
func FromConfig(ctx context.Context, cfg *config.Config) (*Forge, func()) {
	settings := Settings{
		UseExternal:  cfg.UseExternal,
		Creativity:   cfg.Creativity,
		IncludeNPCs:  cfg.IncludeNPCs,
		IncludeProps: cfg.IncludeProps,
		IncludeExits: cfg.IncludeExits,
	}
	gen := generator.New(templates.Default(), nil)

	if cfg.GeminiAPIKey == "" {
		return New(gen, nil, settings), func() {}
	}

	eng, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, engine.Options{
		Model:      cfg.Model,
		Creativity: cfg.Creativity,
		Timeout:    cfg.LLMTimeout,
	})
	if err != nil {
		logger.Warning("rich generator unavailable, using templates only", "error", err)
		return New(gen, nil, settings), func() {}
	}
	return New(gen, eng, settings), func() {
		if err := eng.Close(); err != nil {
			logger.Warning("failed to close gemini client", "error", err)
		}
	}
}
