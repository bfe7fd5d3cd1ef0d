// Package generator is the template pipeline: it analyzes a prompt and
// assembles a World from the template store with randomized details.
package generator

import (
	"strings"

	"github.com/shieldskcd/worldforge/internal/analyzer"
	"github.com/shieldskcd/worldforge/internal/models"
	"github.com/shieldskcd/worldforge/internal/templates"
)

// Options toggles the optional parts of a generated World.
type Options struct {
	IncludeNPCs  bool
	IncludeProps bool
	IncludeExits bool
}

// DefaultOptions includes everything.
func DefaultOptions() Options {
	return Options{IncludeNPCs: true, IncludeProps: true, IncludeExits: true}
}

type Generator struct {
	store    *templates.Store
	analyzer *analyzer.Analyzer
	rng      Rand
}

// New returns a Generator over store. A nil rng selects DefaultRand.
func New(store *templates.Store, rng Rand) *Generator {
	if rng == nil {
		rng = DefaultRand()
	}
	return &Generator{
		store:    store,
		analyzer: analyzer.New(store),
		rng:      rng,
	}
}

// Generate builds a World from prompt. It never fails; an empty prompt
// yields a World made entirely of defaults.
func (g *Generator) Generate(prompt string, opts Options) models.World {
	lower := strings.ToLower(prompt)
	a := g.analyzer.Analyze(lower)
	room := g.store.Room(a.RoomType)

	lighting := room.Lighting
	if lighting == "" {
		lighting = defaultLighting
	}

	world := models.World{
		Name:           g.Name(a.RoomType, a.Mood),
		Description:    g.FillTemplate(room.Description, a.Mood, a.Stability),
		Atmosphere:     g.Atmosphere(a.RoomType, a.Mood, a.Stability),
		Size:           a.Size,
		Stability:      a.Stability,
		Lighting:       lighting,
		MoodTags:       g.MoodTags(a.Mood, a.RoomType),
		NPCs:           []models.NPC{},
		Props:          []models.Prop{},
		Exits:          map[string]string{},
		Source:         models.SourceTemplate,
		OriginalPrompt: prompt,
	}

	if opts.IncludeNPCs {
		if npcs := g.NPCs(lower); npcs != nil {
			world.NPCs = npcs
		}
	}
	if opts.IncludeProps {
		if props := g.Props(lower, room); props != nil {
			world.Props = props
		}
	}
	if opts.IncludeExits {
		world.Exits = g.Exits(a.RoomType)
	}
	return world
}
