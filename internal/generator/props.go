package generator

import (
	"strings"

	"github.com/shieldskcd/worldforge/internal/models"
	"github.com/shieldskcd/worldforge/internal/templates"
)

// Props returns the room's default props followed by any props the prompt
// mentions. Mentioned props are skipped when a prop with the same display
// name is already present.
func (g *Generator) Props(prompt string, room templates.RoomTemplate) []models.Prop {
	var props []models.Prop
	for _, key := range room.DefaultProps {
		if tpl, ok := g.store.Prop(key); ok {
			props = append(props, newProp(tpl))
		}
	}

	for _, rule := range g.store.PropKeywords {
		if !strings.Contains(prompt, rule.Keyword) {
			continue
		}
		tpl, ok := g.store.Prop(rule.Value)
		if !ok || hasProp(props, tpl.Name) {
			continue
		}
		props = append(props, newProp(tpl))
	}
	return props
}

// Exits returns a fresh copy of the exit table for roomType.
func (g *Generator) Exits(roomType string) map[string]string {
	exits, ok := g.store.Exits[roomType]
	if !ok {
		exits = g.store.DefaultExits
	}
	out := make(map[string]string, len(exits))
	for dir, dest := range exits {
		out[dir] = dest
	}
	return out
}

func newProp(tpl templates.PropTemplate) models.Prop {
	return models.Prop{Name: tpl.Name, Type: tpl.Type, Description: tpl.Description}
}

func hasProp(props []models.Prop, name string) bool {
	for _, p := range props {
		if p.Name == name {
			return true
		}
	}
	return false
}
