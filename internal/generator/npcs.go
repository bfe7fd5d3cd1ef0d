package generator

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shieldskcd/worldforge/internal/models"
)

const (
	dadJokeLines  = 5
	dialogueLines = 3
)

// NPCs returns the characters mentioned in prompt. Every matching
// archetype pattern contributes its own NPCs, in pattern order.
func (g *Generator) NPCs(prompt string) []models.NPC {
	var npcs []models.NPC
	for _, p := range g.store.NPCPatterns {
		loc := p.Regexp().FindStringIndex(prompt)
		if loc == nil {
			continue
		}

		tpl := g.store.NPC(p.Type)
		count := g.quantity(prompt[:loc[0]])
		for i := range count {
			npcs = append(npcs, models.NPC{
				Name:        g.NPCName(p.Type, i),
				Type:        archetypeLabel(p.Type),
				Description: tpl.Description,
				Behavior:    tpl.Behavior,
				Dialogue:    g.Dialogue(p.Type, prompt),
			})
		}
	}
	return npcs
}

// quantity returns the count implied by the quantity word closest to the
// end of before, or 1 when there is none. Unlike a literal
// `\b{word}\b.*{type}` match it honors counts for multi-word archetypes
// such as "three potato people".
func (g *Generator) quantity(before string) int {
	count, at := 1, -1
	for _, q := range g.store.QuantityWords {
		for _, m := range q.Regexp().FindAllStringIndex(before, -1) {
			if m[0] > at {
				at, count = m[0], q.Count
			}
		}
	}
	return count
}

// Dialogue picks the lines an NPC speaks. A prompt asking for jokes
// overrides the archetype's own lines.
func (g *Generator) Dialogue(npcType, prompt string) []string {
	if strings.Contains(prompt, "joke") {
		if strings.Contains(prompt, "dad") || strings.Contains(prompt, "bad") {
			return head(g.store.DialogueSet("dad_jokes"), dadJokeLines)
		}
		return head(g.store.DialogueSet("jokes"), dialogueLines)
	}
	return head(g.store.DialogueSet(npcType), dialogueLines)
}

func archetypeLabel(npcType string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(npcType, "_", " "))
}

func head(lines []string, n int) []string {
	return slices.Clone(lines[:min(n, len(lines))])
}
