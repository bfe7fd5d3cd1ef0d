package generator

import (
	"strings"

	"github.com/shieldskcd/worldforge/internal/analyzer"
	"github.com/shieldskcd/worldforge/internal/models"
	"github.com/shieldskcd/worldforge/internal/templates"
)

const (
	defaultMoodWord = "atmospheric"
	defaultLighting = "Ambient light from unknown sources"

	hopeAtmosphere    = "Everything seems to be barely holding together, as if one wrong move could bring it all down."
	fragileAtmosphere = "Cracks spider across the surfaces, and dust falls with every vibration."

	maxMoodTags = 4
)

// FillTemplate substitutes the {mood} placeholder and, for hope and
// fragile locations, appends the stability warning.
func (g *Generator) FillTemplate(tpl, mood string, stability models.Stability) string {
	word := defaultMoodWord
	if words := g.store.MoodWords[mood]; len(words) > 0 {
		word = words[0]
	}

	result := strings.ReplaceAll(tpl, "{mood}", word)
	if stability == models.StabilityHope || stability == models.StabilityFragile {
		result += " " + g.store.StabilityText[string(stability)]
	}
	return result
}

// Atmosphere composes a room phrase, an optional mood phrase and a
// stability sentence.
func (g *Generator) Atmosphere(roomType, mood string, stability models.Stability) string {
	phrases, ok := g.store.Atmosphere[roomType]
	if !ok || len(phrases) == 0 {
		phrases = g.store.Atmosphere[templates.Generic]
	}

	base := choice(g.rng, phrases)
	if moodPhrases := g.store.Atmosphere["mood_"+mood]; len(moodPhrases) > 0 {
		base += " " + choice(g.rng, moodPhrases)
	}

	switch stability {
	case models.StabilityHope:
		base += " " + hopeAtmosphere
	case models.StabilityFragile:
		base += " " + fragileAtmosphere
	}
	return base
}

// MoodTags returns up to four tags: the mood (unless neutral), the room
// type in words, and one flavor tag.
func (g *Generator) MoodTags(mood, roomType string) []string {
	var tags []string
	if mood != analyzer.DefaultMood {
		tags = append(tags, mood)
	}
	tags = append(tags, strings.ReplaceAll(roomType, "_", " "))
	tags = append(tags, choice(g.rng, g.store.FlavorTags))

	if len(tags) > maxMoodTags {
		tags = tags[:maxMoodTags]
	}
	return tags
}
