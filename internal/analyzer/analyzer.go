// Package analyzer classifies a free-text prompt into room type, size,
// stability and mood using ordered keyword rules. Matching is plain
// substring containment, so short keywords also hit inside longer words
// ("cell" in "excellent").
package analyzer

import (
	"strings"

	"github.com/shieldskcd/worldforge/internal/models"
	"github.com/shieldskcd/worldforge/internal/templates"
)

const (
	DefaultRoomType = templates.Generic
	DefaultMood     = "neutral"
)

// Analysis is the result of classifying one prompt.
type Analysis struct {
	RoomType  string
	Size      models.Size
	Stability models.Stability
	Mood      string
}

// Analyzer runs the detectors against a template store. It holds no
// mutable state.
type Analyzer struct {
	store *templates.Store
}

func New(store *templates.Store) *Analyzer {
	return &Analyzer{store: store}
}

// Analyze runs all four detectors. prompt must already be lower-cased.
func (a *Analyzer) Analyze(prompt string) Analysis {
	return Analysis{
		RoomType:  a.DetectRoomType(prompt),
		Size:      a.DetectSize(prompt),
		Stability: DetectStability(prompt),
		Mood:      a.DetectMood(prompt),
	}
}

func (a *Analyzer) DetectRoomType(prompt string) string {
	return firstMatch(a.store.RoomKeywords, prompt, DefaultRoomType)
}

func (a *Analyzer) DetectSize(prompt string) models.Size {
	return models.Size(firstMatch(a.store.SizeKeywords, prompt, string(models.SizeMedium)))
}

func (a *Analyzer) DetectMood(prompt string) string {
	return firstMatch(a.store.MoodKeywords, prompt, DefaultMood)
}

// stabilityRules are checked in order; hope beats fragile beats solid.
var stabilityRules = []struct {
	keywords  []string
	stability models.Stability
}{
	{[]string{"held together by hope", "hope"}, models.StabilityHope},
	{[]string{"crumbling", "unstable", "rickety"}, models.StabilityFragile},
	{[]string{"fragile", "weak"}, models.StabilityFragile},
	{[]string{"solid", "sturdy", "strong"}, models.StabilitySolid},
}

func DetectStability(prompt string) models.Stability {
	for _, rule := range stabilityRules {
		for _, kw := range rule.keywords {
			if strings.Contains(prompt, kw) {
				return rule.stability
			}
		}
	}
	return models.StabilityNormal
}

func firstMatch(rules []templates.Rule, prompt, fallback string) string {
	for _, r := range rules {
		if strings.Contains(prompt, r.Keyword) {
			return r.Value
		}
	}
	return fallback
}
