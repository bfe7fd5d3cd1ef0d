// Package templates holds the static domain tables the template pipeline
// draws from: room, NPC and prop archetypes, dialogue, atmosphere phrases,
// name parts and the ordered keyword rules used for prompt analysis.
//
// Tables are decoded once from an embedded YAML document and never mutated
// afterwards, so a *Store can be shared freely between goroutines.
package templates

import (
	_ "embed"
	"fmt"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

// Generic is the fallback key used by every archetype table.
const Generic = "generic"

// Rule maps a keyword to a result. Rule lists are evaluated in order and
// the first hit wins.
type Rule struct {
	Keyword string `yaml:"keyword"`
	Value   string `yaml:"value"`
}

// NPCPattern maps a regular expression to an NPC archetype.
type NPCPattern struct {
	Pattern string `yaml:"pattern"`
	Type    string `yaml:"type"`

	re *regexp.Regexp
}

// Regexp returns the compiled pattern.
func (p NPCPattern) Regexp() *regexp.Regexp { return p.re }

// QuantityWord maps a counting word to the number of NPCs it implies.
type QuantityWord struct {
	Word  string `yaml:"word"`
	Count int    `yaml:"count"`

	re *regexp.Regexp
}

// Regexp returns a whole-word matcher for the quantity word.
func (q QuantityWord) Regexp() *regexp.Regexp { return q.re }

// RoomTemplate describes a room archetype. Description carries a single
// {mood} placeholder.
type RoomTemplate struct {
	Description  string   `yaml:"description"`
	Lighting     string   `yaml:"lighting"`
	DefaultProps []string `yaml:"default_props"`
}

type NPCTemplate struct {
	Description string   `yaml:"description"`
	Behavior    string   `yaml:"behavior"`
	Names       []string `yaml:"names"`
}

type PropTemplate struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

type NameParts struct {
	Prefixes map[string][]string `yaml:"prefixes"`
	Cores    map[string][]string `yaml:"cores"`
	Suffixes []string            `yaml:"suffixes"`
}

// Store is the full set of template tables.
type Store struct {
	RoomKeywords  []Rule         `yaml:"room_keywords"`
	SizeKeywords  []Rule         `yaml:"size_keywords"`
	MoodKeywords  []Rule         `yaml:"mood_keywords"`
	NPCPatterns   []NPCPattern   `yaml:"npc_patterns"`
	QuantityWords []QuantityWord `yaml:"quantity_words"`
	PropKeywords  []Rule         `yaml:"prop_keywords"`

	Rooms            map[string]RoomTemplate      `yaml:"rooms"`
	NPCs             map[string]NPCTemplate       `yaml:"npcs"`
	FallbackNPCNames []string                     `yaml:"fallback_npc_names"`
	Props            map[string]PropTemplate      `yaml:"props"`
	Dialogue         map[string][]string          `yaml:"dialogue"`
	Atmosphere       map[string][]string          `yaml:"atmosphere"`
	NameParts        NameParts                    `yaml:"name_parts"`
	StabilityText    map[string]string            `yaml:"stability_text"`
	MoodWords        map[string][]string          `yaml:"mood_words"`
	FlavorTags       []string                     `yaml:"flavor_tags"`
	Exits            map[string]map[string]string `yaml:"exits"`
	DefaultExits     map[string]string            `yaml:"default_exits"`
	Examples         []string                     `yaml:"examples"`
}

// Load decodes and validates a template document.
func Load(data []byte) (*Store, error) {
	var s Store
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	for i := range s.NPCPatterns {
		re, err := regexp.Compile(s.NPCPatterns[i].Pattern)
		if err != nil {
			return nil, fmt.Errorf("npc pattern %q: %w", s.NPCPatterns[i].Pattern, err)
		}
		s.NPCPatterns[i].re = re
	}
	for i := range s.QuantityWords {
		s.QuantityWords[i].re = regexp.MustCompile(`\b` + regexp.QuoteMeta(s.QuantityWords[i].Word) + `\b`)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Store) validate() error {
	if _, ok := s.Rooms[Generic]; !ok {
		return fmt.Errorf("templates: missing %s room", Generic)
	}
	if _, ok := s.NPCs[Generic]; !ok {
		return fmt.Errorf("templates: missing %s npc", Generic)
	}
	if len(s.Dialogue[Generic]) == 0 {
		return fmt.Errorf("templates: missing %s dialogue", Generic)
	}
	if len(s.Atmosphere[Generic]) == 0 {
		return fmt.Errorf("templates: missing %s atmosphere", Generic)
	}
	if len(s.FallbackNPCNames) == 0 {
		return fmt.Errorf("templates: no fallback npc names")
	}
	if len(s.FlavorTags) == 0 {
		return fmt.Errorf("templates: no flavor tags")
	}
	for name, room := range s.Rooms {
		for _, key := range room.DefaultProps {
			if _, ok := s.Props[key]; !ok {
				return fmt.Errorf("templates: room %s lists unknown prop %q", name, key)
			}
		}
	}
	return nil
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the store built from the embedded tables. The embedded
// document is compiled in, so failing to load it is a programming error.
func Default() *Store {
	defaultOnce.Do(func() {
		s, err := Load(defaultTemplates)
		if err != nil {
			panic(err)
		}
		defaultStore = s
	})
	return defaultStore
}

// Room returns the template for roomType, falling back to generic.
func (s *Store) Room(roomType string) RoomTemplate {
	if t, ok := s.Rooms[roomType]; ok {
		return t
	}
	return s.Rooms[Generic]
}

// NPC returns the template for npcType, falling back to generic.
func (s *Store) NPC(npcType string) NPCTemplate {
	if t, ok := s.NPCs[npcType]; ok {
		return t
	}
	return s.NPCs[Generic]
}

// NPCNames returns the name list for npcType, or the fallback names when
// the archetype has none.
func (s *Store) NPCNames(npcType string) []string {
	if t, ok := s.NPCs[npcType]; ok && len(t.Names) > 0 {
		return t.Names
	}
	return s.FallbackNPCNames
}

// Prop looks up a prop template by key.
func (s *Store) Prop(key string) (PropTemplate, bool) {
	t, ok := s.Props[key]
	return t, ok
}

// DialogueSet returns the lines for key, falling back to generic.
func (s *Store) DialogueSet(key string) []string {
	if lines, ok := s.Dialogue[key]; ok && len(lines) > 0 {
		return lines
	}
	return s.Dialogue[Generic]
}
