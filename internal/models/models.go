package models

// Size is the rough physical scale of a generated location.
type Size string

const (
	SizeTiny   Size = "tiny"
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeVast   Size = "vast"
)

// Stability describes how structurally sound a location is.
type Stability string

const (
	StabilitySolid   Stability = "solid"
	StabilityNormal  Stability = "normal"
	StabilityFragile Stability = "fragile"
	StabilityHope    Stability = "hope" // held together by hope
)

// Source records which generation path produced a World.
type Source string

const (
	SourceTemplate Source = "template"
	SourceLLM      Source = "llm"
)

// World is the complete generated record for one prompt.
type World struct {
	Name           string            `json:"name" yaml:"name"`
	Description    string            `json:"description" yaml:"description"`
	Atmosphere     string            `json:"atmosphere" yaml:"atmosphere"`
	Size           Size              `json:"size" yaml:"size"`
	Stability      Stability         `json:"stability" yaml:"stability"`
	Lighting       string            `json:"lighting" yaml:"lighting"`
	MoodTags       []string          `json:"mood_tags" yaml:"mood_tags"` // at most 4
	NPCs           []NPC             `json:"npcs" yaml:"npcs"`
	Props          []Prop            `json:"props" yaml:"props"`
	Exits          map[string]string `json:"exits" yaml:"exits"` // direction -> destination
	Source         Source            `json:"source" yaml:"source"`
	OriginalPrompt string            `json:"original_prompt" yaml:"original_prompt"`
}

// NPC is a character placed in a World.
type NPC struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"` // e.g. "Potato Person"
	Description string   `json:"description" yaml:"description"`
	Behavior    string   `json:"behavior" yaml:"behavior"`
	Dialogue    []string `json:"dialogue" yaml:"dialogue"` // in delivery order
}

// Prop is an object placed in a World.
type Prop struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"` // category tag, e.g. "furniture"
	Description string `json:"description" yaml:"description"`
}

