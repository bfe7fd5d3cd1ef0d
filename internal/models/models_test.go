package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleWorld() World {
	return World{
		Name:        "The Merry Tavern of Echoes",
		Description: "The lively common room is filled with the smell of ale and wood smoke.",
		Atmosphere:  "The fire crackles a welcome to weary travelers.",
		Size:        SizeSmall,
		Stability:   StabilityHope,
		Lighting:    "Warm firelight flickers from a large hearth.",
		MoodTags:    []string{"cheerful", "tavern", "immersive"},
		NPCs: []NPC{
			{
				Name:        "Old Gus",
				Type:        "Bartender",
				Description: "Weathered hands polish an endless supply of glasses.",
				Behavior:    "Serves drinks.",
				Dialogue:    []string{"What'll it be?", "We don't get many strangers around here."},
			},
		},
		Props: []Prop{
			{Name: "Wooden Barrel", Type: "container", Description: "A sturdy barrel, contents unknown."},
		},
		Exits:          map[string]string{"south": "The main street", "up": "Rooms for rent"},
		Source:         SourceTemplate,
		OriginalPrompt: "A cheerful TAVERN held together by hope",
	}
}

func TestWorldJSONRoundTrip(t *testing.T) {
	for _, w := range []World{sampleWorld(), {}, {Source: SourceLLM, MoodTags: []string{}, Exits: map[string]string{}}} {
		data, err := ExportJSON(w)
		require.NoError(t, err)

		got, err := ParseJSON(data)
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}
}

func TestWorldJSONKeys(t *testing.T) {
	data, err := ExportJSON(sampleWorld())
	require.NoError(t, err)

	for _, key := range []string{`"mood_tags"`, `"original_prompt"`, `"npcs"`, `"exits"`, `"source": "template"`} {
		assert.Contains(t, string(data), key)
	}
}

func TestParseJSONRejectsGarbage(t *testing.T) {
	_, err := ParseJSON([]byte("not json"))
	assert.Error(t, err)
}

func TestWorldYAML(t *testing.T) {
	w := sampleWorld()
	data, err := ExportYAML(w)
	require.NoError(t, err)

	var got World
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, w, got)
}

func TestSaveLoadWorld(t *testing.T) {
	dir := t.TempDir()
	w := sampleWorld()

	path, err := SaveWorld(dir, w)
	require.NoError(t, err)
	assert.Contains(t, path, "the_merry_tavern_of_echoes.json")

	got, err := LoadWorld(dir, "the_merry_tavern_of_echoes")
	require.NoError(t, err)
	assert.Equal(t, w, got)

	names, err := ListWorlds(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"the_merry_tavern_of_echoes"}, names)
}

func TestListWorldsMissingDir(t *testing.T) {
	names, err := ListWorlds(t.TempDir() + "/nope")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "world.json", FileName(World{}))
	assert.Equal(t, "the_dark_dungeon.json", FileName(World{Name: "The Dark Dungeon"}))
	assert.Equal(t, "a_b.json", FileName(World{Name: "A/B"}))
}
