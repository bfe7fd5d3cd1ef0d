package forge

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldskcd/worldforge/internal/config"
	"github.com/shieldskcd/worldforge/internal/engine"
	"github.com/shieldskcd/worldforge/internal/generator"
	"github.com/shieldskcd/worldforge/internal/models"
	"github.com/shieldskcd/worldforge/internal/templates"
)

type fakeRich struct {
	world      *models.World
	err        error
	calls      int
	creativity float64
}

func (f *fakeRich) TryGenerate(_ context.Context, _ string) (*models.World, error) {
	f.calls++
	return f.world, f.err
}

func (f *fakeRich) SetCreativity(c float64) { f.creativity = c }

// answerRich returns a fixed model answer decoded the way the Gemini engine
// decodes it.
type answerRich struct {
	answer string
}

func (r answerRich) TryGenerate(_ context.Context, _ string) (*models.World, error) {
	return engine.ParseWorld(r.answer)
}

// lockedRich records the creativity it was last given.
type lockedRich struct {
	mu         sync.Mutex
	creativity float64
}

func (r *lockedRich) TryGenerate(_ context.Context, _ string) (*models.World, error) {
	return nil, errors.New("unused")
}

func (r *lockedRich) SetCreativity(c float64) {
	r.mu.Lock()
	r.creativity = c
	r.mu.Unlock()
}

func newGenerator() *generator.Generator {
	return generator.New(templates.Default(), rand.New(rand.NewPCG(7, 7)))
}

func TestGenerateTemplateOnly(t *testing.T) {
	f := New(newGenerator(), nil, DefaultSettings())
	assert.False(t, f.ExternalAvailable())

	w := f.Generate(context.Background(), "A throne room with a jester who tells dad jokes")
	assert.Equal(t, models.SourceTemplate, w.Source)
	assert.Equal(t, "A throne room with a jester who tells dad jokes", w.OriginalPrompt)
	require.Len(t, w.NPCs, 1)
}

func TestGenerateUsesRichGenerator(t *testing.T) {
	rich := &fakeRich{world: &models.World{
		Name:           "Sky Fortress",
		Size:           "gigantic",
		Source:         "somewhere",
		OriginalPrompt: "something else",
		MoodTags:       []string{"a", "b", "c", "d", "e"},
	}}
	f := New(newGenerator(), rich, DefaultSettings())

	w := f.Generate(context.Background(), "a fortress in the sky")
	assert.Equal(t, 1, rich.calls)
	assert.Equal(t, models.SourceLLM, w.Source)
	assert.Equal(t, "a fortress in the sky", w.OriginalPrompt)
	assert.Equal(t, "Sky Fortress", w.Name)
	assert.Equal(t, models.Size("gigantic"), w.Size)
	assert.Len(t, w.MoodTags, 5)

	// The rich generator's own value is left untouched.
	assert.Equal(t, models.Source("somewhere"), rich.world.Source)
}

func TestGenerateFallsBack(t *testing.T) {
	tests := []struct {
		name string
		rich *fakeRich
	}{
		{"error", &fakeRich{err: errors.New("failed to parse world JSON")}},
		{"nil world", &fakeRich{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(newGenerator(), tt.rich, DefaultSettings())
			w := f.Generate(context.Background(), "a dark dungeon")

			assert.Equal(t, 1, tt.rich.calls)
			assert.Equal(t, models.SourceTemplate, w.Source)
			assert.Equal(t, "a dark dungeon", w.OriginalPrompt)
			assert.NotEmpty(t, w.Name)
			assert.Contains(t, w.Exits, "east")
		})
	}
}

func TestGenerateFallsBackOnUnusableAnswer(t *testing.T) {
	for _, answer := range []string{"null", "```json\nnull\n```", "Sorry, I can't help with that.", `{"npcs": "none"}`} {
		t.Run(answer, func(t *testing.T) {
			f := New(newGenerator(), answerRich{answer: answer}, DefaultSettings())
			w := f.Generate(context.Background(), "a dark dungeon")

			assert.Equal(t, models.SourceTemplate, w.Source)
			assert.NotEmpty(t, w.Name)
			assert.NotNil(t, w.NPCs)
			assert.NotNil(t, w.Props)
			assert.Contains(t, w.Exits, "north")
		})
	}
}

func TestGenerateParsesRichAnswer(t *testing.T) {
	answer := "```json\n{\"name\": \"Glass Spire\", \"exits\": {\"up\": \"Sky\"}}\n```"
	f := New(newGenerator(), answerRich{answer: answer}, DefaultSettings())

	w := f.Generate(context.Background(), "a glass spire")
	assert.Equal(t, models.SourceLLM, w.Source)
	assert.Equal(t, "Glass Spire", w.Name)
	assert.Equal(t, "a glass spire", w.OriginalPrompt)
	assert.Equal(t, map[string]string{"up": "Sky"}, w.Exits)
}

func TestSetSettingsKeepsCreativityInStep(t *testing.T) {
	rich := &lockedRich{}
	f := New(newGenerator(), rich, DefaultSettings())

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := f.Settings()
			s.Creativity = float64(i) / 50
			f.SetSettings(s)
		}()
	}
	wg.Wait()

	rich.mu.Lock()
	defer rich.mu.Unlock()
	assert.Equal(t, f.Settings().Creativity, rich.creativity)
}

func TestGenerateExternalDisabled(t *testing.T) {
	rich := &fakeRich{world: &models.World{Name: "unused"}}
	s := DefaultSettings()
	s.UseExternal = false
	f := New(newGenerator(), rich, s)

	w := f.Generate(context.Background(), "a cave")
	assert.Equal(t, 0, rich.calls)
	assert.Equal(t, models.SourceTemplate, w.Source)
}

func TestSettings(t *testing.T) {
	rich := &fakeRich{}
	f := New(newGenerator(), rich, DefaultSettings())
	assert.InDelta(t, 0.7, rich.creativity, 1e-9)

	s := f.Settings()
	s.IncludeNPCs = false
	s.IncludeExits = false
	s.UseExternal = false
	s.Creativity = 4
	f.SetSettings(s)

	assert.Equal(t, 1.0, f.Settings().Creativity)
	assert.Equal(t, 1.0, rich.creativity)

	w := f.Generate(context.Background(), "a tavern with two goblins")
	assert.Empty(t, w.NPCs)
	assert.Empty(t, w.Exits)
	assert.NotEmpty(t, w.Props)
}

func TestFromConfigWithoutKey(t *testing.T) {
	f, closeFn := FromConfig(context.Background(), &config.Config{
		UseExternal: true,
		Creativity:  0.5,
		IncludeNPCs: true,
	})
	defer closeFn()

	assert.False(t, f.ExternalAvailable())
	assert.Equal(t, Settings{UseExternal: true, Creativity: 0.5, IncludeNPCs: true}, f.Settings())

	w := f.Generate(context.Background(), "two guards")
	assert.Equal(t, models.SourceTemplate, w.Source)
	assert.Len(t, w.NPCs, 2)
	assert.Empty(t, w.Props)
}
