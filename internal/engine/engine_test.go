package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldskcd/worldforge/internal/models"
)

const worldJSON = `{
  "name": "The Gilded Court",
  "description": "A hall of mirrors.",
  "atmosphere": "Whispers everywhere.",
  "size": "colossal",
  "stability": "hope",
  "lighting": "Candles.",
  "mood_tags": ["regal", "tense"],
  "npcs": [{"name": "Pip", "type": "Jester", "description": "Small.", "behavior": "Jokes.", "dialogue": ["Ha!"]}],
  "props": [{"name": "Throne", "type": "furniture", "description": "Gold."}],
  "exits": {"west": "Gardens"}
}`

type fakeModel struct {
	resp        *genai.GenerateContentResponse
	err         error
	prompt      string
	temperature float32
	deadline    bool
}

func (f *fakeModel) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	if len(parts) > 0 {
		f.prompt = string(parts[0].(genai.Text))
	}
	_, f.deadline = ctx.Deadline()
	return f.resp, f.err
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func newTestEngine(fake *fakeModel, opts Options) *Engine {
	return newEngine(func(temperature float32) contentGenerator {
		fake.temperature = temperature
		return fake
	}, opts)
}

func TestParseWorld(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"bare", worldJSON},
		{"json fence", "Here you go:\n```json\n" + worldJSON + "\n```\nEnjoy!"},
		{"plain fence", "```\n" + worldJSON + "\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseWorld(tt.text)
			require.NoError(t, err)
			assert.Equal(t, "The Gilded Court", w.Name)
			assert.Equal(t, models.Size("colossal"), w.Size)
			assert.Equal(t, map[string]string{"west": "Gardens"}, w.Exits)
			require.Len(t, w.NPCs, 1)
			assert.Equal(t, []string{"Ha!"}, w.NPCs[0].Dialogue)
		})
	}
}

func TestParseWorldErrors(t *testing.T) {
	for _, text := range []string{"", "I cannot do that.", "```json\n{\"name\": \n```", `{"mood_tags": "oops"}`} {
		w, err := ParseWorld(text)
		assert.Error(t, err, text)
		assert.Nil(t, w, text)
	}
}

func TestParseWorldRejectsNull(t *testing.T) {
	for _, text := range []string{"null", "```json\nnull\n```", "```\n null \n```"} {
		w, err := ParseWorld(text)
		require.ErrorIs(t, err, ErrNullWorld, text)
		assert.Nil(t, w, text)
	}
}

func TestTryGenerate(t *testing.T) {
	fake := &fakeModel{resp: textResponse(genai.Text("```json\n"), genai.Text(worldJSON), genai.Text("\n```"))}
	e := newTestEngine(fake, Options{Creativity: 0.3, Timeout: time.Minute})

	w, err := e.TryGenerate(context.Background(), "a gilded court")
	require.NoError(t, err)
	assert.Equal(t, "The Gilded Court", w.Name)
	assert.Equal(t, "Create a world based on: a gilded court", strings.TrimSpace(fake.prompt))
	assert.InDelta(t, 0.3, fake.temperature, 1e-6)
	assert.True(t, fake.deadline)
}

func TestTryGenerateFailures(t *testing.T) {
	boom := errors.New("connection reset")
	tests := []struct {
		name string
		fake *fakeModel
		want error
	}{
		{"transport", &fakeModel{err: boom}, boom},
		{"no candidates", &fakeModel{resp: &genai.GenerateContentResponse{}}, ErrNoContent},
		{"nil response", &fakeModel{}, ErrNoContent},
		{"no text parts", &fakeModel{resp: textResponse(genai.Blob{MIMEType: "image/png"})}, ErrNoContent},
		{"not json", &fakeModel{resp: textResponse(genai.Text("Once upon a time"))}, nil},
		{"null world", &fakeModel{resp: textResponse(genai.Text("```json\nnull\n```"))}, ErrNullWorld},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(tt.fake, Options{})
			w, err := e.TryGenerate(context.Background(), "anything")
			require.Error(t, err)
			assert.Nil(t, w)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			assert.False(t, tt.fake.deadline)
		})
	}
}

func TestCreativityIsClamped(t *testing.T) {
	e := newTestEngine(&fakeModel{}, Options{Creativity: 2})
	assert.Equal(t, 1.0, e.Creativity())
	e.SetCreativity(-1)
	assert.Equal(t, 0.0, e.Creativity())
	assert.NoError(t, e.Close())
}

func TestNewEngineRequiresKey(t *testing.T) {
	_, err := NewEngine(context.Background(), "", Options{})
	assert.Error(t, err)
}
