// Package engine is the rich world generator backed by Gemini. It asks the
// model for a World-shaped JSON document and decodes it without further
// validation.
package engine

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"text/template"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/shieldskcd/worldforge/internal/models"
)

//go:embed prompts/system.txt
var systemPrompt string

//go:embed prompts/generate_world.txt
var generateWorldPrompt string

var generateWorldTmpl = template.Must(template.New("generate_world").Parse(generateWorldPrompt))

const maxOutputTokens = 1500

// ErrNoContent is returned when the model answers without any text.
var ErrNoContent = errors.New("no content returned from Gemini")

// ErrNullWorld is returned when the model answers with a JSON null.
var ErrNullWorld = errors.New("gemini returned a null world")

// Options configures an Engine.
type Options struct {
	Model      string
	Creativity float64       // sampling temperature, 0.0-1.0
	Timeout    time.Duration // zero means no deadline beyond the caller's
}

// contentGenerator is the part of *genai.GenerativeModel the engine uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Engine struct {
	client     *genai.Client
	newModel   func(temperature float32) contentGenerator
	creativity atomic.Uint64 // math.Float64bits of the creativity
	timeout    time.Duration
}

func NewEngine(ctx context.Context, apiKey string, opts Options) (*Engine, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	modelName := opts.Model
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	e := newEngine(func(temperature float32) contentGenerator {
		model := client.GenerativeModel(modelName)
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
		model.ResponseMIMEType = "application/json"
		model.SetTemperature(temperature)
		model.SetMaxOutputTokens(maxOutputTokens)
		return model
	}, opts)
	e.client = client
	return e, nil
}

func newEngine(newModel func(float32) contentGenerator, opts Options) *Engine {
	e := &Engine{newModel: newModel, timeout: opts.Timeout}
	e.SetCreativity(opts.Creativity)
	return e
}

func (e *Engine) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

// SetCreativity changes the sampling temperature used by later calls.
func (e *Engine) SetCreativity(c float64) {
	e.creativity.Store(math.Float64bits(min(max(c, 0), 1)))
}

func (e *Engine) Creativity() float64 {
	return math.Float64frombits(e.creativity.Load())
}

// TryGenerate asks Gemini for a world matching prompt. Any failure, from
// transport to an unparseable answer, is returned as an error.
func (e *Engine) TryGenerate(ctx context.Context, prompt string) (*models.World, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var buf bytes.Buffer
	if err := generateWorldTmpl.Execute(&buf, struct{ Prompt string }{Prompt: prompt}); err != nil {
		return nil, err
	}

	model := e.newModel(float32(e.Creativity()))
	resp, err := model.GenerateContent(ctx, genai.Text(buf.String()))
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return ParseWorld(text)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoContent
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", ErrNoContent
	}
	return sb.String(), nil
}

// ParseWorld decodes a model answer, stripping a surrounding markdown code
// fence if there is one.
func ParseWorld(text string) (*models.World, error) {
	clean := stripFence(text)

	var world *models.World
	if err := json.Unmarshal([]byte(clean), &world); err != nil {
		return nil, fmt.Errorf("failed to parse world JSON: %w\nOutput was: %s", err, clean)
	}
	if world == nil {
		return nil, ErrNullWorld
	}
	return world, nil
}

func stripFence(text string) string {
	if _, after, ok := strings.Cut(text, "```json"); ok {
		text, _, _ = strings.Cut(after, "```")
	} else if _, after, ok := strings.Cut(text, "```"); ok {
		text, _, _ = strings.Cut(after, "```")
	}
	return strings.TrimSpace(text)
}
