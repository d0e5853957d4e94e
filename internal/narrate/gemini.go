package narrate

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/inkvein/storyloop/internal/paradox"
	"github.com/inkvein/storyloop/internal/player"
	"github.com/inkvein/storyloop/internal/story"
)

//go:embed prompts/scene.txt
var scenePrompt string

//go:embed prompts/paradox.txt
var paradoxPrompt string

// GeminiGenerator narrates scene and paradox text with Gemini, falling back
// to the template generator on any failure so callers always receive
// non-empty text. Choices, locations, and object placement stay template
// driven; only prose goes through the model.
type GeminiGenerator struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	fallback *TemplateGenerator
}

// NewGemini creates a Gemini-backed generator.
func NewGemini(ctx context.Context, apiKey, model string, fallback *TemplateGenerator) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{
		client:   client,
		model:    client.GenerativeModel(model),
		fallback: fallback,
	}, nil
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() {
	g.client.Close()
}

func (g *GeminiGenerator) Intro(location string) string {
	return g.fallback.Intro(location)
}

func (g *GeminiGenerator) SceneText(verb, target, location string) string {
	text, err := g.generate(scenePrompt, struct {
		Location, Verb, Target string
	}{location, verb, target})
	if err != nil || text == "" {
		return g.fallback.SceneText(verb, target, location)
	}
	return text
}

func (g *GeminiGenerator) Choices(node *story.Node, p *player.Player) []story.NodeChoice {
	return g.fallback.Choices(node, p)
}

func (g *GeminiGenerator) ParadoxText(t paradox.Type, severity int) string {
	text, err := g.generate(paradoxPrompt, struct {
		Type     paradox.Type
		Severity int
	}{t, severity})
	if err != nil || text == "" {
		return g.fallback.ParadoxText(t, severity)
	}
	return text
}

func (g *GeminiGenerator) LoopBreakText(evidence []string) string {
	return g.fallback.LoopBreakText(evidence)
}

func (g *GeminiGenerator) ParadoxChoices(t paradox.Type) []story.NodeChoice {
	return g.fallback.ParadoxChoices(t)
}

func (g *GeminiGenerator) NextLocation(verb, target, current string) string {
	return g.fallback.NextLocation(verb, target, current)
}

func (g *GeminiGenerator) Objects(location string) []string {
	return g.fallback.Objects(location)
}

// generate renders the prompt template and extracts the first text part of
// the response, stripping any markdown fences the model adds anyway.
func (g *GeminiGenerator) generate(prompt string, data any) (string, error) {
	tmpl, err := template.New("prompt").Parse(prompt)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	resp, err := g.model.GenerateContent(context.Background(), genai.Text(buf.String()))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}

	clean := strings.TrimSpace(string(text))
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean), nil
}
