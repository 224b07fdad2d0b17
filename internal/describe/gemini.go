package describe

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/supplysift/supplysift/internal/types"
)

// GeminiGenerator produces text via Google's Gemini API.
type GeminiGenerator struct {
	model  string
	apiKey string
}

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(model, apiKey string) *GeminiGenerator {
	return &GeminiGenerator{model: model, apiKey: apiKey}
}

func (g *GeminiGenerator) Name() string { return "gemini" }

// Generate sends the prompt and concatenates the returned text parts.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", &types.SynthesisError{Provider: g.Name(), Err: err}
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &types.SynthesisError{Provider: g.Name(), Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &types.SynthesisError{Provider: g.Name(), Err: types.ErrEmptyResponse}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}
