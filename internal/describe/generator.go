package describe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/supplysift/supplysift/internal/types"
)

// TextGenerator produces prose from a prompt. Implementations wrap one
// generative-model backend; any failure is recoverable by the synthesizer's
// deterministic fallback.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// OpenAIGenerator calls an OpenAI-compatible chat-completions endpoint.
type OpenAIGenerator struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// NewOpenAIGenerator creates a generator against an OpenAI-compatible API.
// endpoint defaults to the public OpenAI base URL.
func NewOpenAIGenerator(endpoint, model, apiKey string) *OpenAIGenerator {
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1"
	}
	return &OpenAIGenerator{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *OpenAIGenerator) Name() string { return "openai" }

// Generate sends the prompt as a single user message.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  600,
		"temperature": 0.6,
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &types.SynthesisError{Provider: g.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &types.SynthesisError{Provider: g.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &types.SynthesisError{
			Provider: g.Name(),
			Err:      fmt.Errorf("HTTP %d from completions endpoint", resp.StatusCode),
		}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &types.SynthesisError{Provider: g.Name(), Err: err}
	}
	if len(result.Choices) == 0 {
		return "", &types.SynthesisError{Provider: g.Name(), Err: fmt.Errorf("no choices in response")}
	}
	return result.Choices[0].Message.Content, nil
}
