package feedback

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

const maxOutputTokens = 256

// GeminiGenerator implements Generator against the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// GeminiOption applies a configuration option to the GeminiGenerator.
type GeminiOption func(*GeminiGenerator)

// WithModel overrides the default model identifier.
func WithModel(model string) GeminiOption {
	return func(g *GeminiGenerator) {
		if model != "" {
			g.model = model
		}
	}
}

// NewGeminiGenerator creates a generator authenticated with apiKey.
func NewGeminiGenerator(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	g := &GeminiGenerator{
		client: client,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate sends the prompt to Gemini and returns the generated text.
// An empty response body is returned as an empty string, not an error.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt(), genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: maxOutputTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate feedback: %w", err)
	}
	return resp.Text(), nil
}
