package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-3-flash-preview"

// reportSchema constrains the answer to {insights: string[], suggestions: string[]}.
var reportSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"insights": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"suggestions": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"insights", "suggestions"},
}

// Generator implements insight.Generator on top of the Gemini API.
type Generator struct {
	client *genai.Client
	model  string
}

func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Generator{client: client, model: model}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   reportSchema,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned an empty answer")
	}
	return text, nil
}

// Name identifies the model in logs.
func (g *Generator) Name() string {
	return fmt.Sprintf("gemini:%s", g.model)
}
