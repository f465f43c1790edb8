package oracle

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Gemini drafts replies with Google's Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

const defaultGeminiModel = "gemini-2.0-flash"

func NewGemini(apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing gemini api key")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	prompt := SystemPrompt(req.Language) + "\n\n" + UserPrompt(req)
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text, err := result.Text()
	if err != nil {
		return "", fmt.Errorf("read result: %w", err)
	}
	return CleanReply(text), nil
}
