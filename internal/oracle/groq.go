package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Groq drafts replies with Groq's OpenAI-compatible chat completions API.
type Groq struct {
	client *resty.Client
	model  string
}

const defaultGroqModel = "llama-3.3-70b-versatile"

func NewGroq(apiKey, model string) *Groq {
	if model == "" {
		model = defaultGroqModel
	}
	client := resty.New().
		SetBaseURL("https://api.groq.com/openai/v1").
		SetAuthToken(apiKey).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)
	return &Groq{client: client, model: model}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *Groq) Generate(ctx context.Context, req Request) (string, error) {
	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt(req.Language)},
			{Role: "user", Content: UserPrompt(req)},
		},
		Temperature: 0.85,
		MaxTokens:   100,
		TopP:        0.9,
	}
	var out chatResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("groq request: %w", err)
	}
	if resp.IsError() {
		if out.Error != nil {
			return "", fmt.Errorf("groq status %d: %s", resp.StatusCode(), out.Error.Message)
		}
		return "", fmt.Errorf("groq status %d", resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return CleanReply(out.Choices[0].Message.Content), nil
}
