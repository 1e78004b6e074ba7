package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient issues single-shot chat completions. Each call carries only the
// system prompt and the latest utterance; no conversation history is kept.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4
	}
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}
}

// NewOpenAIClientWithBaseURL targets a non-default API host (used in tests).
func NewOpenAIClientWithBaseURL(apiKey, model, baseURL string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	c := &OpenAIClient{client: openai.NewClientWithConfig(cfg), model: model}
	if c.model == "" {
		c.model = openai.GPT4
	}
	return c
}

// Complete runs one system+user exchange and returns the assistant text.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userText},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
