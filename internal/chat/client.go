// Package chat answers storefront widget messages through the Groq
// OpenAI-compatible completion API.
package chat

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are OptiStyle AI assistant. Help users with eyewear, lenses, orders, and FAQs."

// CompletionAPI is the slice of the OpenAI client the widget needs.
type CompletionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client produces single-turn assistant replies.
type Client struct {
	api   CompletionAPI
	model string
}

// New builds a Client against an OpenAI-compatible endpoint.
func New(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

// NewWithAPI injects a completion API; used by tests.
func NewWithAPI(api CompletionAPI, model string) *Client {
	return &Client{api: api, model: model}
}

// Reply returns the assistant's answer to a single user message.
func (c *Client) Reply(ctx context.Context, message string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
