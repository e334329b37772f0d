package chat

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCompletionAPI struct {
	req  openai.ChatCompletionRequest
	resp openai.ChatCompletionResponse
	err  error
}

func (m *mockCompletionAPI) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.req = req
	return m.resp, m.err
}

func TestReply_SendsSystemAndUserMessages(t *testing.T) {
	mock := &mockCompletionAPI{
		resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "Progressive lenses take 3-5 days."}},
			},
		},
	}
	c := NewWithAPI(mock, "llama-3.1-8b-instant")

	reply, err := c.Reply(context.Background(), "How long do progressive lenses take?")
	require.NoError(t, err)
	assert.Equal(t, "Progressive lenses take 3-5 days.", reply)

	assert.Equal(t, "llama-3.1-8b-instant", mock.req.Model)
	require.Len(t, mock.req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, mock.req.Messages[0].Role)
	assert.Equal(t, systemPrompt, mock.req.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, mock.req.Messages[1].Role)
	assert.Equal(t, "How long do progressive lenses take?", mock.req.Messages[1].Content)
}

func TestReply_WrapsAPIError(t *testing.T) {
	mock := &mockCompletionAPI{err: errors.New("rate limited")}
	c := NewWithAPI(mock, "llama-3.1-8b-instant")

	_, err := c.Reply(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion")
}

func TestReply_NoChoices(t *testing.T) {
	mock := &mockCompletionAPI{}
	c := NewWithAPI(mock, "llama-3.1-8b-instant")

	_, err := c.Reply(context.Background(), "hello")
	require.Error(t, err)
}
