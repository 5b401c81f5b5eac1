package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	model := &StaticModel{Responses: []string{"hello"}}
	c := NewStaticClient(model)

	out, err := c.Complete(context.Background(), "say hello", 0.5)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, []string{"say hello"}, model.Prompts)
}

func TestComplete_EmptyPrompt(t *testing.T) {
	c := NewStaticClient(&StaticModel{Responses: []string{"x"}})
	_, err := c.Complete(context.Background(), "", 0.5)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestCompleteJSON(t *testing.T) {
	model := &StaticModel{Responses: []string{`prose {"n": 7} more prose`}}
	c := NewStaticClient(model)

	var got struct {
		N int `json:"n"`
	}
	require.NoError(t, c.CompleteJSON(context.Background(), "count", 0, &got))
	assert.Equal(t, 7, got.N)
}

func TestChat(t *testing.T) {
	model := &StaticModel{Responses: []string{"I can help with that"}}
	c := NewStaticClient(model)

	out, err := c.Chat(context.Background(), "you are a recruiter", "find me a job", 0.7)
	require.NoError(t, err)
	assert.Equal(t, "I can help with that", out)

	// System prompt and user message both reach the model.
	require.Len(t, model.Prompts, 2)
	assert.Equal(t, "you are a recruiter", model.Prompts[0])
	assert.Equal(t, "find me a job", model.Prompts[1])
}

func TestChat_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewStaticClient(&StaticModel{Responses: []string{"x"}})
	_, err := c.Chat(ctx, "s", "u", 0)
	assert.ErrorIs(t, err, context.Canceled)
}
