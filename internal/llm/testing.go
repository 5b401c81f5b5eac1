package llm

import (
	"context"
	"errors"

	"github.com/tmc/langchaingo/llms"
)

// StaticModel is an llms.Model test double returning canned responses.
// Responses are consumed in order; the last one repeats. Prompts records
// every prompt received.
type StaticModel struct {
	Responses []string
	Err       error
	Prompts   []string
}

var _ llms.Model = (*StaticModel)(nil)

// NewStaticClient wraps a StaticModel in a Client for tests.
func NewStaticClient(model *StaticModel) *Client {
	return NewClientWithModel(model, Config{BaseURL: "http://fake", Model: "fake"})
}

func (m *StaticModel) next() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", errors.New("static model has no responses")
	}
	resp := m.Responses[0]
	if len(m.Responses) > 1 {
		m.Responses = m.Responses[1:]
	}
	return resp, nil
}

// GenerateContent implements llms.Model.
func (m *StaticModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.Prompts = append(m.Prompts, text.Text)
			}
		}
	}
	resp, err := m.next()
	if err != nil {
		return nil, err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: resp}},
	}, nil
}

// Call implements the legacy llms.Model method.
func (m *StaticModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.Prompts = append(m.Prompts, prompt)
	return m.next()
}
