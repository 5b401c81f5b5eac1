// Package llm provides the OpenAI-compatible chat client shared by the
// generation and evaluation services.
//
// The client wraps langchaingo's OpenAI integration, which works against
// the OpenAI API and any OpenAI-compatible server via a custom base URL.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

var (
	// ErrEmptyPrompt indicates an empty prompt
	ErrEmptyPrompt = errors.New("empty prompt")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds configuration for the chat client.
type Config struct {
	// BaseURL is the base URL for the chat API
	// For OpenAI: https://api.openai.com/v1
	BaseURL string

	// Model is the chat model to use
	Model string

	// APIKey is the API key (required for OpenAI)
	APIKey string
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL required", ErrInvalidConfig)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: model required", ErrInvalidConfig)
	}
	return nil
}

// Client provides chat completion functionality.
type Client struct {
	model  llms.Model
	config Config
}

// NewClient creates a new chat client with the given configuration.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	// langchaingo requires a token, use placeholder for keyless
	// OpenAI-compatible servers
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = "placeholder"
	}

	opts := []openai.Option{
		openai.WithBaseURL(config.BaseURL),
		openai.WithModel(config.Model),
		openai.WithToken(apiKey),
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}

	return &Client{
		model:  model,
		config: config,
	}, nil
}

// NewClientWithModel wraps an existing langchaingo model. Used by tests
// and by callers that construct the model themselves.
func NewClientWithModel(model llms.Model, config Config) *Client {
	return &Client{
		model:  model,
		config: config,
	}
}

// Complete sends a single prompt and returns the raw model output.
func (c *Client) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
		llms.WithTemperature(temperature),
	)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	return out, nil
}

// Chat sends a system prompt plus one user message and returns the
// model's reply. Used for driving a model-backed agent under test.
func (c *Client) Chat(ctx context.Context, system, user string, temperature float64) (string, error) {
	if user == "" {
		return "", ErrEmptyPrompt
	}

	msgs := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, user),
	}

	resp, err := c.model.GenerateContent(ctx, msgs, llms.WithTemperature(temperature))
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return resp.Choices[0].Content, nil
}

// CompleteJSON sends a prompt expected to yield a JSON document and
// unmarshals the extracted document into v.
func (c *Client) CompleteJSON(ctx context.Context, prompt string, temperature float64, v any) error {
	out, err := c.Complete(ctx, prompt, temperature)
	if err != nil {
		return err
	}

	if err := ExtractJSON(out, v); err != nil {
		return fmt.Errorf("parsing model output: %w", err)
	}

	return nil
}
