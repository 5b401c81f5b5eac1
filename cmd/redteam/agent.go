package main

import (
	"context"
	"fmt"

	"github.com/fyrsmithlabs/redteam/internal/config"
	"github.com/fyrsmithlabs/redteam/internal/llm"
	"github.com/fyrsmithlabs/redteam/internal/redteam"
)

// agentTemperature drives the agent under test. Generation-side
// temperatures come from config; the agent's is fixed at a typical chat
// setting.
const agentTemperature = 0.7

// buildAgent constructs the agent under test from flags: a fixed reply
// for dry runs, otherwise an OpenAI-compatible model prompted with the
// agent description as its system prompt.
func buildAgent(cfg *config.Config) (redteam.Agent, error) {
	if runAgentReply != "" {
		reply := runAgentReply
		return redteam.AgentFunc(func(context.Context, string) (string, error) {
			return reply, nil
		}), nil
	}

	model := runAgentModel
	if model == "" {
		model = cfg.Model.Name
	}

	client, err := llm.NewClient(llm.Config{
		BaseURL: cfg.Model.BaseURL,
		Model:   model,
		APIKey:  cfg.Model.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("building agent client: %w", err)
	}

	system := runDescription
	return redteam.AgentFunc(func(ctx context.Context, userMessage string) (string, error) {
		return client.Chat(ctx, system, userMessage, agentTemperature)
	}), nil
}
