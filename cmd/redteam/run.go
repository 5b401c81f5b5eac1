package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/redteam/internal/evaluator"
	"github.com/fyrsmithlabs/redteam/internal/generator"
	"github.com/fyrsmithlabs/redteam/internal/issue"
	"github.com/fyrsmithlabs/redteam/internal/llm"
	"github.com/fyrsmithlabs/redteam/internal/redteam"
	"github.com/fyrsmithlabs/redteam/internal/registry"
	"github.com/fyrsmithlabs/redteam/internal/store"
)

var (
	runDescription     string
	runDetectors       []string
	runNumRequirements int
	runNumTestCases    int
	runLanguages       []string
	runAgentModel      string
	runAgentReply      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a red-teaming session",
	Long: `Run a red-teaming session against an agent under test.

The agent is either an OpenAI-compatible model prompted with the agent
description (--agent-model) or a fixed canned reply for dry runs
(--agent-reply).

Examples:
  # Red-team a model-backed agent
  redteam run \
    --description "A chatbot for our recruiting platform" \
    --detectors stereotypes,harmful_content \
    --agent-model gpt-4o-mini

  # Dry run against a canned reply
  redteam run \
    --description "A recruiting chatbot" \
    --detectors stereotypes \
    --agent-reply "I cannot help with that."`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runDescription, "description", "", "description of the agent under test (required)")
	runCmd.Flags().StringSliceVar(&runDetectors, "detectors", nil, "detectors to test against (required)")
	runCmd.Flags().IntVar(&runNumRequirements, "num-requirements", 0, "requirements per detector (default from config)")
	runCmd.Flags().IntVar(&runNumTestCases, "num-test-cases", 0, "test cases per requirement (default from config)")
	runCmd.Flags().StringSliceVar(&runLanguages, "languages", nil, "languages for test cases (default from config)")
	runCmd.Flags().StringVar(&runAgentModel, "agent-model", "", "model name for a model-backed agent under test")
	runCmd.Flags().StringVar(&runAgentReply, "agent-reply", "", "fixed agent reply for dry runs")

	_ = runCmd.MarkFlagRequired("description")
	_ = runCmd.MarkFlagRequired("detectors")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, err := llm.NewClient(llm.Config{
		BaseURL: cfg.Model.BaseURL,
		Model:   cfg.Model.Name,
		APIKey:  cfg.Model.APIKey,
	})
	if err != nil {
		return fmt.Errorf("building model client: %w", err)
	}

	agent, err := buildAgent(cfg)
	if err != nil {
		return err
	}

	console := newConsoleReporter(cmd.OutOrStdout())

	pipeline, err := redteam.New(redteam.Deps{
		Registry:     registry.New(cfg.Run.DetectorsPath, logger),
		Resolver:     issue.NewCatalogResolver(),
		Requirements: generator.NewRequirementService(client, cfg.Model.ReqTemperature, logger),
		TestCases:    generator.NewTestCaseService(client, cfg.Model.TestTemperature, logger),
		Evaluator:    evaluator.NewService(client, cfg.Model.EvalTemperature, logger),
		Store:        store.New(cfg.Run.ResultsDir),
		Reporter:     console,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	numRequirements := runNumRequirements
	if numRequirements == 0 {
		numRequirements = cfg.Run.NumRequirements
	}
	numTestCases := runNumTestCases
	if numTestCases == 0 {
		numTestCases = cfg.Run.NumTestCases
	}
	languages := runLanguages
	if len(languages) == 0 {
		languages = cfg.Run.Languages
	}

	table, err := pipeline.Run(cmd.Context(), redteam.RunOptions{
		Description:     runDescription,
		Detectors:       runDetectors,
		Agent:           agent,
		Languages:       languages,
		NumRequirements: numRequirements,
		NumTestCases:    numTestCases,
	})
	if err != nil {
		return err
	}

	console.Summary(table, runDetectors)
	return nil
}
