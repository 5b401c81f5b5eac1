package redteam

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/redteam/internal/evaluator"
	"github.com/fyrsmithlabs/redteam/internal/generator"
	"github.com/fyrsmithlabs/redteam/internal/logging"
)

// Deps are the collaborators a Pipeline is assembled from. All fields
// except Reporter are required.
type Deps struct {
	Registry     DetectorValidator
	Resolver     IssueResolver
	Requirements RequirementGenerator
	TestCases    TestCaseGenerator
	Evaluator    ConversationEvaluator
	Store        ResultStore
	Reporter     Reporter
	Logger       *logging.Logger
}

// Pipeline runs red-teaming sessions. Each instance owns its own
// detector registry; nothing is shared process-wide.
type Pipeline struct {
	registry     DetectorValidator
	resolver     IssueResolver
	requirements RequirementGenerator
	testCases    TestCaseGenerator
	evaluator    ConversationEvaluator
	store        ResultStore
	reporter     Reporter
	logger       *logging.Logger
}

// New assembles a pipeline from its collaborators.
func New(deps Deps) (*Pipeline, error) {
	switch {
	case deps.Registry == nil:
		return nil, fmt.Errorf("registry is required")
	case deps.Resolver == nil:
		return nil, fmt.Errorf("issue resolver is required")
	case deps.Requirements == nil:
		return nil, fmt.Errorf("requirement generator is required")
	case deps.TestCases == nil:
		return nil, fmt.Errorf("test case generator is required")
	case deps.Evaluator == nil:
		return nil, fmt.Errorf("evaluator is required")
	case deps.Store == nil:
		return nil, fmt.Errorf("result store is required")
	case deps.Logger == nil:
		return nil, fmt.Errorf("logger is required")
	}

	reporter := deps.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	return &Pipeline{
		registry:     deps.Registry,
		resolver:     deps.Resolver,
		requirements: deps.Requirements,
		testCases:    deps.TestCases,
		evaluator:    deps.Evaluator,
		store:        deps.Store,
		reporter:     reporter,
		logger:       deps.Logger.Named("pipeline"),
	}, nil
}

// RunOptions parameterize one red-teaming session.
type RunOptions struct {
	// Description of the agent under test, used as generation and
	// evaluation context.
	Description string

	// Detectors to test against, in the order they will run.
	Detectors []string

	// Agent is the system under test.
	Agent Agent

	// FormatExample shows the structural shape of a user input. A fresh
	// default is constructed per run when nil.
	FormatExample map[string]any

	// Languages test cases may be written in. Defaults to English.
	Languages []string

	// NumRequirements per detector. Defaults to 3.
	NumRequirements int

	// NumTestCases per requirement. Defaults to 2.
	NumTestCases int
}

// defaultFormatExample returns a fresh example map. Never share one map
// across calls: generation shapes inputs from it and callers may mutate it.
func defaultFormatExample() map[string]any {
	return map[string]any{
		"user_input": "Hi, I am looking for job recommendations",
		"user_name":  "John",
	}
}

// withDefaults returns a copy of opts with zero values filled in.
func (o RunOptions) withDefaults() RunOptions {
	if o.FormatExample == nil {
		o.FormatExample = defaultFormatExample()
	}
	if len(o.Languages) == 0 {
		o.Languages = []string{"English"}
	}
	if o.NumRequirements == 0 {
		o.NumRequirements = 3
	}
	if o.NumTestCases == 0 {
		o.NumTestCases = 2
	}
	return o
}

func (o RunOptions) validate() error {
	if len(o.Detectors) == 0 {
		return ErrNoDetectors
	}
	if o.Agent == nil {
		return ErrNoAgent
	}
	if o.NumRequirements < 1 {
		return fmt.Errorf("num_requirements must be >= 1, got %d", o.NumRequirements)
	}
	if o.NumTestCases < 1 {
		return fmt.Errorf("num_test_cases must be >= 1, got %d", o.NumTestCases)
	}
	return nil
}

// Run executes one red-teaming session end to end and returns the
// persisted result table.
//
// The walk is strictly sequential and depth-first (detector, then
// requirement, then test case) so record order is deterministic even
// though individual model calls are not. Any collaborator fault aborts
// the whole run without persistence. A persistence fault still returns
// the computed table alongside the error. Context cancellation aborts
// without persistence.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*ResultTable, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	// Validation fault: fatal before any generation work begins.
	if err := p.registry.Validate(opts.Detectors); err != nil {
		return nil, err
	}

	table := &ResultTable{RunID: uuid.NewString()}
	ctx = logging.WithRunID(ctx, table.RunID)

	p.logger.Info(ctx, "starting red-teaming run",
		zap.Strings("detectors", opts.Detectors),
		zap.Int("num_requirements", opts.NumRequirements),
		zap.Int("num_test_cases", opts.NumTestCases))

	for _, detector := range opts.Detectors {
		if err := p.runDetector(ctx, detector, opts, table); err != nil {
			return nil, err
		}
	}

	path, err := p.store.Persist(table, opts.Description)
	if err != nil {
		// Persistence fault: the computed table is still returned.
		return table, &StageError{Stage: StagePersist, Err: err}
	}
	table.Path = path

	p.logger.Info(ctx, "red-teaming run complete",
		zap.Int("records", len(table.Records)),
		zap.Int("failed", table.Failed()),
		zap.String("path", path))
	p.reporter.RunCompleted(table)

	return table, nil
}

// runDetector processes one detector: resolve its category description,
// generate requirements, and evaluate every derived test case.
func (p *Pipeline) runDetector(ctx context.Context, detector string, opts RunOptions, table *ResultTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx = logging.WithDetector(ctx, detector)
	p.reporter.DetectorStarted(detector)
	p.logger.Info(ctx, "running detector")

	category, err := p.resolver.Describe(detector)
	if err != nil {
		return &StageError{Stage: StageResolveIssue, Detector: detector, Err: err}
	}

	requirements, err := p.requirements.Generate(ctx, opts.Description, category, opts.NumRequirements)
	if err != nil {
		return &StageError{Stage: StageRequirements, Detector: detector, Err: err}
	}

	for i, requirement := range requirements {
		if err := ctx.Err(); err != nil {
			return err
		}

		cases, err := p.testCases.Generate(ctx, generator.TestCaseRequest{
			Description:   opts.Description,
			Category:      category,
			Requirement:   requirement,
			FormatExample: opts.FormatExample,
			Languages:     opts.Languages,
			Count:         opts.NumTestCases,
		})
		if err != nil {
			return &StageError{Stage: StageTestCases, Detector: detector, Requirement: requirement, Err: err}
		}

		failed := 0
		for _, tc := range cases {
			if err := ctx.Err(); err != nil {
				return err
			}

			record, err := p.evaluateCase(ctx, detector, requirement, tc.UserInput, opts)
			if err != nil {
				return err
			}

			// Exactly one record per test case, in enumeration order.
			table.Records = append(table.Records, record)
			if !record.EvaluationPassed {
				failed++
			}
		}

		summary := RequirementSummary{
			Detector:    detector,
			Requirement: requirement,
			Index:       i + 1,
			Count:       len(requirements),
			Failed:      failed,
			Total:       len(cases),
		}
		p.logger.Info(ctx, "requirement evaluated",
			zap.Int("requirement", summary.Index),
			zap.Int("failed", summary.Failed),
			zap.Int("total", summary.Total))
		p.reporter.RequirementCompleted(summary)
	}

	return nil
}

// evaluateCase drives the agent with one test input and judges the
// resulting conversation against the single requirement it probes.
func (p *Pipeline) evaluateCase(ctx context.Context, detector, requirement, userMessage string, opts RunOptions) (ResultRecord, error) {
	response, err := opts.Agent.Respond(ctx, userMessage)
	if err != nil {
		return ResultRecord{}, &StageError{Stage: StageAgentResponse, Detector: detector, Requirement: requirement, Err: err}
	}

	verdict, err := p.evaluator.Evaluate(ctx, opts.Description,
		evaluator.Conversation{UserMessage: userMessage, AgentResponse: response},
		[]string{requirement})
	if err != nil {
		return ResultRecord{}, &StageError{Stage: StageEvaluation, Detector: detector, Requirement: requirement, Err: err}
	}

	return ResultRecord{
		Detector:         detector,
		Requirement:      requirement,
		UserMessage:      userMessage,
		AgentResponse:    response,
		EvaluationPassed: verdict.Passed,
		EvaluationReason: verdict.Reason,
	}, nil
}
