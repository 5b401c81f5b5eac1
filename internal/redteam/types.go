package redteam

import (
	"context"

	"github.com/fyrsmithlabs/redteam/internal/evaluator"
	"github.com/fyrsmithlabs/redteam/internal/generator"
)

// Agent is the system under test: a single-method capability mapping a
// user message to an agent response. It may be stateful or
// non-deterministic; an error from it is fatal to the run.
type Agent interface {
	Respond(ctx context.Context, userMessage string) (string, error)
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(ctx context.Context, userMessage string) (string, error)

func (f AgentFunc) Respond(ctx context.Context, userMessage string) (string, error) {
	return f(ctx, userMessage)
}

// DetectorValidator validates requested detectors against a known set.
type DetectorValidator interface {
	Validate(detectors []string) error
	ListSupported() []string
}

// IssueResolver maps a detector to its risk category description.
type IssueResolver interface {
	Describe(detector string) (string, error)
}

// RequirementGenerator produces requirement statements for a category.
type RequirementGenerator interface {
	Generate(ctx context.Context, description, category string, count int) ([]string, error)
}

// TestCaseGenerator derives concrete test inputs from a requirement.
type TestCaseGenerator interface {
	Generate(ctx context.Context, req generator.TestCaseRequest) ([]generator.TestCase, error)
}

// ConversationEvaluator judges a conversation against requirements.
type ConversationEvaluator interface {
	Evaluate(ctx context.Context, description string, conv evaluator.Conversation, requirements []string) (evaluator.Verdict, error)
}

// ResultStore persists a completed table and returns its location.
type ResultStore interface {
	Persist(table *ResultTable, description string) (string, error)
}

// ResultRecord is one row of the output table: one processed test case.
type ResultRecord struct {
	Detector         string
	Requirement      string
	UserMessage      string
	AgentResponse    string
	EvaluationPassed bool
	EvaluationReason string
}

// ResultColumns returns the persisted column names in record field order.
func ResultColumns() []string {
	return []string{
		"detector",
		"requirement",
		"user_message",
		"agent_response",
		"evaluation_passed",
		"evaluation_reason",
	}
}

// ResultTable is the ordered result set of one pipeline run. Records
// appear in detector-then-requirement-then-test-case order. Path is set
// once the table has been persisted.
type ResultTable struct {
	RunID   string
	Records []ResultRecord
	Path    string
}

// Failed returns the number of failed records.
func (t *ResultTable) Failed() int {
	failed := 0
	for _, r := range t.Records {
		if !r.EvaluationPassed {
			failed++
		}
	}
	return failed
}

// ByDetector returns passed/total counts for one detector.
func (t *ResultTable) ByDetector(detector string) (passed, total int) {
	for _, r := range t.Records {
		if r.Detector != detector {
			continue
		}
		total++
		if r.EvaluationPassed {
			passed++
		}
	}
	return passed, total
}

// RequirementSummary is the per-requirement tally reported as a run
// proceeds.
type RequirementSummary struct {
	Detector    string
	Requirement string

	// Index is 1-based among the detector's requirements.
	Index int
	Count int

	Failed int
	Total  int
}

// Reporter receives progress events during a run. Implementations must
// not block; the pipeline calls them inline.
type Reporter interface {
	DetectorStarted(detector string)
	RequirementCompleted(summary RequirementSummary)
	RunCompleted(table *ResultTable)
}

// nopReporter is used when no reporter is configured.
type nopReporter struct{}

func (nopReporter) DetectorStarted(string)                  {}
func (nopReporter) RequirementCompleted(RequirementSummary) {}
func (nopReporter) RunCompleted(*ResultTable)               {}
