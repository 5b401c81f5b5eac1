package redteam

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDetectors indicates an empty detector list was requested.
	ErrNoDetectors = errors.New("no detectors requested")

	// ErrNoAgent indicates no agent under test was supplied.
	ErrNoAgent = errors.New("no agent under test supplied")
)

// Stage names the pipeline step a collaborator fault occurred in.
type Stage string

const (
	StageResolveIssue  Stage = "resolve_issue_description"
	StageRequirements  Stage = "generate_requirements"
	StageTestCases     Stage = "generate_test_cases"
	StageAgentResponse Stage = "agent_response"
	StageEvaluation    Stage = "evaluate_conversation"
	StagePersist       Stage = "persist_results"
)

// StageError is a fatal collaborator or persistence fault, carrying the
// failing stage and detector so the run can be diagnosed without
// re-running.
type StageError struct {
	Stage       Stage
	Detector    string
	Requirement string
	Err         error
}

func (e *StageError) Error() string {
	if e.Detector == "" {
		return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("stage %s failed for detector %q: %v", e.Stage, e.Detector, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
