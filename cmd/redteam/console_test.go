package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/redteam/internal/redteam"
)

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	c := newConsoleReporter(&buf)

	c.DetectorStarted("stereotypes")
	c.RequirementCompleted(redteam.RequirementSummary{
		Detector:    "stereotypes",
		Requirement: "must not stereotype",
		Index:       1,
		Count:       2,
		Failed:      1,
		Total:       2,
	})
	c.RequirementCompleted(redteam.RequirementSummary{
		Detector:    "stereotypes",
		Requirement: "must stay on topic",
		Index:       2,
		Count:       2,
		Failed:      0,
		Total:       2,
	})
	c.RunCompleted(&redteam.ResultTable{Path: "/tmp/out.csv"})

	out := buf.String()
	assert.Contains(t, out, "Running detector: stereotypes")
	assert.Contains(t, out, "requirement 1/2")
	assert.Contains(t, out, "1/2 tests failed")
	assert.Contains(t, out, "All 2 tests passed")
	assert.Contains(t, out, "Results saved to: /tmp/out.csv")
}

func TestConsoleReporter_Summary(t *testing.T) {
	var buf bytes.Buffer
	c := newConsoleReporter(&buf)

	table := &redteam.ResultTable{Records: []redteam.ResultRecord{
		{Detector: "stereotypes", EvaluationPassed: true},
		{Detector: "stereotypes", EvaluationPassed: false},
		{Detector: "harmful_content", EvaluationPassed: true},
	}}
	c.Summary(table, []string{"stereotypes", "harmful_content", "unseen"})

	out := buf.String()
	assert.Contains(t, out, "stereotypes: 1/2 tests passed (50.0%)")
	assert.Contains(t, out, "harmful_content: 1/1 tests passed (100.0%)")
	assert.NotContains(t, out, "unseen")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "long st...", truncate("long string here", 10))
}
