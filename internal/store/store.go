// Package store persists result tables as timestamped CSV files.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fyrsmithlabs/redteam/internal/redteam"
)

const slugMaxLen = 30

// Store writes result tables under a results directory, created on demand.
type Store struct {
	dir string

	// now is swappable for tests.
	now func() time.Time
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{
		dir: dir,
		now: time.Now,
	}
}

// Persist writes the table to a CSV file named from a slug of description
// plus a second-resolution timestamp, and returns the resolved path.
//
// The header row and column order match the ResultRecord fields. An
// existing file at the resolved path is never overwritten; timestamp
// granularity makes collisions within one process run effectively
// impossible, and same-second collisions across runs are an accepted
// limitation surfaced as an error.
func (s *Store) Persist(table *redteam.ResultTable, description string) (string, error) {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	timestamp := s.now().Format("20060102_150405")
	name := fmt.Sprintf("red_teaming_%s_%s.csv", slug(description), timestamp)
	path := filepath.Join(s.dir, name)

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("results file already exists: %s", path)
	}

	if err := s.write(path, table); err != nil {
		return "", err
	}

	return path, nil
}

// write writes the CSV atomically (temp file + rename).
func (s *Store) write(path string, table *redteam.ResultTable) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(redteam.ResultColumns()); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range table.Records {
		row := []string{
			rec.Detector,
			rec.Requirement,
			rec.UserMessage,
			rec.AgentResponse,
			strconv.FormatBool(rec.EvaluationPassed),
			rec.EvaluationReason,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush results: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close results file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename results file: %w", err)
	}

	return nil
}

// slug derives a short filesystem-safe identifier from a description:
// lowercased, whitespace collapsed to underscores, truncated.
func slug(description string) string {
	lower := strings.ToLower(strings.TrimSpace(description))
	fields := strings.Fields(lower)
	joined := strings.Join(fields, "_")

	var b strings.Builder
	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = "run"
	}
	if len(out) > slugMaxLen {
		out = out[:slugMaxLen]
	}
	return out
}
