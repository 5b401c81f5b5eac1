package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON indicates no JSON document was found in the model output.
var ErrNoJSON = errors.New("no JSON document in model output")

// ExtractJSON unmarshals the first JSON object or array found in raw
// into v. Models frequently wrap JSON in prose or markdown code fences;
// both are tolerated.
func ExtractJSON(raw string, v any) error {
	s := strings.TrimSpace(raw)

	// Prefer the contents of a fenced code block when present.
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		// Skip an optional language tag like "json"
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			s = strings.TrimSpace(rest[:end])
		}
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ErrNoJSON
	}

	var end int
	if s[start] == '{' {
		end = strings.LastIndexByte(s, '}')
	} else {
		end = strings.LastIndexByte(s, ']')
	}
	if end <= start {
		return ErrNoJSON
	}

	if err := json.Unmarshal([]byte(s[start:end+1]), v); err != nil {
		return err
	}
	return nil
}
