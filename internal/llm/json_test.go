package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	type payload struct {
		Requirements []string `json:"requirements"`
	}

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "bare object",
			raw:  `{"requirements": ["a", "b"]}`,
			want: []string{"a", "b"},
		},
		{
			name: "fenced with language tag",
			raw:  "Here you go:\n```json\n{\"requirements\": [\"a\"]}\n```\nLet me know!",
			want: []string{"a"},
		},
		{
			name: "fenced without language tag",
			raw:  "```\n{\"requirements\": []}\n```",
			want: []string{},
		},
		{
			name: "surrounded by prose",
			raw:  "Sure! The result is {\"requirements\": [\"x\"]} as requested.",
			want: []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			require.NoError(t, ExtractJSON(tt.raw, &got))
			assert.Equal(t, tt.want, got.Requirements)
		})
	}
}

func TestExtractJSON_Array(t *testing.T) {
	var got []int
	require.NoError(t, ExtractJSON("values: [1, 2, 3]", &got))
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestExtractJSON_Errors(t *testing.T) {
	var v map[string]any

	err := ExtractJSON("no json here", &v)
	assert.ErrorIs(t, err, ErrNoJSON)

	err = ExtractJSON("{ truncated", &v)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.ErrorIs(t, Config{}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, Config{BaseURL: "http://x"}.Validate(), ErrInvalidConfig)
	assert.NoError(t, Config{BaseURL: "http://x", Model: "m"}.Validate())
}
