package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect any
	}{
		{
			name:   "fenced object",
			input:  "```json\n{\"a\":1}\n```",
			expect: map[string]any{"a": float64(1)},
		},
		{
			name:   "bare fence",
			input:  "```\n[1, 2]\n```",
			expect: []any{float64(1), float64(2)},
		},
		{
			name:   "object surrounded by prose",
			input:  "Sure! Here is the data: {\"company\": \"Acme\"} Hope it helps.",
			expect: map[string]any{"company": "Acme"},
		},
		{
			name:   "skips instruction markers before the array",
			input:  "[/INST] [{\"question\": \"Why Go?\", \"answer\": \"Because.\"}]",
			expect: []any{map[string]any{"question": "Why Go?", "answer": "Because."}},
		},
		{
			name:   "plain object",
			input:  `  {"nested": {"ok": true}}  `,
			expect: map[string]any{"nested": map[string]any{"ok": true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestParseJSONFailures(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "no json here", "{broken", "42", `"just a string"`} {
		_, err := ParseJSON(input)
		require.Error(t, err, "input %q", input)

		var parseErr *JSONParseError
		assert.True(t, errors.As(err, &parseErr), "input %q", input)
	}
}

func TestJSONInstruction(t *testing.T) {
	t.Parallel()

	assert.Contains(t, JSONInstruction("keys: a, b"), "keys: a, b")
	assert.Contains(t, JSONInstruction(""), "Output ONLY valid JSON")
}

func TestUpstreamErrorUnwrap(t *testing.T) {
	t.Parallel()

	err := &UpstreamError{Provider: "huggingface", StatusCode: 503, Err: ErrTransientLoading}
	assert.True(t, IsTransientLoading(err))
	assert.Contains(t, err.Error(), "503")

	plain := &UpstreamError{Provider: "gemini", StatusCode: 500, Body: "boom"}
	assert.False(t, IsTransientLoading(plain))
	assert.Contains(t, plain.Error(), "boom")
}
