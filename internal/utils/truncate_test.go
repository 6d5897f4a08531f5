package utils

import (
	"strings"
	"testing"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "trims surrounding whitespace",
			input:  "  spaced  ",
			limit:  5,
			expect: "space...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "disabled", input: "hello", limit: 0, expect: "hello"},
		{name: "shorter", input: "hello", limit: 10, expect: "hello"},
		{name: "exact", input: "hello", limit: 5, expect: "hello"},
		{name: "cut", input: "hello world", limit: 5, expect: "hello"},
		{name: "keeps whitespace", input: "  hi there", limit: 4, expect: "  hi"},
		{name: "multibyte", input: "привет мир", limit: 6, expect: "привет"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Truncate(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestTruncateLongInput(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("a", 10000)
	if got := Truncate(input, 1000); len(got) != 1000 {
		t.Fatalf("expected 1000 characters, got %d", len(got))
	}
}
