package utils

import (
	"testing"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "br becomes newline",
			input:    "front<br>back",
			expected: "front\nback",
		},
		{
			name:     "self-closing br",
			input:    "front<br/>back",
			expected: "front\nback",
		},
		{
			name:     "div close becomes newline",
			input:    "<div>one</div><div>two</div>",
			expected: "one\ntwo",
		},
		{
			name:     "spans dropped",
			input:    `<span class="cloze">Mars</span> is red`,
			expected: "Mars is red",
		},
		{
			name:     "entities decoded",
			input:    "a &amp; b &darr; c",
			expected: "a & b ↓ c",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StripHTML(tt.input)
			if result != tt.expected {
				t.Errorf("StripHTML() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "collapses runs",
			input:    "a  b\n\nc\td",
			expected: "a b c d",
		},
		{
			name:     "trims ends",
			input:    "  padded  ",
			expected: "padded",
		},
		{
			name:     "only whitespace",
			input:    " \n\t ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Flatten(tt.input)
			if result != tt.expected {
				t.Errorf("Flatten() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{
			name:     "short text unchanged",
			input:    "short",
			max:      20,
			expected: "short",
		},
		{
			name:     "markup flattened",
			input:    "What is the<br>capital of <b>France</b>?",
			max:      60,
			expected: "What is the capital of France?",
		},
		{
			name:     "long text truncated with ellipsis",
			input:    "abcdefghij",
			max:      8,
			expected: "abcde...",
		},
		{
			name:     "truncation respects rune boundaries",
			input:    "日本語のテキストです",
			max:      6,
			expected: "日本語...",
		},
		{
			name:     "zero max disables truncation",
			input:    "anything at all",
			max:      0,
			expected: "anything at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Excerpt(tt.input, tt.max)
			if result != tt.expected {
				t.Errorf("Excerpt() = %q, want %q", result, tt.expected)
			}
		})
	}
}
