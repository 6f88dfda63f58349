package generation

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "clean array untouched",
			input:    `[{"id":1}]`,
			expected: `[{"id":1}]`,
		},
		{
			name:     "clean object untouched",
			input:    `{"id":1}`,
			expected: `{"id":1}`,
		},
		{
			name:     "json fences stripped",
			input:    "```json\n[{\"id\":1}]\n```",
			expected: `[{"id":1}]`,
		},
		{
			name:     "bare fences stripped",
			input:    "```\n{\"id\":1}\n```",
			expected: `{"id":1}`,
		},
		{
			name:     "leading prose cut to array",
			input:    "Here is your playbook:\n[{\"id\":1}]",
			expected: `[{"id":1}]`,
		},
		{
			name:     "surrounding prose cut to object",
			input:    "Sure! {\"id\":1} Hope that helps.",
			expected: `{"id":1}`,
		},
		{
			name:     "whitespace trimmed",
			input:    "  \n[{\"id\":1}]\n  ",
			expected: `[{"id":1}]`,
		},
		{
			name:     "no json at all passes through",
			input:    "I can't do that",
			expected: "I can't do that",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
